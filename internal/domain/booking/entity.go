package booking

import (
	"time"

	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Hold marks the slot as claimed. ttl <= 0 leaves the hold without expiry.
func Hold(s *models.Slot, userID uint, now time.Time, ttl time.Duration) error {
	if err := CanHold(SlotStatus(s.Status)); err != nil {
		return err
	}

	s.Status = string(SlotHeld)
	s.HeldBy = &userID
	s.HeldUntil = nil
	if ttl > 0 {
		until := now.Add(ttl)
		s.HeldUntil = &until
	}
	return nil
}

// Release returns a held slot to the calendar. Only the holder or an admin
// may do it; a hold with no recorded holder can only be released by an admin.
func Release(s *models.Slot, cred Credential) error {
	if err := CanRelease(SlotStatus(s.Status)); err != nil {
		return err
	}
	if !cred.IsAdmin() && (s.HeldBy == nil || *s.HeldBy != cred.UserID) {
		return httperr.ErrBusiness(CodeNotSlotHolder)
	}

	clearHold(s)
	s.Status = string(SlotAvailable)
	return nil
}

// Expire releases a hold whose deadline has passed.
func Expire(s *models.Slot, now time.Time) bool {
	if SlotStatus(s.Status) != SlotHeld || s.HeldUntil == nil || s.HeldUntil.After(now) {
		return false
	}
	clearHold(s)
	s.Status = string(SlotAvailable)
	return true
}

// NewBooking copies date, times and the court's current price into a new
// booking. The copies are never recomputed afterwards.
func NewBooking(
	s *models.Slot,
	court *models.Court,
	userID uint,
	method PaymentMethod,
	status Status,
) *models.Booking {
	return &models.Booking{
		UserID:        userID,
		CourtID:       s.CourtID,
		SlotID:        s.ID,
		Date:          s.Date,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Status:        string(status),
		PaymentMethod: string(method),
		Amount:        court.PricePerHour,
	}
}

// MarkBooked links the slot to the booking that now owns it.
func MarkBooked(s *models.Slot, bookingID uint) error {
	if err := CanBook(SlotStatus(s.Status)); err != nil {
		return err
	}

	clearHold(s)
	s.Status = string(SlotBooked)
	s.BookingID = &bookingID
	return nil
}

func ConfirmPayment(b *models.Booking, now time.Time) error {
	if err := CanConfirmPayment(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	b.PaidAt = &now
	return nil
}

func clearHold(s *models.Slot) {
	s.HeldBy = nil
	s.HeldUntil = nil
}
