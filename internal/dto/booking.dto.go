package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/court-reservations/internal/models"
	"github.com/BruksfildServices01/court-reservations/internal/timezone"
)

type BookingDTO struct {
	ID            uint            `json:"id"`
	UserID        uint            `json:"user_id"`
	CourtID       uint            `json:"court_id"`
	SlotID        uint            `json:"slot_id"`
	Date          string          `json:"date"`
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func FromBooking(b models.Booking) BookingDTO {
	return BookingDTO{
		ID:            b.ID,
		UserID:        b.UserID,
		CourtID:       b.CourtID,
		SlotID:        b.SlotID,
		Date:          timezone.FormatDate(b.Date),
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        b.Status,
		PaymentMethod: b.PaymentMethod,
		Amount:        b.Amount,
		PaidAt:        b.PaidAt,
		CreatedAt:     b.CreatedAt,
	}
}

func FromBookings(bookings []models.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, FromBooking(b))
	}
	return out
}
