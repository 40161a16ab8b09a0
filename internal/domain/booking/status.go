package booking

import "github.com/BruksfildServices01/court-reservations/internal/httperr"

// ===============================
// Slot Status
// ===============================

type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotHeld        SlotStatus = "held"
	SlotBooked      SlotStatus = "booked"
	SlotMaintenance SlotStatus = "maintenance"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Payment Method
// ===============================

type PaymentMethod string

const (
	PaymentOnSite PaymentMethod = "presencial"
	PaymentOnline PaymentMethod = "online"
)

// ===============================
// Error codes
// ===============================

const (
	CodeSlotNotFound         = "slot_not_found"
	CodeSlotUnavailable      = "slot_unavailable"
	CodeSlotNotPayable       = "slot_not_payable"
	CodeSlotNotHeld          = "slot_not_held"
	CodeNotSlotHolder        = "not_slot_holder"
	CodeCourtNotFound        = "court_not_found"
	CodeBookingNotFound      = "booking_not_found"
	CodeBookingNotPending    = "booking_not_pending"
	CodeInvalidPaymentMethod = "invalid_payment_method"
	CodeInvalidDateRange     = "invalid_date_range"
	CodeInvalidTimeRange     = "invalid_time_range"
	CodeInvalidInterval      = "invalid_interval"
	CodeForbidden            = "forbidden"
)

// ===============================
// Validations
// ===============================

// CanHold: only an available slot can be held.
func CanHold(current SlotStatus) error {
	if current != SlotAvailable {
		return httperr.ErrBusinessDetail(CodeSlotUnavailable, string(current))
	}
	return nil
}

// CanBook accepts held slots and available ones (direct checkout).
func CanBook(current SlotStatus) error {
	if current != SlotAvailable && current != SlotHeld {
		return httperr.ErrBusinessDetail(CodeSlotNotPayable, string(current))
	}
	return nil
}

func CanRelease(current SlotStatus) error {
	if current != SlotHeld {
		return httperr.ErrBusinessDetail(CodeSlotNotHeld, string(current))
	}
	return nil
}

func CanConfirmPayment(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusinessDetail(CodeBookingNotPending, string(current))
	}
	return nil
}

// InitialStatus maps the checkout payment choice to the booking status.
// Pay-on-arrival bookings stay pending until an admin settles them.
func InitialStatus(method PaymentMethod) (Status, error) {
	switch method {
	case PaymentOnSite:
		return StatusPending, nil
	case PaymentOnline:
		return StatusConfirmed, nil
	default:
		return "", httperr.ErrBusinessDetail(CodeInvalidPaymentMethod, string(method))
	}
}
