package booking

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/court-reservations/internal/audit"
	"github.com/BruksfildServices01/court-reservations/internal/cache"
	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/models"
	"github.com/BruksfildServices01/court-reservations/internal/notification"
	"github.com/BruksfildServices01/court-reservations/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ConfirmBookingInput struct {
	SlotID        uint
	PaymentMethod string
}

// ======================================================
// USE CASE
// ======================================================

// ConfirmBooking finalizes a slot: the booking row and the slot transition
// commit together or not at all.
type ConfirmBooking struct {
	repo     domain.Repository
	cache    cache.Availability
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewConfirmBooking(
	repo domain.Repository,
	availability cache.Availability,
	audit *audit.Dispatcher,
	notifier Notifier,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:     repo,
		cache:    availability,
		audit:    audit,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	cred domain.Credential,
	in ConfirmBookingInput,
) (booking *models.Booking, err error) {
	ctx, span := tracer.Start(ctx, "booking.confirm")
	span.SetAttributes(
		attribute.Int64("slot.id", int64(in.SlotID)),
		attribute.String("payment.method", in.PaymentMethod),
	)
	defer func() { finish(span, "confirm", err) }()

	method := domain.PaymentMethod(in.PaymentMethod)
	status, err := domain.InitialStatus(method)
	if err != nil {
		return nil, err
	}

	var court *models.Court

	err = uc.repo.WithinTx(ctx, func(tx domain.Tx) error {
		// --------------------------------------------------
		// 1. Lock and re-validate
		// --------------------------------------------------
		s, err := lockSlot(ctx, tx, "confirm", in.SlotID)
		if err != nil {
			return err
		}
		if err := domain.CanBook(domain.SlotStatus(s.Status)); err != nil {
			return err
		}

		// --------------------------------------------------
		// 2. Current price
		// --------------------------------------------------
		court, err = tx.GetCourt(ctx, s.CourtID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return httperr.ErrBusiness(domain.CodeCourtNotFound)
			}
			return err
		}

		// --------------------------------------------------
		// 3. Booking row, flushed for its id
		// --------------------------------------------------
		b := domain.NewBooking(s, court, cred.UserID, method, status)
		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}

		// --------------------------------------------------
		// 4. Slot -> booked
		// --------------------------------------------------
		if err := domain.MarkBooked(s, b.ID); err != nil {
			return err
		}
		if err := tx.SaveSlot(ctx, s); err != nil {
			return err
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("booking.id", int64(booking.ID)))

	// --------------------------------------------------
	// After commit: best effort only
	// --------------------------------------------------
	uc.cache.Invalidate(context.WithoutCancel(ctx), booking.CourtID, timezone.FormatDate(booking.Date))

	uc.audit.Dispatch(audit.Event{
		UserID:   &cred.UserID,
		Action:   audit.ActionBookingCreated,
		Entity:   "booking",
		EntityID: &booking.ID,
		Metadata: map[string]any{
			"slot_id":        booking.SlotID,
			"payment_method": booking.PaymentMethod,
			"amount":         booking.Amount.StringFixed(2),
		},
	})

	if uc.notifier != nil && cred.Email != "" {
		uc.notifier.Notify(notification.Render(*booking, court.Name, cred.Email))
	}

	return booking, nil
}
