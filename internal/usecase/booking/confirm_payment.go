package booking

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/court-reservations/internal/audit"
	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/models"
)

// ConfirmPayment settles a pending booking at the counter. The booked
// amount is left untouched.
type ConfirmPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   Clock
}

func NewConfirmPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:  repo,
		audit: audit,
		now:   utcNow,
	}
}

func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	cred domain.Credential,
	bookingID uint,
) (paid *models.Booking, err error) {
	ctx, span := tracer.Start(ctx, "booking.confirm_payment")
	span.SetAttributes(attribute.Int64("booking.id", int64(bookingID)))
	defer func() { finish(span, "confirm_payment", err) }()

	if !cred.IsAdmin() {
		return nil, httperr.ErrBusiness(domain.CodeForbidden)
	}

	err = uc.repo.WithinTx(ctx, func(tx domain.Tx) error {
		b, err := tx.LockBooking(ctx, bookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return httperr.ErrBusiness(domain.CodeBookingNotFound)
			}
			return err
		}
		if err := domain.ConfirmPayment(b, uc.now()); err != nil {
			return err
		}
		if err := tx.SaveBooking(ctx, b); err != nil {
			return err
		}
		paid = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &cred.UserID,
		Action:   audit.ActionPaymentConfirmed,
		Entity:   "booking",
		EntityID: &paid.ID,
		Metadata: map[string]any{"amount": paid.Amount.StringFixed(2)},
	})

	return paid, nil
}
