package booking

import (
	"context"

	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/models"
)

// ListPending returns pay-on-arrival bookings awaiting settlement, oldest first.
type ListPending struct {
	repo domain.Repository
}

func NewListPending(repo domain.Repository) *ListPending {
	return &ListPending{repo: repo}
}

func (uc *ListPending) Execute(
	ctx context.Context,
	cred domain.Credential,
) ([]models.Booking, error) {
	if !cred.IsAdmin() {
		return nil, httperr.ErrBusiness(domain.CodeForbidden)
	}

	ctx, span := tracer.Start(ctx, "booking.list_pending")
	defer span.End()

	return uc.repo.ListBookingsByStatus(ctx, domain.StatusPending)
}
