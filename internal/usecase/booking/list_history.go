package booking

import (
	"context"

	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/models"
)

type ListHistory struct {
	repo domain.Repository
}

func NewListHistory(repo domain.Repository) *ListHistory {
	return &ListHistory{repo: repo}
}

// Execute returns the caller's bookings, newest first.
func (uc *ListHistory) Execute(
	ctx context.Context,
	cred domain.Credential,
) ([]models.Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.list_history")
	defer span.End()

	return uc.repo.ListBookingsForUser(ctx, cred.UserID)
}
