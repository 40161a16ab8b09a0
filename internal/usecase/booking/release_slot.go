package booking

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/court-reservations/internal/audit"
	"github.com/BruksfildServices01/court-reservations/internal/cache"
	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/models"
	"github.com/BruksfildServices01/court-reservations/internal/timezone"
)

// ReleaseSlot abandons a hold: held -> available. Only the holder or an
// admin may release.
type ReleaseSlot struct {
	repo  domain.Repository
	cache cache.Availability
	audit *audit.Dispatcher
}

func NewReleaseSlot(
	repo domain.Repository,
	availability cache.Availability,
	audit *audit.Dispatcher,
) *ReleaseSlot {
	return &ReleaseSlot{
		repo:  repo,
		cache: availability,
		audit: audit,
	}
}

func (uc *ReleaseSlot) Execute(
	ctx context.Context,
	cred domain.Credential,
	slotID uint,
) (released *models.Slot, err error) {
	ctx, span := tracer.Start(ctx, "booking.release")
	span.SetAttributes(attribute.Int64("slot.id", int64(slotID)))
	defer func() { finish(span, "release", err) }()

	err = uc.repo.WithinTx(ctx, func(tx domain.Tx) error {
		s, err := lockSlot(ctx, tx, "release", slotID)
		if err != nil {
			return err
		}
		if err := domain.Release(s, cred); err != nil {
			return err
		}
		if err := tx.SaveSlot(ctx, s); err != nil {
			return err
		}
		released = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(context.WithoutCancel(ctx), released.CourtID, timezone.FormatDate(released.Date))

	uc.audit.Dispatch(audit.Event{
		UserID:   &cred.UserID,
		Action:   audit.ActionSlotReleased,
		Entity:   "slot",
		EntityID: &released.ID,
	})

	return released, nil
}
