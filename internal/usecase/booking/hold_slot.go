package booking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/court-reservations/internal/audit"
	"github.com/BruksfildServices01/court-reservations/internal/cache"
	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/models"
	"github.com/BruksfildServices01/court-reservations/internal/timezone"
)

type HoldSlot struct {
	repo  domain.Repository
	cache cache.Availability
	audit *audit.Dispatcher
	ttl   time.Duration
	now   Clock
}

// NewHoldSlot builds the hold use case. ttl <= 0 disables hold expiry.
func NewHoldSlot(
	repo domain.Repository,
	availability cache.Availability,
	audit *audit.Dispatcher,
	ttl time.Duration,
) *HoldSlot {
	return &HoldSlot{
		repo:  repo,
		cache: availability,
		audit: audit,
		ttl:   ttl,
		now:   utcNow,
	}
}

func (uc *HoldSlot) Execute(
	ctx context.Context,
	cred domain.Credential,
	slotID uint,
) (held *models.Slot, err error) {
	ctx, span := tracer.Start(ctx, "booking.hold")
	span.SetAttributes(attribute.Int64("slot.id", int64(slotID)))
	defer func() { finish(span, "hold", err) }()

	err = uc.repo.WithinTx(ctx, func(tx domain.Tx) error {
		s, err := lockSlot(ctx, tx, "hold", slotID)
		if err != nil {
			return err
		}

		// Re-checked under the row lock.
		if err := domain.Hold(s, cred.UserID, uc.now(), uc.ttl); err != nil {
			return err
		}

		if err := tx.SaveSlot(ctx, s); err != nil {
			return err
		}
		held = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(context.WithoutCancel(ctx), held.CourtID, timezone.FormatDate(held.Date))

	uc.audit.Dispatch(audit.Event{
		UserID:   &cred.UserID,
		Action:   audit.ActionSlotHeld,
		Entity:   "slot",
		EntityID: &held.ID,
		Metadata: map[string]any{"held_until": held.HeldUntil},
	})

	return held, nil
}
