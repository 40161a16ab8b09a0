package booking

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/court-reservations/internal/audit"
	"github.com/BruksfildServices01/court-reservations/internal/cache"
	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/metrics"
	"github.com/BruksfildServices01/court-reservations/internal/timezone"
)

const reapBatchSize = 200

// ReleaseExpiredHolds returns held slots whose deadline passed to the
// calendar. Rows locked by an in-flight hold or confirm are skipped and
// picked up on a later run.
type ReleaseExpiredHolds struct {
	repo  domain.Repository
	cache cache.Availability
	audit *audit.Dispatcher
	now   Clock
}

func NewReleaseExpiredHolds(
	repo domain.Repository,
	availability cache.Availability,
	audit *audit.Dispatcher,
) *ReleaseExpiredHolds {
	return &ReleaseExpiredHolds{
		repo:  repo,
		cache: availability,
		audit: audit,
		now:   utcNow,
	}
}

type courtDay struct {
	courtID uint
	date    string
}

func (uc *ReleaseExpiredHolds) Execute(ctx context.Context) (released int, err error) {
	ctx, span := tracer.Start(ctx, "booking.release_expired_holds")
	defer func() { finish(span, "expire", err) }()

	now := uc.now()
	touched := map[courtDay]struct{}{}

	err = uc.repo.WithinTx(ctx, func(tx domain.Tx) error {
		slots, err := tx.LockExpiredHolds(ctx, now, reapBatchSize)
		if err != nil {
			return err
		}
		for i := range slots {
			s := &slots[i]
			if !domain.Expire(s, now) {
				continue
			}
			if err := tx.SaveSlot(ctx, s); err != nil {
				return err
			}
			touched[courtDay{s.CourtID, timezone.FormatDate(s.Date)}] = struct{}{}
			released++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int("holds.released", released))

	if released == 0 {
		return 0, nil
	}

	// The reaper's context may already be cancelled by shutdown.
	committed := context.WithoutCancel(ctx)
	for k := range touched {
		uc.cache.Invalidate(committed, k.courtID, k.date)
	}
	metrics.AddHoldsExpired(released)

	uc.audit.Dispatch(audit.Event{
		Action:   audit.ActionHoldsExpired,
		Entity:   "slot",
		Metadata: map[string]any{"count": released},
	})

	return released, nil
}
