package booking

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/court-reservations/internal/cache"
	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/dto"
	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/timezone"
)

type ListAvailability struct {
	repo  domain.Repository
	cache cache.Availability
}

func NewListAvailability(
	repo domain.Repository,
	availability cache.Availability,
) *ListAvailability {
	return &ListAvailability{
		repo:  repo,
		cache: availability,
	}
}

// Execute lists every slot of the court on date (YYYY-MM-DD) by start time,
// whatever its status. A day with no slots yields an empty list.
func (uc *ListAvailability) Execute(
	ctx context.Context,
	courtID uint,
	date string,
) ([]dto.SlotDTO, error) {
	ctx, span := tracer.Start(ctx, "booking.list_availability")
	span.SetAttributes(
		attribute.Int64("court.id", int64(courtID)),
		attribute.String("date", date),
	)
	defer span.End()

	day, err := timezone.ParseDate(date)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(domain.CodeInvalidDateRange, date)
	}
	key := timezone.FormatDate(day)

	if slots, ok := uc.cache.Get(ctx, courtID, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return slots, nil
	}

	// The version must be read before the rows.
	version, cacheable := uc.cache.Version(ctx, courtID, key)

	rows, err := uc.repo.ListSlotsForDay(ctx, courtID, day)
	if err != nil {
		return nil, err
	}

	slots := dto.FromSlots(rows)
	if cacheable {
		uc.cache.Set(ctx, courtID, key, version, slots)
	}
	return slots, nil
}
