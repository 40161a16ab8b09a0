package booking

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/court-reservations/internal/audit"
	"github.com/BruksfildServices01/court-reservations/internal/cache"
	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/metrics"
	"github.com/BruksfildServices01/court-reservations/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type GenerateSlotsInput struct {
	CourtID         uint
	DateStart       string
	DateEnd         string
	TimeStart       string
	TimeEnd         string
	IntervalMinutes int
}

// ======================================================
// USE CASE
// ======================================================

type GenerateSlots struct {
	repo  domain.Repository
	cache cache.Availability
	audit *audit.Dispatcher
}

func NewGenerateSlots(
	repo domain.Repository,
	availability cache.Availability,
	audit *audit.Dispatcher,
) *GenerateSlots {
	return &GenerateSlots{
		repo:  repo,
		cache: availability,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute writes the slots and returns how many were created. Slots that
// already exist for the same court and window are not deduplicated.
func (uc *GenerateSlots) Execute(
	ctx context.Context,
	cred domain.Credential,
	in GenerateSlotsInput,
) (created int, err error) {
	ctx, span := tracer.Start(ctx, "booking.generate_slots")
	span.SetAttributes(attribute.Int64("court.id", int64(in.CourtID)))
	defer func() { finish(span, "generate", err) }()

	if !cred.IsAdmin() {
		return 0, httperr.ErrBusiness(domain.CodeForbidden)
	}

	dateStart, err := timezone.ParseDate(in.DateStart)
	if err != nil {
		return 0, httperr.ErrBusinessDetail(domain.CodeInvalidDateRange, in.DateStart)
	}
	dateEnd, err := timezone.ParseDate(in.DateEnd)
	if err != nil {
		return 0, httperr.ErrBusinessDetail(domain.CodeInvalidDateRange, in.DateEnd)
	}

	slots, err := domain.BuildSlots(domain.GenerateInput{
		CourtID:         in.CourtID,
		DateStart:       dateStart,
		DateEnd:         dateEnd,
		TimeStart:       in.TimeStart,
		TimeEnd:         in.TimeEnd,
		IntervalMinutes: in.IntervalMinutes,
	})
	if err != nil {
		return 0, err
	}

	// --------------------------------------------------
	// Court must exist
	// --------------------------------------------------
	if _, err := uc.repo.GetCourt(ctx, in.CourtID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, httperr.ErrBusiness(domain.CodeCourtNotFound)
		}
		return 0, err
	}

	if len(slots) == 0 {
		return 0, nil
	}

	created, err = uc.repo.CreateSlots(ctx, slots)
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int("slots.created", created))

	// --------------------------------------------------
	// After commit
	// --------------------------------------------------
	var dates []string
	for d := dateStart; !d.After(dateEnd); d = d.AddDate(0, 0, 1) {
		dates = append(dates, timezone.FormatDate(d))
	}
	uc.cache.Invalidate(context.WithoutCancel(ctx), in.CourtID, dates...)

	metrics.AddSlotsGenerated(created)

	courtID := in.CourtID
	uc.audit.Dispatch(audit.Event{
		UserID:   &cred.UserID,
		Action:   audit.ActionSlotsGenerated,
		Entity:   "court",
		EntityID: &courtID,
		Metadata: map[string]any{
			"date_start": in.DateStart,
			"date_end":   in.DateEnd,
			"time_start": in.TimeStart,
			"time_end":   in.TimeEnd,
			"interval":   in.IntervalMinutes,
			"created":    created,
		},
	})

	return created, nil
}
