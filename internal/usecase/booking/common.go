package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/metrics"
	"github.com/BruksfildServices01/court-reservations/internal/models"
	"github.com/BruksfildServices01/court-reservations/internal/notification"
)

var tracer = otel.Tracer("github.com/BruksfildServices01/court-reservations/usecase/booking")

// Notifier receives a confirmation after a booking commits. It must not block.
type Notifier interface {
	Notify(msg notification.Message)
}

type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// lockSlot wraps Tx.LockSlot with lock wait metrics and not-found mapping.
func lockSlot(ctx context.Context, tx domain.Tx, op string, slotID uint) (*models.Slot, error) {
	start := time.Now()
	s, err := tx.LockSlot(ctx, slotID)
	metrics.ObserveLockWait(op, time.Since(start))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(domain.CodeSlotNotFound)
	}
	return s, err
}

func outcome(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	be, ok := httperr.AsBusiness(err)
	if !ok {
		return metrics.OutcomeError
	}
	switch {
	case be.Code == domain.CodeForbidden:
		return metrics.OutcomeInvalid
	case strings.HasSuffix(be.Code, "_not_found"):
		return metrics.OutcomeNotFound
	case strings.HasPrefix(be.Code, "invalid_"):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeConflict
	}
}

// finish records the transition metric and closes the span.
func finish(span trace.Span, op string, err error) {
	metrics.ObserveTransition(op, outcome(err))
	if err != nil {
		span.RecordError(err)
		if _, ok := httperr.AsBusiness(err); !ok {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}
