package booking

import (
	"time"

	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/models"
	"github.com/BruksfildServices01/court-reservations/internal/timezone"
)

// MaxGenerationDays bounds a single generate request.
const MaxGenerationDays = 366

type GenerateInput struct {
	CourtID         uint
	DateStart       time.Time
	DateEnd         time.Time
	TimeStart       string
	TimeEnd         string
	IntervalMinutes int
}

// BuildSlots expands a date range x time range into available slots of
// IntervalMinutes each. A trailing interval that would run past TimeEnd is
// dropped. No check is made against slots that already exist.
func BuildSlots(in GenerateInput) ([]models.Slot, error) {
	if in.IntervalMinutes <= 0 {
		return nil, httperr.ErrBusiness(CodeInvalidInterval)
	}

	dateStart := truncateDate(in.DateStart)
	dateEnd := truncateDate(in.DateEnd)
	if dateEnd.Before(dateStart) {
		return nil, httperr.ErrBusiness(CodeInvalidDateRange)
	}
	if int(dateEnd.Sub(dateStart).Hours()/24) >= MaxGenerationDays {
		return nil, httperr.ErrBusinessDetail(CodeInvalidDateRange, "range too large")
	}

	startMin, err := timezone.ParseClock(in.TimeStart)
	if err != nil {
		return nil, httperr.ErrBusiness(CodeInvalidTimeRange)
	}
	endMin, err := timezone.ParseClockEnd(in.TimeEnd)
	if err != nil || endMin <= startMin {
		return nil, httperr.ErrBusiness(CodeInvalidTimeRange)
	}

	perDay := (endMin - startMin) / in.IntervalMinutes
	if perDay == 0 {
		return []models.Slot{}, nil
	}

	days := int(dateEnd.Sub(dateStart).Hours()/24) + 1
	slots := make([]models.Slot, 0, days*perDay)

	for d := dateStart; !d.After(dateEnd); d = d.AddDate(0, 0, 1) {
		for m := startMin; m+in.IntervalMinutes <= endMin; m += in.IntervalMinutes {
			slots = append(slots, models.Slot{
				CourtID:   in.CourtID,
				Date:      d,
				StartTime: timezone.FormatClock(m),
				EndTime:   timezone.FormatClock(m + in.IntervalMinutes),
				Status:    string(SlotAvailable),
			})
		}
	}

	return slots, nil
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
