package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/pharma-scheduler/internal/dates"
	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httperr"
)

type GetAvailability struct {
	schedule domain.Schedule
	now      Clock
}

func NewGetAvailability(schedule domain.Schedule, now Clock) *GetAvailability {
	return &GetAvailability{schedule: schedule, now: now}
}

// Execute lists the bookable start times of a day in steps of step.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
	step time.Duration,
) ([]domain.TimeSlot, error) {

	now := uc.now()
	date = dates.ResolveRelative(strings.TrimSpace(date), now)

	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, httperr.Invalid("date", "la fecha debe tener formato YYYY-MM-DD")
	}
	if step <= 0 {
		step = 30 * time.Minute
	}

	return uc.schedule.AvailableSlots(date, now, step), nil
}
