package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ResolveSlots returns the ordered start times of bookable slots on date.
//
// Candidates start at the day's opening time and advance by stepMins while
// the whole [start, start+durationMins) interval fits before closing time.
// A candidate is dropped when it overlaps a break or any of existing
// (half-open test). A disabled day yields an empty result.
//
// Examples for 09:00-17:00, break 12:30-13:00, step 15, duration 30:
// - first slot 09:00, last slot 16:30 (16:45 would end at 17:15)
// - nothing starts in [12:15, 13:00)
func ResolveSlots(
	date time.Time,
	durationMins int,
	stepMins int,
	day domain.DaySchedule,
	existing []domain.Interval,
) ([]time.Time, error) {
	if durationMins <= 0 {
		return nil, fmt.Errorf("%w: service duration must be positive, got %d", ErrInvalidInput, durationMins)
	}
	if stepMins <= 0 {
		return nil, fmt.Errorf("%w: slot step must be positive, got %d", ErrInvalidInput, stepMins)
	}

	if !day.Enabled {
		return []time.Time{}, nil
	}

	dayStart, err := day.Start.On(date)
	if err != nil {
		return nil, fmt.Errorf("%w: day start: %v", ErrInvalidSchedule, err)
	}
	dayEnd, err := day.End.On(date)
	if err != nil {
		return nil, fmt.Errorf("%w: day end: %v", ErrInvalidSchedule, err)
	}

	breaks := make([]domain.Interval, 0, len(day.Breaks))
	for _, b := range day.Breaks {
		start, err := b.Start.On(date)
		if err != nil {
			return nil, fmt.Errorf("%w: break start: %v", ErrInvalidSchedule, err)
		}
		end, err := b.End.On(date)
		if err != nil {
			return nil, fmt.Errorf("%w: break end: %v", ErrInvalidSchedule, err)
		}
		breaks = append(breaks, domain.Interval{Start: start, End: end})
	}

	duration := time.Duration(durationMins) * time.Minute
	step := time.Duration(stepMins) * time.Minute

	slots := make([]time.Time, 0)
	for cursor := dayStart; !cursor.Add(duration).After(dayEnd); cursor = cursor.Add(step) {
		candidate := domain.Interval{Start: cursor, End: cursor.Add(duration)}

		if candidate.OverlapsAny(breaks) || candidate.OverlapsAny(existing) {
			continue
		}

		slots = append(slots, cursor)
	}

	return slots, nil
}
