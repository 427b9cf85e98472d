package schedule

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// toDomain validates req and builds the weekly schedule.
// Breaks are sorted by start before the overlap check.
func toDomain(req *models.UpdateScheduleRequest) (*domain.WeeklySchedule, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	step := req.SlotStepMins
	if step == 0 {
		step = domain.DefaultSlotStepMins
	}
	if step < 0 || step > domain.MaxSlotStepMins {
		return nil, fmt.Errorf("%w: slotStepMins must be between 1 and %d", ErrInvalidInput, domain.MaxSlotStepMins)
	}

	if len(req.Days) != domain.DaysInWeek {
		return nil, fmt.Errorf("%w: exactly %d days are required, got %d", ErrInvalidInput, domain.DaysInWeek, len(req.Days))
	}

	result := &domain.WeeklySchedule{ID: domain.ScheduleID, SlotStepMins: step}
	seen := make(map[int]bool, domain.DaysInWeek)

	for _, d := range req.Days {
		if d.Weekday < 0 || d.Weekday >= domain.DaysInWeek {
			return nil, fmt.Errorf("%w: weekday %d out of range", ErrInvalidInput, d.Weekday)
		}
		if seen[d.Weekday] {
			return nil, fmt.Errorf("%w: weekday %d listed twice", ErrInvalidInput, d.Weekday)
		}
		seen[d.Weekday] = true

		day, err := validateDay(d)
		if err != nil {
			return nil, err
		}
		result.Days[d.Weekday] = day
	}

	return result, nil
}

func validateDay(d models.DayDTO) (domain.DaySchedule, error) {
	if !d.Enabled {
		// closed days keep their hours so the form can be re-enabled later
		day := domain.DaySchedule{Enabled: false}
		if d.Start.Validate() == nil && d.End.Validate() == nil {
			day.Start, day.End = d.Start, d.End
		}
		return day, nil
	}

	if err := d.Start.Validate(); err != nil {
		return domain.DaySchedule{}, fmt.Errorf("%w: weekday %d start: %v", ErrInvalidInput, d.Weekday, err)
	}
	if err := d.End.Validate(); err != nil {
		return domain.DaySchedule{}, fmt.Errorf("%w: weekday %d end: %v", ErrInvalidInput, d.Weekday, err)
	}
	if !d.Start.IsBefore(d.End) {
		return domain.DaySchedule{}, fmt.Errorf("%w: weekday %d start must be before end", ErrInvalidInput, d.Weekday)
	}

	breaks := make([]domain.Break, 0, len(d.Breaks))
	for _, b := range d.Breaks {
		if err := validateBreak(d.Weekday, d.Start, d.End, b); err != nil {
			return domain.DaySchedule{}, err
		}
		breaks = append(breaks, domain.Break{Start: b.Start, End: b.End})
	}
	sort.Slice(breaks, func(i, j int) bool { return breaks[i].Start.IsBefore(breaks[j].Start) })

	for i := 1; i < len(breaks); i++ {
		if breaks[i].Start.IsBefore(breaks[i-1].End) {
			return domain.DaySchedule{}, fmt.Errorf("%w: weekday %d breaks %s-%s and %s-%s overlap",
				ErrInvalidInput, d.Weekday, breaks[i-1].Start, breaks[i-1].End, breaks[i].Start, breaks[i].End)
		}
	}

	return domain.DaySchedule{Enabled: true, Start: d.Start, End: d.End, Breaks: breaks}, nil
}

func validateBreak(weekday int, dayStart, dayEnd types.TimeString, b models.BreakDTO) error {
	if err := b.Start.Validate(); err != nil {
		return fmt.Errorf("%w: weekday %d break start: %v", ErrInvalidInput, weekday, err)
	}
	if err := b.End.Validate(); err != nil {
		return fmt.Errorf("%w: weekday %d break end: %v", ErrInvalidInput, weekday, err)
	}
	if !b.Start.IsBefore(b.End) {
		return fmt.Errorf("%w: weekday %d break start must be before end", ErrInvalidInput, weekday)
	}
	if b.Start.IsBefore(dayStart) || b.End.IsAfter(dayEnd) {
		return fmt.Errorf("%w: weekday %d break %s-%s outside working hours", ErrInvalidInput, weekday, b.Start, b.End)
	}
	return nil
}
