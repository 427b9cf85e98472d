package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Break a pause inside a working day
type Break struct {
	Start types.TimeString
	End   types.TimeString
}

// DaySchedule working hours of one weekday
type DaySchedule struct {
	Enabled bool
	Start   types.TimeString
	End     types.TimeString
	Breaks  []Break
}

// WeeklySchedule recurring availability.
// Days is indexed by time.Weekday (0 = Sunday).
type WeeklySchedule struct {
	ID           int64
	SlotStepMins int
	Days         [DaysInWeek]DaySchedule
	UpdatedAt    time.Time
}

// DayFor returns the schedule of date's weekday.
// A day that was never configured is closed.
func (w *WeeklySchedule) DayFor(date time.Time) DaySchedule {
	if w == nil {
		return DaySchedule{}
	}
	return w.Days[int(date.Weekday())]
}

// ClosedWeek schedule with every day disabled
func ClosedWeek(slotStepMins int) *WeeklySchedule {
	return &WeeklySchedule{
		ID:           ScheduleID,
		SlotStepMins: slotStepMins,
	}
}
