package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	booked := Interval{Start: at(10, 0), End: at(10, 45)}

	tests := []struct {
		name      string
		candidate Interval
		want      bool
	}{
		{"starts inside", Interval{at(10, 15), at(10, 45)}, true},
		{"covers", Interval{at(9, 30), at(11, 0)}, true},
		{"inside", Interval{at(10, 10), at(10, 20)}, true},
		{"identical", Interval{at(10, 0), at(10, 45)}, true},
		{"adjacent after", Interval{at(10, 45), at(11, 15)}, false},
		{"adjacent before", Interval{at(9, 30), at(10, 0)}, false},
		{"far away", Interval{at(14, 0), at(14, 30)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.candidate.Overlaps(booked))
			assert.Equal(t, tt.want, booked.Overlaps(tt.candidate))
		})
	}
}

func TestActiveIntervals_SkipsCancelled(t *testing.T) {
	list := []*Appointment{
		{StartAt: at(10, 0), EndAt: at(10, 30), Status: StatusCancelled},
		{StartAt: at(11, 0), EndAt: at(11, 30), Status: StatusConfirmed},
		{StartAt: at(12, 0), EndAt: at(12, 30), Status: StatusPending},
	}

	got := ActiveIntervals(list)
	assert.Equal(t, []Interval{{at(11, 0), at(11, 30)}, {at(12, 0), at(12, 30)}}, got)
}

func TestWeeklySchedule_DayFor(t *testing.T) {
	w := ClosedWeek(DefaultSlotStepMins)
	w.Days[time.Monday] = DaySchedule{Enabled: true, Start: "09:00", End: "17:00"}

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.True(t, w.DayFor(monday).Enabled)
	assert.False(t, w.DayFor(monday.AddDate(0, 0, 1)).Enabled)

	var missing *WeeklySchedule
	assert.False(t, missing.DayFor(monday).Enabled)
}

func TestParseAppointmentStatus(t *testing.T) {
	st, err := ParseAppointmentStatus("cancelled")
	assert.NoError(t, err)
	assert.Equal(t, StatusCancelled, st)

	_, err = ParseAppointmentStatus("done")
	assert.Error(t, err)
}
