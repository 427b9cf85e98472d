package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func clock(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func workday() domain.DaySchedule {
	return domain.DaySchedule{
		Enabled: true,
		Start:   "09:00",
		End:     "17:00",
		Breaks:  []domain.Break{{Start: "12:30", End: "13:00"}},
	}
}

func TestResolveSlots_WorkdayWithBreak(t *testing.T) {
	slots, err := ResolveSlots(monday, 30, 15, workday(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	assert.Equal(t, clock(9, 0), slots[0])
	assert.Equal(t, clock(9, 15), slots[1])
	assert.Equal(t, clock(16, 30), slots[len(slots)-1])

	breakStart, breakEnd := clock(12, 15), clock(13, 0)
	for _, s := range slots {
		inBreakWindow := !s.Before(breakStart) && s.Before(breakEnd)
		assert.False(t, inBreakWindow, "slot %s overlaps the break", s.Format(domain.TimeFormat))
	}
	assert.Contains(t, slots, clock(12, 0))
	assert.Contains(t, slots, clock(13, 0))

	// 09:00..16:30 every 15 min is 31 candidates, minus 12:15, 12:30, 12:45
	assert.Len(t, slots, 28)
}

func TestResolveSlots_Containment(t *testing.T) {
	day := workday()
	slots, err := ResolveSlots(monday, 45, 20, day, nil)
	require.NoError(t, err)

	for _, s := range slots {
		assert.False(t, s.Before(clock(9, 0)))
		assert.False(t, s.Add(45*time.Minute).After(clock(17, 0)))
		assert.False(t, domain.Interval{Start: s, End: s.Add(45 * time.Minute)}.
			Overlaps(domain.Interval{Start: clock(12, 30), End: clock(13, 0)}))
	}
}

func TestResolveSlots_ExistingAppointment(t *testing.T) {
	existing := []domain.Interval{{Start: clock(10, 0), End: clock(10, 45)}}

	slots, err := ResolveSlots(monday, 30, 15, workday(), existing)
	require.NoError(t, err)

	assert.NotContains(t, slots, clock(9, 45))
	assert.NotContains(t, slots, clock(10, 0))
	assert.NotContains(t, slots, clock(10, 15))
	assert.NotContains(t, slots, clock(10, 30))
	assert.Contains(t, slots, clock(9, 30))
	assert.Contains(t, slots, clock(10, 45))
}

func TestResolveSlots_ClosedDay(t *testing.T) {
	day := workday()
	day.Enabled = false

	slots, err := ResolveSlots(monday, 30, 15, day, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)

	slots, err = ResolveSlots(monday, 30, 15, domain.DaySchedule{}, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestResolveSlots_DurationLongerThanDay(t *testing.T) {
	day := domain.DaySchedule{Enabled: true, Start: "09:00", End: "10:00"}

	slots, err := ResolveSlots(monday, 90, 15, day, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestResolveSlots_StepNotDividingSpan(t *testing.T) {
	day := domain.DaySchedule{Enabled: true, Start: "09:00", End: "10:00"}

	slots, err := ResolveSlots(monday, 20, 25, day, nil)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{clock(9, 0), clock(9, 25)}, slots)
}

func TestResolveSlots_InvalidArguments(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		step     int
	}{
		{"zero step", 30, 0},
		{"negative step", 30, -15},
		{"zero duration", 0, 15},
		{"negative duration", -30, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveSlots(monday, tt.duration, tt.step, workday(), nil)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestResolveSlots_BadScheduleTime(t *testing.T) {
	day := domain.DaySchedule{Enabled: true, Start: types.TimeString("9am"), End: "17:00"}

	_, err := ResolveSlots(monday, 30, 15, day, nil)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestResolveSlots_Idempotent(t *testing.T) {
	existing := []domain.Interval{{Start: clock(14, 0), End: clock(14, 30)}}

	first, err := ResolveSlots(monday, 30, 15, workday(), existing)
	require.NoError(t, err)
	second, err := ResolveSlots(monday, 30, 15, workday(), existing)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveSlots_Location(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	day := domain.DaySchedule{Enabled: true, Start: "09:00", End: "10:00"}

	slots, err := ResolveSlots(date, 60, 15, day, nil)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Equal(time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)))
}
