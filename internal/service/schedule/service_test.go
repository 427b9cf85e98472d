package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) InvalidateAll(context.Context) error {
	c.calls++
	return nil
}

func weekdaysRequest() *models.UpdateScheduleRequest {
	req := &models.UpdateScheduleRequest{}
	for wd := 0; wd < 7; wd++ {
		day := models.DayDTO{Weekday: wd}
		if wd >= 1 && wd <= 5 {
			day.Enabled = true
			day.Start = "09:00"
			day.End = "17:00"
			day.Breaks = []models.BreakDTO{{Start: "12:30", End: "13:00"}}
		}
		req.Days = append(req.Days, day)
	}
	return req
}

func TestGet_ClosedWeekWhenMissing(t *testing.T) {
	svc := NewService(memory.NewStore().Schedule(), nil, 15, nopLogger{})

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, resp.SlotStepMins)
	require.Len(t, resp.Days, 7)
	for _, d := range resp.Days {
		assert.False(t, d.Enabled)
	}
}

func TestUpdate_RoundTrip(t *testing.T) {
	inv := &countingInvalidator{}
	svc := NewService(memory.NewStore().Schedule(), inv, 15, nopLogger{})

	_, err := svc.Update(context.Background(), weekdaysRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, resp.SlotStepMins, "zero step defaults to 15")
	assert.True(t, resp.Days[1].Enabled)
	assert.Equal(t, types.TimeString("09:00"), resp.Days[1].Start)
	assert.Equal(t, []models.BreakDTO{{Start: "12:30", End: "13:00"}}, resp.Days[1].Breaks)
	assert.False(t, resp.Days[0].Enabled)
	assert.NotNil(t, resp.UpdatedAt)
}

func TestUpdate_SortsBreaks(t *testing.T) {
	svc := NewService(memory.NewStore().Schedule(), nil, 15, nopLogger{})
	req := weekdaysRequest()
	req.Days[2].Breaks = []models.BreakDTO{{Start: "15:00", End: "15:15"}, {Start: "10:00", End: "10:15"}}

	resp, err := svc.Update(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), resp.Days[2].Breaks[0].Start)
}

func TestUpdate_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *models.UpdateScheduleRequest)
	}{
		{"six days", func(r *models.UpdateScheduleRequest) { r.Days = r.Days[:6] }},
		{"negative step", func(r *models.UpdateScheduleRequest) { r.SlotStepMins = -5 }},
		{"duplicate weekday", func(r *models.UpdateScheduleRequest) { r.Days[6].Weekday = 1 }},
		{"weekday out of range", func(r *models.UpdateScheduleRequest) { r.Days[0].Weekday = 7 }},
		{"bad time", func(r *models.UpdateScheduleRequest) { r.Days[1].Start = "9am" }},
		{"start after end", func(r *models.UpdateScheduleRequest) { r.Days[1].Start, r.Days[1].End = "17:00", "09:00" }},
		{"empty break", func(r *models.UpdateScheduleRequest) {
			r.Days[1].Breaks = []models.BreakDTO{{Start: "12:00", End: "12:00"}}
		}},
		{"break outside hours", func(r *models.UpdateScheduleRequest) {
			r.Days[1].Breaks = []models.BreakDTO{{Start: "08:30", End: "09:30"}}
		}},
		{"overlapping breaks", func(r *models.UpdateScheduleRequest) {
			r.Days[1].Breaks = []models.BreakDTO{{Start: "12:00", End: "12:45"}, {Start: "12:30", End: "13:00"}}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(memory.NewStore().Schedule(), nil, 15, nopLogger{})
			req := weekdaysRequest()
			tc.mutate(req)

			_, err := svc.Update(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_ClosedDayIgnoresBadHours(t *testing.T) {
	svc := NewService(memory.NewStore().Schedule(), nil, 15, nopLogger{})
	req := weekdaysRequest()
	req.Days[0].Start = "garbage"

	_, err := svc.Update(context.Background(), req)
	assert.NoError(t, err)
}
