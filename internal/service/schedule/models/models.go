package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// BreakDTO pause inside a working day
type BreakDTO struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// DayDTO one weekday, 0 = Sunday
type DayDTO struct {
	Weekday int              `json:"weekday"`
	Enabled bool             `json:"enabled"`
	Start   types.TimeString `json:"start"`
	End     types.TimeString `json:"end"`
	Breaks  []BreakDTO       `json:"breaks"`
}

// UpdateScheduleRequest replaces the whole week
type UpdateScheduleRequest struct {
	SlotStepMins int      `json:"slotStepMins"`
	Days         []DayDTO `json:"days"`
}

// ScheduleResponse weekly availability
type ScheduleResponse struct {
	SlotStepMins int        `json:"slotStepMins"`
	Days         []DayDTO   `json:"days"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSchedule converts the domain schedule
func FromDomainSchedule(s *domain.WeeklySchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &ScheduleResponse{
		SlotStepMins: s.SlotStepMins,
		Days:         make([]DayDTO, 0, domain.DaysInWeek),
	}
	if !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt
		resp.UpdatedAt = &updated
	}

	for i, d := range s.Days {
		day := DayDTO{
			Weekday: i,
			Enabled: d.Enabled,
			Start:   d.Start,
			End:     d.End,
			Breaks:  make([]BreakDTO, 0, len(d.Breaks)),
		}
		for _, b := range d.Breaks {
			day.Breaks = append(day.Breaks, BreakDTO{Start: b.Start, End: b.End})
		}
		resp.Days = append(resp.Days, day)
	}
	return resp
}
