package schedule

import (
	"encoding/json"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// dayJSON shape of one weekday inside the days JSONB column
type dayJSON struct {
	Weekday int         `json:"weekday"`
	Enabled bool        `json:"enabled"`
	Start   string      `json:"start,omitempty"`
	End     string      `json:"end,omitempty"`
	Breaks  []breakJSON `json:"breaks,omitempty"`
}

type breakJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func encodeDays(days [domain.DaysInWeek]domain.DaySchedule) ([]byte, error) {
	out := make([]dayJSON, 0, domain.DaysInWeek)
	for i, d := range days {
		item := dayJSON{
			Weekday: i,
			Enabled: d.Enabled,
			Start:   d.Start.String(),
			End:     d.End.String(),
		}
		for _, b := range d.Breaks {
			item.Breaks = append(item.Breaks, breakJSON{Start: b.Start.String(), End: b.End.String()})
		}
		out = append(out, item)
	}
	return json.Marshal(out)
}

// decodeDays ignores entries with an out of range weekday
func decodeDays(raw []byte) ([domain.DaysInWeek]domain.DaySchedule, error) {
	var days [domain.DaysInWeek]domain.DaySchedule
	if len(raw) == 0 {
		return days, nil
	}

	var items []dayJSON
	if err := json.Unmarshal(raw, &items); err != nil {
		return days, err
	}

	for _, item := range items {
		if item.Weekday < 0 || item.Weekday >= domain.DaysInWeek {
			continue
		}
		d := domain.DaySchedule{
			Enabled: item.Enabled,
			Start:   types.TimeString(item.Start),
			End:     types.TimeString(item.End),
		}
		for _, b := range item.Breaks {
			d.Breaks = append(d.Breaks, domain.Break{
				Start: types.TimeString(b.Start),
				End:   types.TimeString(b.End),
			})
		}
		days[item.Weekday] = d
	}
	return days, nil
}
