package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest checks the request shape
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// dayIn returns midnight of date's calendar day in loc
func dayIn(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// dropPast removes slots that already started
func dropPast(slots []time.Time, now time.Time) []time.Time {
	result := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		if !s.Before(now) {
			result = append(result, s)
		}
	}
	return result
}
