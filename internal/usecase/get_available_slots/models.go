package get_available_slots

import "time"

// Request slots for one service on one calendar date
type Request struct {
	ServiceID int64
	Date      time.Time // only the calendar date is used
}

// Slot a bookable interval
type Slot struct {
	Start time.Time
	End   time.Time
}

// Response ordered slots for the date
type Response struct {
	Date         time.Time
	ServiceID    int64
	DurationMins int
	SlotStepMins int
	Slots        []Slot
}
