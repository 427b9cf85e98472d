package domain

// Default values
const (
	DefaultSlotStepMins        = 15
	DefaultServiceDurationMins = 30
)

// Business validation constants
const (
	MinPasswordLength  = 6
	MaxNameLength      = 200
	MaxNoteLength      = 500
	MaxServiceDuration = 24 * 60
	MaxSlotStepMins    = 24 * 60
	DaysInWeek         = 7
	DashboardDays      = 7
)

// ScheduleID the weekly schedule is a singleton row
const ScheduleID int64 = 1

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
