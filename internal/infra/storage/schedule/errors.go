package schedule

import "errors"

var (
	// ErrScheduleNotFound availability was never saved
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	ErrBuildQuery = errors.New("schedule.repository: failed to build query")
	ErrExecQuery  = errors.New("schedule.repository: failed to execute query")
	ErrScanRow    = errors.New("schedule.repository: failed to scan row")
	ErrEncodeDays = errors.New("schedule.repository: failed to encode days")
)
