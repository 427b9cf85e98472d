package get_available_slots

import "errors"

var (
	// ErrInvalidInput malformed request: bad ids, non-positive duration or step
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrServiceNotFound the requested service does not exist
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidSchedule the stored schedule cannot be interpreted
	ErrInvalidSchedule = errors.New("get_available_slots: invalid schedule")

	// ErrInternal storage failures
	ErrInternal = errors.New("get_available_slots: internal error")
)
