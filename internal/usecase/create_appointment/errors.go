package create_appointment

import "errors"

var (
	// ErrInvalidInput malformed request or end <= start
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrServiceNotFound the requested service does not exist
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrStartInPast the requested start already passed
	ErrStartInPast = errors.New("create_appointment: start is in the past")

	// ErrSlotConflict the interval overlaps a non-cancelled appointment
	ErrSlotConflict = errors.New("create_appointment: slot already taken")

	// ErrInternal store failure
	ErrInternal = errors.New("create_appointment: internal error")
)
