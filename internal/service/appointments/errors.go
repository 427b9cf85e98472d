package appointments

import "errors"

var (
	// ErrAppointmentNotFound no appointment with this id
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied the caller neither owns the appointment nor is an admin
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyCancelled the appointment is already cancelled
	ErrAlreadyCancelled = errors.New("appointment already cancelled")

	// ErrInvalidInput malformed filter
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal store failure
	ErrInternal = errors.New("service: internal error")
)
