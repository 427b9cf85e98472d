package appointment

import "errors"

var (
	// ErrAppointmentNotFound no appointment with this id
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken an active appointment already holds this start time
	ErrSlotTaken = errors.New("appointment.repository: slot already taken")

	// ErrSerializationFailure a concurrent serializable transaction won
	ErrSerializationFailure = errors.New("appointment.repository: serialization failure")

	// ErrBuildQuery query builder failure
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery database call failure
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow result scan failure
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
