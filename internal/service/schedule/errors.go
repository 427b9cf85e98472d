package schedule

import "errors"

var (
	// ErrInvalidInput the submitted schedule is malformed
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal store failure
	ErrInternal = errors.New("service: internal error")
)
