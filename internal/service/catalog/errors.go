package catalog

import "errors"

var (
	ErrServiceNotFound = errors.New("service not found")
	// ErrServiceInUse appointments reference the service
	ErrServiceInUse = errors.New("service has appointments")
	ErrInvalidInput = errors.New("invalid input data")
	ErrInternal     = errors.New("service: internal error")
)
