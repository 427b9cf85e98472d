package customers

import "errors"

var (
	ErrCustomerNotFound        = errors.New("customer not found")
	ErrEmailTaken              = errors.New("email already registered")
	ErrCustomerHasAppointments = errors.New("customer has appointments")
	ErrInvalidInput            = errors.New("invalid input data")
	ErrInternal                = errors.New("service: internal error")
)
