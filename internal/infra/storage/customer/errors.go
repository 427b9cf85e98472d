package customer

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer.repository: customer not found")
	ErrEmailTaken       = errors.New("customer.repository: email already registered")
	// ErrCustomerHasAppointments appointments reference the customer, delete is refused
	ErrCustomerHasAppointments = errors.New("customer.repository: customer has appointments")

	ErrBuildQuery = errors.New("customer.repository: failed to build query")
	ErrExecQuery  = errors.New("customer.repository: failed to execute query")
	ErrScanRow    = errors.New("customer.repository: failed to scan row")
)
