package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input data")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInternal           = errors.New("service: internal error")
)
