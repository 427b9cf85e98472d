package admin

import "errors"

var (
	ErrAdminNotFound = errors.New("admin.repository: admin not found")
	ErrEmailTaken    = errors.New("admin.repository: email already registered")

	ErrBuildQuery = errors.New("admin.repository: failed to build query")
	ErrExecQuery  = errors.New("admin.repository: failed to execute query")
	ErrScanRow    = errors.New("admin.repository: failed to scan row")
)
