package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found or not active")
	ErrDuplicateEmployee = errors.New("multiple employees match, contact HR")
	ErrMissingIdentifier = errors.New("either dni or last5 is required")
	ErrInvalidLast5      = errors.New("last5 must be exactly 5 digits")
)
