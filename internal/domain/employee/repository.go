package employee

import "context"

// EmployeeRepository defines read access to employee records. The attendance
// core never mutates employees. Both finders return every match: the table
// spans companies and the kiosk request carries no company context, so a DNI
// shared across companies is a conflict the caller must surface, never a row
// to pick arbitrarily.
type EmployeeRepository interface {
	// FindActiveByDNI retrieves all active employees with the exact DNI.
	FindActiveByDNI(ctx context.Context, dni string) ([]Employee, error)

	// FindActiveByDNISuffix retrieves all active employees whose DNI ends
	// with the given digits.
	FindActiveByDNISuffix(ctx context.Context, last5 string) ([]Employee, error)
}
