package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
type AttendanceRepository interface {
	// Create inserts the first-check-in record for the day. The unique
	// (employee_id, date) constraint catches the duplicate-insert race;
	// violations surface as persistence errors, never as silent overwrites.
	Create(ctx context.Context, rec AttendanceRecord) (AttendanceRecord, error)

	// GetByID retrieves a record with its employee name joined in.
	GetByID(ctx context.Context, id string, companyID string) (AttendanceRecord, error)

	// GetByEmployeeAndDate returns nil when no record exists for the day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceRecord, error)

	// SetCheckOut closes an open record. Returns ErrAttendanceNotFound when
	// zero rows match, which means the record vanished or was closed
	// concurrently.
	SetCheckOut(ctx context.Context, id string, checkOut time.Time, expectedCheckOut string, earlyDepartureMinutes int) error

	// ListByEmployeeBetween returns the employee's records with date in
	// [from, to], ordered by date ascending. Feeds the monthly summarizer.
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]AttendanceRecord, error)

	// List retrieves records for the HR console with filters and pagination.
	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]AttendanceRecord, int64, error)
}
