package attendance

import "context"

// AttendanceService defines the attendance registration business logic.
type AttendanceService interface {
	// Register runs the full action resolver once: classify the time of day,
	// reconcile against the existing record, compare against the schedule,
	// persist, and assemble the feedback payload.
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)

	// Lookup previews the employee's state for the kiosk without writing.
	Lookup(ctx context.Context, req LookupRequest) (LookupResponse, error)

	// ListAttendance retrieves records for the HR console.
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetAttendance retrieves a single record by ID.
	GetAttendance(ctx context.Context, id string) (AttendanceRecordResponse, error)
}
