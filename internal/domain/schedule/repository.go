package schedule

import "context"

// WorkScheduleRepository defines read access to work schedules. Schedules are
// owned by the company-settings subsystem.
type WorkScheduleRepository interface {
	GetByID(ctx context.Context, id string) (WorkSchedule, error)
}
