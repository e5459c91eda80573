package schedule

import "errors"

var (
	ErrScheduleNotFound   = errors.New("work schedule not configured")
	ErrNoWindowForToday   = errors.New("no schedule defined for today")
	ErrNoScheduleAssigned = errors.New("employee has no work schedule assigned")
)
