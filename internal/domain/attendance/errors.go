package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors. The three state-conflict rejections are terminal
// for the request; none of them leaves a partial mutation behind.
var (
	ErrAlreadyCheckedIn   = errors.New("already has an attendance entry today")
	ErrNotCheckedIn       = errors.New("no attendance entry today")
	ErrAttendanceComplete = errors.New("attendance already complete for today")

	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidAction      = errors.New("action must be check_in or check_out")
)

// JustificationRequiredError is not a failure: the check-in is suspended,
// nothing is written, and the caller is expected to resubmit with the
// justification field populated.
type JustificationRequiredError struct {
	LateMinutes  int
	ExpectedTime string
	ActualTime   string
}

func (e *JustificationRequiredError) Error() string {
	return fmt.Sprintf("late check-in (%d min) requires a justification", e.LateMinutes)
}
