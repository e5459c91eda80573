package attendance

import (
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/attendance"
)

// Resolve reconciles the classifier hint against the day's record state and
// an optional explicitly requested action. It either yields the final action
// or one of the three terminal state-conflict rejections.
func Resolve(hint attendance.Hint, state attendance.RecordState, requested attendance.Action) (attendance.Action, error) {
	if state == attendance.StateClosed {
		return "", attendance.ErrAttendanceComplete
	}

	var final attendance.Action
	switch {
	case requested != "":
		final = requested
	case hint == attendance.HintAmbiguous:
		// Record presence decides: nothing yet today means the actor is
		// arriving, an open record means they are leaving.
		if state == attendance.StateNoRecord {
			final = attendance.ActionCheckIn
		} else {
			final = attendance.ActionCheckOut
		}
	default:
		final = attendance.Action(hint)
	}

	if final == attendance.ActionCheckIn && state == attendance.StateOpen {
		return "", attendance.ErrAlreadyCheckedIn
	}
	if final == attendance.ActionCheckOut && state == attendance.StateNoRecord {
		return "", attendance.ErrNotCheckedIn
	}

	return final, nil
}
