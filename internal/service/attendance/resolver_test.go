package attendance

import (
	"testing"

	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ClosedRecordRejectsEverything(t *testing.T) {
	t.Parallel()

	for _, requested := range []attendance.Action{"", attendance.ActionCheckIn, attendance.ActionCheckOut} {
		_, err := Resolve(attendance.HintAmbiguous, attendance.StateClosed, requested)
		assert.ErrorIs(t, err, attendance.ErrAttendanceComplete)
	}
}

func TestResolve_AmbiguousDefaultsByRecordPresence(t *testing.T) {
	t.Parallel()

	action, err := Resolve(attendance.HintAmbiguous, attendance.StateNoRecord, "")
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCheckIn, action)

	action, err = Resolve(attendance.HintAmbiguous, attendance.StateOpen, "")
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCheckOut, action)
}

func TestResolve_HintPassesThroughWhenConsistent(t *testing.T) {
	t.Parallel()

	action, err := Resolve(attendance.HintCheckIn, attendance.StateNoRecord, "")
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCheckIn, action)

	action, err = Resolve(attendance.HintCheckOut, attendance.StateOpen, "")
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCheckOut, action)
}

func TestResolve_SecondCheckInRejected(t *testing.T) {
	t.Parallel()

	// An explicit check-in on an already open record is the duplicate-tap
	// case.
	_, err := Resolve(attendance.HintAmbiguous, attendance.StateOpen, attendance.ActionCheckIn)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	_, err = Resolve(attendance.HintCheckIn, attendance.StateOpen, attendance.ActionCheckIn)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestResolve_CheckOutWithoutCheckInRejected(t *testing.T) {
	t.Parallel()

	_, err := Resolve(attendance.HintAmbiguous, attendance.StateNoRecord, attendance.ActionCheckOut)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	_, err = Resolve(attendance.HintCheckOut, attendance.StateNoRecord, "")
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestResolve_ExplicitActionOverridesHint(t *testing.T) {
	t.Parallel()

	// Morning with no record hints check-in, but an explicit check-out is
	// still honored against the state, which has nothing to close.
	_, err := Resolve(attendance.HintCheckIn, attendance.StateNoRecord, attendance.ActionCheckOut)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	// Mid-day with an open record hints check-out; an explicit check-out is
	// the same final action.
	action, err := Resolve(attendance.HintCheckOut, attendance.StateOpen, attendance.ActionCheckOut)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCheckOut, action)
}

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()

	// Same inputs always yield the same outcome.
	for i := 0; i < 3; i++ {
		action, err := Resolve(attendance.HintAmbiguous, attendance.StateOpen, "")
		require.NoError(t, err)
		assert.Equal(t, attendance.ActionCheckOut, action)
	}
}
