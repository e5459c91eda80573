package attendance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/attendance"
)

// onTimeGraceMinutes bounds the "A tiempo" window on both sides and is also
// the late threshold that triggers the justification requirement.
const onTimeGraceMinutes = 5

// parseWindowTime anchors an "HH:MM" schedule string to the given local date.
func parseWindowTime(hhmm string, day time.Time) (time.Time, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid schedule time %q", hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid schedule time %q", hhmm)
	}
	min, err := strconv.Atoi(parts[1])
	if err != nil || min < 0 || min > 59 {
		return time.Time{}, fmt.Errorf("invalid schedule time %q", hhmm)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location()), nil
}

type checkInComparison struct {
	DiffMinutes int
	LateMinutes int
	Punctuality attendance.Punctuality
}

// compareCheckIn computes the signed current-minus-expected delta. The delta
// direction differs from the check-out side on purpose: lateness is measured
// past the start, earliness before the end, each floored in its own
// direction. That asymmetry matches the deployed business rules and must not
// be "fixed" to symmetric rounding.
func compareCheckIn(now, expectedStart time.Time) checkInComparison {
	diff := int(math.Floor(now.Sub(expectedStart).Minutes()))

	var p attendance.Punctuality
	switch {
	case diff < -onTimeGraceMinutes:
		p = attendance.PunctualityEarly
	case diff <= onTimeGraceMinutes:
		p = attendance.PunctualityOnTime
	default:
		p = attendance.PunctualityLate
	}

	late := diff
	if late < 0 {
		late = 0
	}

	return checkInComparison{DiffMinutes: diff, LateMinutes: late, Punctuality: p}
}

// compareCheckOut computes expected-minus-current floored minutes, clamped at
// zero. Leaving after the expected end is simply zero early departure.
func compareCheckOut(now, expectedEnd time.Time) int {
	early := int(math.Floor(expectedEnd.Sub(now).Minutes()))
	if early < 0 {
		return 0
	}
	return early
}
