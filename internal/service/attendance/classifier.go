package attendance

import (
	"time"

	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/attendance"
)

// Time bands in minutes since local midnight. The kiosk has no explicit
// in/out buttons, so the band plus the day's record state carries the intent.
type timeBand int

const (
	bandLateNight timeBand = iota // [00:00, 01:00)
	bandMorning                   // [01:00, 11:00]
	bandMidday                    // (11:00, 16:00)
	bandAfternoon                 // [16:00, 23:59]
)

const (
	morningStartMin   = 60  // 01:00
	morningEndMin     = 660 // 11:00 inclusive
	afternoonStartMin = 960 // 16:00
)

func bandOf(t time.Time) timeBand {
	min := t.Hour()*60 + t.Minute()
	switch {
	case min < morningStartMin:
		return bandLateNight
	case min <= morningEndMin:
		return bandMorning
	case min < afternoonStartMin:
		return bandMidday
	default:
		return bandAfternoon
	}
}

type classifierKey struct {
	state attendance.RecordState
	band  timeBand
}

// hintTable enumerates every (state, band) pair so each edge is auditable in
// isolation. StateClosed never reaches the classifier; the resolver rejects
// it first. A mid-day request with an open record is the early-departure
// case. A morning request with an open record is most likely a duplicate
// check-in attempt, so it stays ambiguous and the resolver decides.
// The [00:00, 01:00) slice sits outside every band the kiosk was designed
// around and is treated as ambiguous in both states.
var hintTable = map[classifierKey]attendance.Hint{
	{attendance.StateNoRecord, bandLateNight}: attendance.HintAmbiguous,
	{attendance.StateNoRecord, bandMorning}:   attendance.HintCheckIn,
	{attendance.StateNoRecord, bandMidday}:    attendance.HintAmbiguous,
	{attendance.StateNoRecord, bandAfternoon}: attendance.HintAmbiguous,

	{attendance.StateOpen, bandLateNight}: attendance.HintAmbiguous,
	{attendance.StateOpen, bandMorning}:   attendance.HintAmbiguous,
	{attendance.StateOpen, bandMidday}:    attendance.HintCheckOut,
	{attendance.StateOpen, bandAfternoon}: attendance.HintCheckOut,
}

// Classify maps the local timestamp and the day's record state to a coarse
// action hint.
func Classify(state attendance.RecordState, now time.Time) attendance.Hint {
	if hint, ok := hintTable[classifierKey{state, bandOf(now)}]; ok {
		return hint
	}
	return attendance.HintAmbiguous
}
