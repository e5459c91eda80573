package attendance

import "time"

// AttendanceRecord represents one employee's attendance for exactly one local
// calendar date. Created on the first check-in of the day, mutated exactly
// once to set the check-out. At most one record exists per (employee, date);
// the table carries a unique constraint on that pair.
type AttendanceRecord struct {
	ID                    string
	EmployeeID            string
	Date                  time.Time // calendar date, local timezone
	CheckIn               *time.Time
	CheckOut              *time.Time
	ExpectedCheckIn       *string // "HH:MM", copied from the schedule at write time
	ExpectedCheckOut      *string
	LateMinutes           int // meaningful only when CheckIn is set
	EarlyDepartureMinutes int // meaningful only when CheckOut is set
	Justification         *string
	Status                Status
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// DTO
	EmployeeName *string
}

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
)

// Action is a resolved registration intent.
type Action string

const (
	ActionCheckIn  Action = "check_in"
	ActionCheckOut Action = "check_out"
)

// Hint is the raw time-classifier output, before conflict resolution.
type Hint string

const (
	HintCheckIn   Hint = "check_in"
	HintCheckOut  Hint = "check_out"
	HintAmbiguous Hint = "ambiguous"
)

// RecordState is the day's record lifecycle position.
type RecordState int

const (
	StateNoRecord RecordState = iota
	StateOpen                 // check-in set, check-out missing
	StateClosed               // both set
)

func (s RecordState) String() string {
	switch s {
	case StateNoRecord:
		return "no_record"
	case StateOpen:
		return "open"
	default:
		return "closed"
	}
}

// StateOf derives the lifecycle state from a day's record, or from its
// absence.
func StateOf(rec *AttendanceRecord) RecordState {
	switch {
	case rec == nil:
		return StateNoRecord
	case rec.CheckOut == nil:
		return StateOpen
	default:
		return StateClosed
	}
}

// Punctuality classifies a check-in delta against the expected start.
type Punctuality string

const (
	PunctualityEarly  Punctuality = "Temprano"
	PunctualityOnTime Punctuality = "A tiempo"
	PunctualityLate   Punctuality = "Tarde"
)
