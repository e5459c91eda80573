package attendance

import (
	"regexp"
	"strings"

	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/employee"
)

var last5Regex = regexp.MustCompile(`^\d{5}$`)

// RegisterRequest is one kiosk registration attempt. Action is optional; when
// empty the intent is inferred from the time of day and the record state.
type RegisterRequest struct {
	DNI           string `json:"dni"`
	Last5         string `json:"last5"`
	Action        string `json:"action"`
	Justification string `json:"justification"`
}

func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.DNI) == "" && strings.TrimSpace(r.Last5) == "" {
		return employee.ErrMissingIdentifier
	}
	if r.Last5 != "" && !last5Regex.MatchString(r.Last5) {
		return employee.ErrInvalidLast5
	}
	switch Action(r.Action) {
	case "", ActionCheckIn, ActionCheckOut:
		return nil
	default:
		return ErrInvalidAction
	}
}

type EmployeeInfo struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

type ScheduleInfo struct {
	ExpectedCheckIn  string `json:"expected_check_in"`
	ExpectedCheckOut string `json:"expected_check_out"`
}

// RegisterResponse reports the action taken, the punctuality or earliness
// classification, and the gamification feedback for the current month.
type RegisterResponse struct {
	Message               string       `json:"message"`
	Action                Action       `json:"action"`
	Hint                  Hint         `json:"hint"`
	Status                Punctuality  `json:"status,omitempty"`
	Gamification          string       `json:"gamification,omitempty"`
	FeedbackTag           string       `json:"feedback_tag,omitempty"`
	Employee              EmployeeInfo `json:"employee"`
	Timestamp             string       `json:"timestamp"`
	Schedule              ScheduleInfo `json:"schedule"`
	LateMinutes           *int         `json:"late_minutes,omitempty"`
	EarlyDepartureMinutes *int         `json:"early_departure_minutes,omitempty"`
}

// LookupRequest asks what would happen if the employee registered right now,
// without writing anything.
type LookupRequest struct {
	DNI   string `json:"dni"`
	Last5 string `json:"last5"`
}

func (r LookupRequest) Validate() error {
	if strings.TrimSpace(r.DNI) == "" && strings.TrimSpace(r.Last5) == "" {
		return employee.ErrMissingIdentifier
	}
	if r.Last5 != "" && !last5Regex.MatchString(r.Last5) {
		return employee.ErrInvalidLast5
	}
	return nil
}

type LookupResponse struct {
	Employee      EmployeeInfo `json:"employee"`
	HasCheckedIn  bool         `json:"has_checked_in"`
	HasCheckedOut bool         `json:"has_checked_out"`
	CheckInTime   *string      `json:"check_in_time"`
	CheckOutTime  *string      `json:"check_out_time"`
	Schedule      ScheduleInfo `json:"schedule"`
	Status        Punctuality  `json:"status"`
	Gamification  string       `json:"gamification,omitempty"`
}

// AttendanceFilter narrows the HR console listing.
type AttendanceFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

type AttendanceRecordResponse struct {
	ID                    string  `json:"id"`
	EmployeeID            string  `json:"employee_id"`
	EmployeeName          string  `json:"employee_name,omitempty"`
	Date                  string  `json:"date"`
	CheckIn               *string `json:"check_in"`
	CheckOut              *string `json:"check_out"`
	ExpectedCheckIn       *string `json:"expected_check_in"`
	ExpectedCheckOut      *string `json:"expected_check_out"`
	LateMinutes           int     `json:"late_minutes"`
	EarlyDepartureMinutes int     `json:"early_departure_minutes"`
	Justification         *string `json:"justification,omitempty"`
	Status                Status  `json:"status"`
}

type ListAttendanceResponse struct {
	TotalCount int64                      `json:"total_count"`
	Page       int                        `json:"page"`
	Limit      int                        `json:"limit"`
	TotalPages int                        `json:"total_pages"`
	Records    []AttendanceRecordResponse `json:"records"`
}
