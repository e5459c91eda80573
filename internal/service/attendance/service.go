package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/attendance"
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/employee"
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/schedule"
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/pkg/clock"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	schedule.WorkScheduleRepository
	clock        clock.Clock
	queryTimeout time.Duration
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.WorkScheduleRepository,
	clk clock.Clock,
	queryTimeout time.Duration,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		WorkScheduleRepository: scheduleRepo,
		clock:                  clk,
		queryTimeout:           queryTimeout,
	}
}

// findEmployee resolves the kiosk identifier: exact DNI first, then the
// last-5-digits fuzzy match. Zero matches and multiple matches are both
// terminal; a DNI duplicated across companies must never resolve to an
// arbitrary row.
func (s *AttendanceServiceImpl) findEmployee(ctx context.Context, dni, last5 string) (employee.Employee, error) {
	var matches []employee.Employee
	var err error
	if dni != "" {
		matches, err = s.EmployeeRepository.FindActiveByDNI(ctx, dni)
	} else {
		matches, err = s.EmployeeRepository.FindActiveByDNISuffix(ctx, last5)
	}
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to search employees: %w", err)
	}

	switch len(matches) {
	case 0:
		return employee.Employee{}, employee.ErrEmployeeNotFound
	case 1:
		return matches[0], nil
	default:
		return employee.Employee{}, employee.ErrDuplicateEmployee
	}
}

// todayWindow resolves the employee's schedule window for the current
// weekday.
func (s *AttendanceServiceImpl) todayWindow(ctx context.Context, emp employee.Employee, now time.Time) (schedule.DayWindow, error) {
	if emp.WorkScheduleID == nil || *emp.WorkScheduleID == "" {
		return schedule.DayWindow{}, schedule.ErrNoScheduleAssigned
	}

	sched, err := s.WorkScheduleRepository.GetByID(ctx, *emp.WorkScheduleID)
	if err != nil {
		return schedule.DayWindow{}, err
	}

	window, ok := sched.Window(now.Weekday())
	if !ok {
		return schedule.DayWindow{}, schedule.ErrNoWindowForToday
	}
	return window, nil
}

// Register implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Register(ctx context.Context, req attendance.RegisterRequest) (attendance.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RegisterResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	// One local civil "now" per request; every stage downstream works from
	// this value.
	now := s.clock.Now()
	today := civilDate(now)

	emp, err := s.findEmployee(ctx, req.DNI, req.Last5)
	if err != nil {
		return attendance.RegisterResponse{}, err
	}

	window, err := s.todayWindow(ctx, emp, now)
	if err != nil {
		return attendance.RegisterResponse{}, err
	}

	rec, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendance.RegisterResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	state := attendance.StateOf(rec)
	hint := attendance.HintAmbiguous
	if state != attendance.StateClosed {
		hint = Classify(state, now)
	}

	action, err := Resolve(hint, state, attendance.Action(req.Action))
	if err != nil {
		return attendance.RegisterResponse{}, err
	}

	resp := attendance.RegisterResponse{
		Action:    action,
		Hint:      hint,
		Employee:  attendance.EmployeeInfo{Name: emp.Name, Position: emp.DisplayPosition()},
		Timestamp: now.Format(time.RFC3339),
		Schedule:  attendance.ScheduleInfo{ExpectedCheckIn: window.Start, ExpectedCheckOut: window.End},
	}

	switch action {
	case attendance.ActionCheckIn:
		if err := s.registerCheckIn(ctx, &resp, emp, window, now, today, req.Justification); err != nil {
			return attendance.RegisterResponse{}, err
		}
	case attendance.ActionCheckOut:
		if err := s.registerCheckOut(ctx, &resp, rec, window, now); err != nil {
			return attendance.RegisterResponse{}, err
		}
	}

	// Advisory feedback only: a history read failure must not undo a
	// registration that already persisted.
	tag := s.monthlyFeedback(ctx, emp.ID, now)
	resp.FeedbackTag = string(tag)
	resp.Gamification = tag.Message()

	return resp, nil
}

func (s *AttendanceServiceImpl) registerCheckIn(
	ctx context.Context,
	resp *attendance.RegisterResponse,
	emp employee.Employee,
	window schedule.DayWindow,
	now time.Time,
	today time.Time,
	justification string,
) error {
	expectedStart, err := parseWindowTime(window.Start, now)
	if err != nil {
		return fmt.Errorf("failed to parse expected start: %w", err)
	}

	cmp := compareCheckIn(now, expectedStart)

	if cmp.LateMinutes > onTimeGraceMinutes && justification == "" {
		// Suspended, not failed: nothing is written and the kiosk asks for
		// the justification before resubmitting.
		return &attendance.JustificationRequiredError{
			LateMinutes:  cmp.LateMinutes,
			ExpectedTime: window.Start,
			ActualTime:   now.Format("15:04:05"),
		}
	}

	status := attendance.StatusPresent
	if cmp.LateMinutes > onTimeGraceMinutes {
		status = attendance.StatusLate
	}

	rec := attendance.AttendanceRecord{
		ID:              uuid.NewString(),
		EmployeeID:      emp.ID,
		Date:            today,
		CheckIn:         &now,
		ExpectedCheckIn: &window.Start,
		LateMinutes:     cmp.LateMinutes,
		Status:          status,
	}
	if justification != "" {
		rec.Justification = &justification
	}

	if _, err := s.AttendanceRepository.Create(ctx, rec); err != nil {
		return fmt.Errorf("failed to create attendance record: %w", err)
	}

	resp.Status = cmp.Punctuality
	resp.LateMinutes = &cmp.LateMinutes
	switch cmp.Punctuality {
	case attendance.PunctualityEarly:
		resp.Message = "🎉 ¡Felicidades! Llegaste temprano"
	case attendance.PunctualityOnTime:
		resp.Message = "✅ Entrada registrada a tiempo"
	default:
		resp.Message = "📝 Entrada tardía registrada"
	}
	return nil
}

func (s *AttendanceServiceImpl) registerCheckOut(
	ctx context.Context,
	resp *attendance.RegisterResponse,
	rec *attendance.AttendanceRecord,
	window schedule.DayWindow,
	now time.Time,
) error {
	expectedEnd, err := parseWindowTime(window.End, now)
	if err != nil {
		return fmt.Errorf("failed to parse expected end: %w", err)
	}

	early := compareCheckOut(now, expectedEnd)

	if err := s.AttendanceRepository.SetCheckOut(ctx, rec.ID, now, window.End, early); err != nil {
		return fmt.Errorf("failed to set check-out: %w", err)
	}

	resp.EarlyDepartureMinutes = &early
	if early > onTimeGraceMinutes {
		resp.Message = "🔄 Salida anticipada registrada"
	} else {
		resp.Message = "✅ Salida registrada exitosamente"
	}
	return nil
}

// monthlyFeedback reads the calendar month's history and derives the
// gamification tag. Failures are logged and degrade to no feedback.
func (s *AttendanceServiceImpl) monthlyFeedback(ctx context.Context, employeeID string, now time.Time) FeedbackTag {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)

	records, err := s.AttendanceRepository.ListByEmployeeBetween(ctx, employeeID, first, last)
	if err != nil {
		slog.Warn("failed to load monthly attendance history", "employee_id", employeeID, "error", err)
		return FeedbackNone
	}
	return Summarize(records)
}

// Lookup implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Lookup(ctx context.Context, req attendance.LookupRequest) (attendance.LookupResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LookupResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	now := s.clock.Now()
	today := civilDate(now)

	emp, err := s.findEmployee(ctx, req.DNI, req.Last5)
	if err != nil {
		return attendance.LookupResponse{}, err
	}

	window, err := s.todayWindow(ctx, emp, now)
	if err != nil {
		return attendance.LookupResponse{}, err
	}

	rec, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendance.LookupResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	expectedStart, err := parseWindowTime(window.Start, now)
	if err != nil {
		return attendance.LookupResponse{}, fmt.Errorf("failed to parse expected start: %w", err)
	}

	resp := attendance.LookupResponse{
		Employee: attendance.EmployeeInfo{Name: emp.Name, Position: emp.DisplayPosition()},
		Schedule: attendance.ScheduleInfo{ExpectedCheckIn: window.Start, ExpectedCheckOut: window.End},
		Status:   compareCheckIn(now, expectedStart).Punctuality,
	}

	if rec != nil {
		resp.HasCheckedIn = rec.CheckIn != nil
		resp.HasCheckedOut = rec.CheckOut != nil
		resp.CheckInTime = timePtrToString(rec.CheckIn)
		resp.CheckOutTime = timePtrToString(rec.CheckOut)
	}

	resp.Gamification = s.monthlyFeedback(ctx, emp.ID, now).Message()

	return resp, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	records, total, err := s.AttendanceRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.AttendanceRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}

	return attendance.ListAttendanceResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Records:    responses,
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceRecordResponse, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rec, err := s.AttendanceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceRecordResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return mapRecordToResponse(rec), nil
}

func companyIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// civilDate truncates a local timestamp to its calendar date, keeping the
// location.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func mapRecordToResponse(rec attendance.AttendanceRecord) attendance.AttendanceRecordResponse {
	var employeeName string
	if rec.EmployeeName != nil {
		employeeName = *rec.EmployeeName
	}

	return attendance.AttendanceRecordResponse{
		ID:                    rec.ID,
		EmployeeID:            rec.EmployeeID,
		EmployeeName:          employeeName,
		Date:                  rec.Date.Format("2006-01-02"),
		CheckIn:               timePtrToString(rec.CheckIn),
		CheckOut:              timePtrToString(rec.CheckOut),
		ExpectedCheckIn:       rec.ExpectedCheckIn,
		ExpectedCheckOut:      rec.ExpectedCheckOut,
		LateMinutes:           rec.LateMinutes,
		EarlyDepartureMinutes: rec.EarlyDepartureMinutes,
		Justification:         rec.Justification,
		Status:                rec.Status,
	}
}
