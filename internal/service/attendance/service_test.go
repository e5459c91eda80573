package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/attendance"
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/employee"
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/schedule"
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/pkg/clock"
	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== IN-MEMORY FAKES =====

type fakeEmployeeRepo struct {
	byDNI    map[string][]employee.Employee
	bySuffix map[string][]employee.Employee
}

func (f *fakeEmployeeRepo) FindActiveByDNI(_ context.Context, dni string) ([]employee.Employee, error) {
	return f.byDNI[dni], nil
}

func (f *fakeEmployeeRepo) FindActiveByDNISuffix(_ context.Context, last5 string) ([]employee.Employee, error) {
	return f.bySuffix[last5], nil
}

type fakeScheduleRepo struct {
	schedules map[string]schedule.WorkSchedule
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id string) (schedule.WorkSchedule, error) {
	sched, ok := f.schedules[id]
	if !ok {
		return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
	}
	return sched, nil
}

type fakeAttendanceRepo struct {
	today      *attendance.AttendanceRecord
	history    []attendance.AttendanceRecord
	historyErr error

	created   []attendance.AttendanceRecord
	checkOuts []time.Time

	listRecords []attendance.AttendanceRecord
	listTotal   int64
}

func (f *fakeAttendanceRepo) Create(_ context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	f.created = append(f.created, rec)
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id, _ string) (attendance.AttendanceRecord, error) {
	for _, rec := range f.listRecords {
		if rec.ID == id {
			return rec, nil
		}
	}
	return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time) (*attendance.AttendanceRecord, error) {
	return f.today, nil
}

func (f *fakeAttendanceRepo) SetCheckOut(_ context.Context, _ string, checkOut time.Time, _ string, _ int) error {
	f.checkOuts = append(f.checkOuts, checkOut)
	return nil
}

func (f *fakeAttendanceRepo) ListByEmployeeBetween(_ context.Context, _ string, _, _ time.Time) ([]attendance.AttendanceRecord, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter, _ string) ([]attendance.AttendanceRecord, int64, error) {
	return f.listRecords, f.listTotal, nil
}

// ===== HELPERS =====

const testScheduleID = "sched-1"

func testEmployee() employee.Employee {
	schedID := testScheduleID
	return employee.Employee{
		ID:             "emp-1",
		CompanyID:      "comp-1",
		WorkScheduleID: &schedID,
		DNI:            "0801199012345",
		Name:           "Ana",
		Status:         employee.StatusActive,
	}
}

// weekdaySchedule covers Monday through Friday, 08:00 to 17:00.
func weekdaySchedule() schedule.WorkSchedule {
	sched := schedule.WorkSchedule{ID: testScheduleID, CompanyID: "comp-1", Name: "Oficina"}
	for wd := time.Monday; wd <= time.Friday; wd++ {
		sched.Days[int(wd)] = &schedule.DayWindow{Start: "08:00", End: "17:00"}
	}
	return sched
}

func newTestService(attRepo *fakeAttendanceRepo, now time.Time) attendance.AttendanceService {
	empRepo := &fakeEmployeeRepo{
		byDNI:    map[string][]employee.Employee{"0801199012345": {testEmployee()}},
		bySuffix: map[string][]employee.Employee{"12345": {testEmployee()}},
	}
	schedRepo := &fakeScheduleRepo{
		schedules: map[string]schedule.WorkSchedule{testScheduleID: weekdaySchedule()},
	}
	return NewAttendanceService(attRepo, empRepo, schedRepo, clock.Fixed{T: now}, 5*time.Second)
}

// tuesday returns the given wall-clock time on Tuesday 2026-03-10.
func tuesday(hour, min, sec int) time.Time {
	return time.Date(2026, 3, 10, hour, min, sec, 0, time.UTC)
}

func openRecord(checkIn time.Time) *attendance.AttendanceRecord {
	return &attendance.AttendanceRecord{
		ID:         "rec-1",
		EmployeeID: "emp-1",
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckIn:    &checkIn,
		Status:     attendance.StatusPresent,
	}
}

func closedRecord(checkIn, checkOut time.Time) *attendance.AttendanceRecord {
	rec := openRecord(checkIn)
	rec.CheckOut = &checkOut
	return rec
}

// ===== REGISTER TESTS =====

func TestRegister_MorningCheckIn_OnTime(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{}
	svc := newTestService(attRepo, tuesday(8, 3, 0))

	resp, err := svc.Register(context.Background(), attendance.RegisterRequest{DNI: "0801199012345"})
	require.NoError(t, err)

	assert.Equal(t, attendance.ActionCheckIn, resp.Action)
	assert.Equal(t, attendance.HintCheckIn, resp.Hint)
	assert.Equal(t, attendance.PunctualityOnTime, resp.Status)
	assert.Equal(t, "✅ Entrada registrada a tiempo", resp.Message)
	assert.Equal(t, "Ana", resp.Employee.Name)
	assert.Equal(t, "Empleado", resp.Employee.Position)
	assert.Equal(t, "08:00", resp.Schedule.ExpectedCheckIn)

	require.Len(t, attRepo.created, 1)
	rec := attRepo.created[0]
	assert.Equal(t, attendance.StatusPresent, rec.Status)
	assert.Equal(t, 3, rec.LateMinutes)
	assert.NotEmpty(t, rec.ID)
	require.NotNil(t, rec.CheckIn)
	assert.Equal(t, tuesday(8, 3, 0), *rec.CheckIn)
}

func TestRegister_EarlyCheckIn(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{}
	svc := newTestService(attRepo, tuesday(7, 45, 0))

	resp, err := svc.Register(context.Background(), attendance.RegisterRequest{Last5: "12345"})
	require.NoError(t, err)

	assert.Equal(t, attendance.PunctualityEarly, resp.Status)
	assert.Equal(t, "🎉 ¡Felicidades! Llegaste temprano", resp.Message)
	require.Len(t, attRepo.created, 1)
	assert.Equal(t, 0, attRepo.created[0].LateMinutes)
	assert.Equal(t, attendance.StatusPresent, attRepo.created[0].Status)
}

func TestRegister_LateWithoutJustification_WritesNothing(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{}
	svc := newTestService(attRepo, tuesday(8, 10, 0))

	_, err := svc.Register(context.Background(), attendance.RegisterRequest{DNI: "0801199012345"})

	var jre *attendance.JustificationRequiredError
	require.ErrorAs(t, err, &jre)
	assert.Equal(t, 10, jre.LateMinutes)
	assert.Equal(t, "08:00", jre.ExpectedTime)
	assert.Equal(t, "08:10:00", jre.ActualTime)

	// Suspended, not persisted.
	assert.Empty(t, attRepo.created)
}

func TestRegister_LateWithJustification_Persists(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{}
	svc := newTestService(attRepo, tuesday(8, 10, 0))

	resp, err := svc.Register(context.Background(), attendance.RegisterRequest{
		DNI:           "0801199012345",
		Justification: "tráfico en el bulevar",
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.PunctualityLate, resp.Status)
	assert.Equal(t, "📝 Entrada tardía registrada", resp.Message)
	require.NotNil(t, resp.LateMinutes)
	assert.Equal(t, 10, *resp.LateMinutes)

	require.Len(t, attRepo.created, 1)
	rec := attRepo.created[0]
	assert.Equal(t, attendance.StatusLate, rec.Status)
	require.NotNil(t, rec.Justification)
	assert.Equal(t, "tráfico en el bulevar", *rec.Justification)
}

func TestRegister_SecondCheckIn_Rejected(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{today: openRecord(tuesday(8, 0, 0))}
	svc := newTestService(attRepo, tuesday(8, 30, 0))

	_, err := svc.Register(context.Background(), attendance.RegisterRequest{
		DNI:    "0801199012345",
		Action: "check_in",
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Empty(t, attRepo.created)
}

func TestRegister_CheckOutWithoutCheckIn_Rejected(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{}
	svc := newTestService(attRepo, tuesday(17, 0, 0))

	_, err := svc.Register(context.Background(), attendance.RegisterRequest{
		DNI:    "0801199012345",
		Action: "check_out",
	})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	assert.Empty(t, attRepo.checkOuts)
}

func TestRegister_CompleteDay_Rejected(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{today: closedRecord(tuesday(8, 0, 0), tuesday(17, 0, 0))}
	svc := newTestService(attRepo, tuesday(18, 0, 0))

	_, err := svc.Register(context.Background(), attendance.RegisterRequest{DNI: "0801199012345"})
	assert.ErrorIs(t, err, attendance.ErrAttendanceComplete)
}

func TestRegister_AfternoonCheckOut(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{today: openRecord(tuesday(8, 0, 0))}
	svc := newTestService(attRepo, tuesday(17, 2, 0))

	resp, err := svc.Register(context.Background(), attendance.RegisterRequest{DNI: "0801199012345"})
	require.NoError(t, err)

	assert.Equal(t, attendance.ActionCheckOut, resp.Action)
	assert.Equal(t, attendance.HintCheckOut, resp.Hint)
	assert.Equal(t, "✅ Salida registrada exitosamente", resp.Message)
	require.NotNil(t, resp.EarlyDepartureMinutes)
	assert.Equal(t, 0, *resp.EarlyDepartureMinutes)
	require.Len(t, attRepo.checkOuts, 1)
}

func TestRegister_MiddayEarlyDeparture(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{today: openRecord(tuesday(8, 0, 0))}
	svc := newTestService(attRepo, tuesday(14, 0, 0))

	resp, err := svc.Register(context.Background(), attendance.RegisterRequest{DNI: "0801199012345"})
	require.NoError(t, err)

	assert.Equal(t, attendance.ActionCheckOut, resp.Action)
	assert.Equal(t, "🔄 Salida anticipada registrada", resp.Message)
	require.NotNil(t, resp.EarlyDepartureMinutes)
	assert.Equal(t, 180, *resp.EarlyDepartureMinutes)
}

func TestRegister_MorningDoubleTap_DefaultsToCheckOut(t *testing.T) {
	t.Parallel()

	// No explicit action: an open record in the morning stays ambiguous and
	// the record presence resolves it to check-out.
	attRepo := &fakeAttendanceRepo{today: openRecord(tuesday(8, 0, 0))}
	svc := newTestService(attRepo, tuesday(9, 0, 0))

	resp, err := svc.Register(context.Background(), attendance.RegisterRequest{DNI: "0801199012345"})
	require.NoError(t, err)

	assert.Equal(t, attendance.HintAmbiguous, resp.Hint)
	assert.Equal(t, attendance.ActionCheckOut, resp.Action)
}

func TestRegister_UnknownEmployee(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeAttendanceRepo{}, tuesday(8, 0, 0))

	_, err := svc.Register(context.Background(), attendance.RegisterRequest{DNI: "0000000000000"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.Register(context.Background(), attendance.RegisterRequest{Last5: "99999"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestRegister_AmbiguousSuffix(t *testing.T) {
	t.Parallel()

	empRepo := &fakeEmployeeRepo{
		bySuffix: map[string][]employee.Employee{"12345": {testEmployee(), testEmployee()}},
	}
	schedRepo := &fakeScheduleRepo{schedules: map[string]schedule.WorkSchedule{}}
	svc := NewAttendanceService(&fakeAttendanceRepo{}, empRepo, schedRepo, clock.Fixed{T: tuesday(8, 0, 0)}, 5*time.Second)

	_, err := svc.Register(context.Background(), attendance.RegisterRequest{Last5: "12345"})
	assert.ErrorIs(t, err, employee.ErrDuplicateEmployee)
}

func TestRegister_DuplicateDNIAcrossCompanies(t *testing.T) {
	t.Parallel()

	// Two active employees in different companies share the same DNI. The
	// kiosk request carries no company context, so the exact-DNI path must
	// reject instead of registering against either row.
	other := testEmployee()
	other.ID = "emp-2"
	other.CompanyID = "comp-2"

	attRepo := &fakeAttendanceRepo{}
	empRepo := &fakeEmployeeRepo{
		byDNI: map[string][]employee.Employee{"0801199012345": {testEmployee(), other}},
	}
	schedRepo := &fakeScheduleRepo{
		schedules: map[string]schedule.WorkSchedule{testScheduleID: weekdaySchedule()},
	}
	svc := NewAttendanceService(attRepo, empRepo, schedRepo, clock.Fixed{T: tuesday(8, 0, 0)}, 5*time.Second)

	_, err := svc.Register(context.Background(), attendance.RegisterRequest{DNI: "0801199012345"})
	assert.ErrorIs(t, err, employee.ErrDuplicateEmployee)
	assert.Empty(t, attRepo.created)
}

func TestRegister_MissingIdentifier(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeAttendanceRepo{}, tuesday(8, 0, 0))

	_, err := svc.Register(context.Background(), attendance.RegisterRequest{})
	assert.ErrorIs(t, err, employee.ErrMissingIdentifier)

	_, err = svc.Register(context.Background(), attendance.RegisterRequest{Last5: "123"})
	assert.ErrorIs(t, err, employee.ErrInvalidLast5)
}

func TestRegister_NoScheduleAssigned(t *testing.T) {
	t.Parallel()

	emp := testEmployee()
	emp.WorkScheduleID = nil
	empRepo := &fakeEmployeeRepo{byDNI: map[string][]employee.Employee{emp.DNI: {emp}}}
	schedRepo := &fakeScheduleRepo{schedules: map[string]schedule.WorkSchedule{}}
	svc := NewAttendanceService(&fakeAttendanceRepo{}, empRepo, schedRepo, clock.Fixed{T: tuesday(8, 0, 0)}, 5*time.Second)

	_, err := svc.Register(context.Background(), attendance.RegisterRequest{DNI: emp.DNI})
	assert.ErrorIs(t, err, schedule.ErrNoScheduleAssigned)
}

func TestRegister_DayOff(t *testing.T) {
	t.Parallel()

	// Sunday 2026-03-08 is outside the Monday-to-Friday schedule.
	sunday := time.Date(2026, 3, 8, 8, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeAttendanceRepo{}, sunday)

	_, err := svc.Register(context.Background(), attendance.RegisterRequest{DNI: "0801199012345"})
	assert.ErrorIs(t, err, schedule.ErrNoWindowForToday)
}

func TestRegister_FeedbackAttached(t *testing.T) {
	t.Parallel()

	history := append(
		lateDays(2, 3, 4),
		monthRecord(9, attendance.StatusLate),
		monthRecord(10, attendance.StatusLate),
		monthRecord(11, attendance.StatusLate),
	)
	for i := range history {
		history[i].Date = time.Date(2026, 3, history[i].Date.Day(), 0, 0, 0, 0, time.UTC)
	}

	attRepo := &fakeAttendanceRepo{history: history}
	svc := newTestService(attRepo, tuesday(8, 0, 0))

	resp, err := svc.Register(context.Background(), attendance.RegisterRequest{DNI: "0801199012345"})
	require.NoError(t, err)

	assert.Equal(t, string(FeedbackRecurringLateness), resp.FeedbackTag)
	assert.Equal(t, FeedbackRecurringLateness.Message(), resp.Gamification)
}

func TestRegister_FeedbackFailureDoesNotUndoRegistration(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{historyErr: context.DeadlineExceeded}
	svc := newTestService(attRepo, tuesday(8, 0, 0))

	resp, err := svc.Register(context.Background(), attendance.RegisterRequest{DNI: "0801199012345"})
	require.NoError(t, err)

	assert.Empty(t, resp.FeedbackTag)
	assert.Empty(t, resp.Gamification)
	assert.Len(t, attRepo.created, 1)
}

// ===== LOOKUP TESTS =====

func TestLookup_WritesNothing(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{}
	svc := newTestService(attRepo, tuesday(8, 0, 0))

	resp, err := svc.Lookup(context.Background(), attendance.LookupRequest{DNI: "0801199012345"})
	require.NoError(t, err)

	assert.False(t, resp.HasCheckedIn)
	assert.False(t, resp.HasCheckedOut)
	assert.Equal(t, attendance.PunctualityOnTime, resp.Status)
	assert.Equal(t, "Ana", resp.Employee.Name)

	assert.Empty(t, attRepo.created)
	assert.Empty(t, attRepo.checkOuts)
}

func TestLookup_ReflectsOpenRecord(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{today: openRecord(tuesday(8, 0, 0))}
	svc := newTestService(attRepo, tuesday(14, 0, 0))

	resp, err := svc.Lookup(context.Background(), attendance.LookupRequest{Last5: "12345"})
	require.NoError(t, err)

	assert.True(t, resp.HasCheckedIn)
	assert.False(t, resp.HasCheckedOut)
	require.NotNil(t, resp.CheckInTime)
	assert.Equal(t, "2026-03-10 08:00:00", *resp.CheckInTime)
	assert.Nil(t, resp.CheckOutTime)
}

// ===== HR CONSOLE TESTS =====

func claimsContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	token, err := jwxjwt.NewBuilder().
		Claim("company_id", companyID).
		Claim("type", "access").
		Build()
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestListAttendance_RequiresCompanyClaim(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeAttendanceRepo{}, tuesday(8, 0, 0))

	_, err := svc.ListAttendance(context.Background(), attendance.AttendanceFilter{Page: 1, Limit: 20})
	assert.Error(t, err)
}

func TestListAttendance_Pagination(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{
		listRecords: []attendance.AttendanceRecord{*openRecord(tuesday(8, 0, 0))},
		listTotal:   41,
	}
	svc := newTestService(attRepo, tuesday(8, 0, 0))

	resp, err := svc.ListAttendance(claimsContext(t, "comp-1"), attendance.AttendanceFilter{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, int64(41), resp.TotalCount)
	assert.Equal(t, 3, resp.TotalPages)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "2026-03-10", resp.Records[0].Date)
}

func TestGetAttendance_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeAttendanceRepo{}, tuesday(8, 0, 0))

	_, err := svc.GetAttendance(claimsContext(t, "comp-1"), "missing")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}
