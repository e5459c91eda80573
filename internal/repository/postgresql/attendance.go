package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/attendance"
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository. The unique
// (employee_id, date) index makes a racing duplicate insert fail here instead
// of silently writing a second record for the day.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, check_in, expected_check_in,
			late_minutes, justification, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.Date,
		rec.CheckIn,
		rec.ExpectedCheckIn,
		rec.LateMinutes,
		rec.Justification,
		rec.Status,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, check_in, check_out,
			   expected_check_in, expected_check_out,
			   late_minutes, early_departure_minutes, justification, status,
			   created_at, updated_at
		FROM attendance_records
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	var rec attendance.AttendanceRecord
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&rec.ExpectedCheckIn, &rec.ExpectedCheckOut,
		&rec.LateMinutes, &rec.EarlyDepartureMinutes, &rec.Justification, &rec.Status,
		&rec.CreatedAt, &rec.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no record yet today
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &rec, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT r.id, r.employee_id, r.date, r.check_in, r.check_out,
			   r.expected_check_in, r.expected_check_out,
			   r.late_minutes, r.early_departure_minutes, r.justification, r.status,
			   r.created_at, r.updated_at,
			   e.name AS employee_name
		FROM attendance_records r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1 AND e.company_id = $2
	`

	var rec attendance.AttendanceRecord
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&rec.ExpectedCheckIn, &rec.ExpectedCheckOut,
		&rec.LateMinutes, &rec.EarlyDepartureMinutes, &rec.Justification, &rec.Status,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return rec, nil
}

// SetCheckOut implements attendance.AttendanceRepository. The check_out IS
// NULL guard keeps a record from being closed twice by concurrent requests.
func (a *attendanceRepository) SetCheckOut(ctx context.Context, id string, checkOut time.Time, expectedCheckOut string, earlyDepartureMinutes int) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET check_out = $1,
			expected_check_out = $2,
			early_departure_minutes = $3,
			updated_at = $1
		WHERE id = $4
		  AND check_out IS NULL
	`

	tag, err := q.Exec(ctx, query, checkOut, expectedCheckOut, earlyDepartureMinutes, id)
	if err != nil {
		return fmt.Errorf("failed to set check-out: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByEmployeeBetween implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, check_in, check_out,
			   expected_check_in, expected_check_out,
			   late_minutes, early_departure_minutes, justification, status,
			   created_at, updated_at
		FROM attendance_records
		WHERE employee_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance history: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
			&rec.ExpectedCheckIn, &rec.ExpectedCheckOut,
			&rec.LateMinutes, &rec.EarlyDepartureMinutes, &rec.Justification, &rec.Status,
			&rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// List implements attendance.AttendanceRepository. The count and the page
// read run inside one transaction so the reported total matches the snapshot
// the rows came from.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.AttendanceRecord, int64, error) {
	var records []attendance.AttendanceRecord
	var total int64

	err := WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		var err error
		records, total, err = a.list(txCtx, filter, companyID)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (a *attendanceRepository) list(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.AttendanceRecord, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "e.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND r.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND r.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND r.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND r.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_records r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	orderByField := "r.date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.name"
	case "check_in":
		orderByField = "r.check_in"
	case "check_out":
		orderByField = "r.check_out"
	case "status":
		orderByField = "r.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT r.id, r.employee_id, r.date, r.check_in, r.check_out,
			   r.expected_check_in, r.expected_check_out,
			   r.late_minutes, r.early_departure_minutes, r.justification, r.status,
			   r.created_at, r.updated_at,
			   e.name AS employee_name
		FROM attendance_records r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	offset := (page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
			&rec.ExpectedCheckIn, &rec.ExpectedCheckOut,
			&rec.LateMinutes, &rec.EarlyDepartureMinutes, &rec.Justification, &rec.Status,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, rows.Err()
}
