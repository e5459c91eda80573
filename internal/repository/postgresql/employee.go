package postgresql

import (
	"context"
	"fmt"

	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/employee"
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, company_id, work_schedule_id, dni, name, position, status, base_salary,
	created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.WorkScheduleID, &emp.DNI, &emp.Name,
		&emp.Position, &emp.Status, &emp.BaseSalary,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func (r *employeeRepository) queryEmployees(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// FindActiveByDNI implements employee.EmployeeRepository. Every match comes
// back: the same DNI can exist under more than one company and the kiosk
// request carries no company context, so picking a row here would hide the
// conflict from the caller.
func (r *employeeRepository) FindActiveByDNI(ctx context.Context, dni string) ([]employee.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE dni = $1
		  AND status = 'active'
	`

	return r.queryEmployees(ctx, query, dni)
}

// FindActiveByDNISuffix implements employee.EmployeeRepository.
func (r *employeeRepository) FindActiveByDNISuffix(ctx context.Context, last5 string) ([]employee.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE dni ILIKE $1
		  AND status = 'active'
	`

	return r.queryEmployees(ctx, query, "%"+last5)
}
