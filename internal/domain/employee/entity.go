package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is owned by the employee-management subsystem. This service only
// reads it to resolve attendance registrations.
type Employee struct {
	ID             string
	CompanyID      string
	WorkScheduleID *string
	DNI            string
	Name           string
	Position       *string
	Status         Status
	BaseSalary     *decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusTerminated Status = "terminated"
)

// DisplayPosition returns the position for response payloads, with the
// kiosk-facing fallback used when the field was never filled in.
func (e Employee) DisplayPosition() string {
	if e.Position != nil && *e.Position != "" {
		return *e.Position
	}
	return "Empleado"
}
