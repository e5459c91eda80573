package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/attendance"
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/employee"
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/schedule"
)

// HandleError maps domain errors to HTTP responses. The payloads carry a
// stable reason code plus a human-readable message so the kiosk can decide
// whether resubmitting with different input makes sense.
func HandleError(w http.ResponseWriter, err error) {
	var justification *attendance.JustificationRequiredError
	if errors.As(err, &justification) {
		JustificationRequired(w, JustificationDetail{
			Message:      "⏰ Has llegado tarde. Por favor justifica tu demora.",
			LateMinutes:  justification.LateMinutes,
			ExpectedTime: justification.ExpectedTime,
			ActualTime:   justification.ActualTime,
		})
		return
	}

	switch {
	// Input validation
	case errors.Is(err, employee.ErrMissingIdentifier):
		BadRequest(w, "Debe enviar dni o last5", nil)
	case errors.Is(err, employee.ErrInvalidLast5):
		BadRequest(w, "Ingrese exactamente 5 dígitos del DNI", nil)
	case errors.Is(err, attendance.ErrInvalidAction):
		BadRequest(w, "Acción inválida", nil)

	// Lookup failures
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Empleado no registrado o inactivo")
	case errors.Is(err, employee.ErrDuplicateEmployee):
		Conflict(w, "Múltiples empleados encontrados. Contacte a Recursos Humanos.")
	case errors.Is(err, schedule.ErrNoScheduleAssigned):
		BadRequest(w, "Empleado sin horario asignado", nil)
	case errors.Is(err, schedule.ErrScheduleNotFound):
		BadRequest(w, "Horario no encontrado", nil)
	case errors.Is(err, schedule.ErrNoWindowForToday):
		BadRequest(w, "Horario no definido para hoy", nil)

	// State conflicts
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Ya tienes una entrada registrada hoy")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No tienes entrada registrada hoy")
	case errors.Is(err, attendance.ErrAttendanceComplete):
		Conflict(w, "📌 Ya has registrado entrada y salida para hoy")

	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Registro de asistencia no encontrado")

	// Infrastructure: the store timed out, retry the whole request.
	case errors.Is(err, context.DeadlineExceeded):
		InternalServerError(w, "La base de datos no respondió a tiempo. Inténtalo de nuevo.")

	default:
		InternalServerError(w, "Ha ocurrido un error inesperado. Inténtalo de nuevo.")
	}
}
