package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/timeofday"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Field-level validation, possibly joined with payroll.ErrInvalidInput
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Input errors
	case errors.Is(err, payroll.ErrInvalidInput):
		ValidationError(w, map[string]string{"input": err.Error()})
	case errors.Is(err, timeofday.ErrInvalidTimeFormat):
		ValidationError(w, map[string]string{"time": err.Error()})
	case errors.Is(err, payroll.ErrInvalidPeriod), errors.Is(err, attendance.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Leave errors
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")

	// Store errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, attendance.ErrNoAttendance):
		NotFound(w, "No attendance in the requested period")
	case errors.Is(err, payroll.ErrEmptyRegister):
		NotFound(w, "No payslip could be generated for the requested period")
	case errors.Is(err, employee.ErrMalformedCompensation):
		slog.Error("Malformed compensation record", "error", err)
		InternalServerError(w, "Employee compensation record is malformed")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
