package response

import (
	"errors"
	"net/http"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/attendance"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/compensation"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/leave"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/payroll"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/statutory"
	"github.com/silangan-hr/payroll-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrSettingsNotFound):
		NotFound(w, "Payroll settings not found")
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrRunExists):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrRunNotEditable):
		Conflict(w, "Payroll run is not in draft")
	case errors.Is(err, payroll.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrEmptyRoster),
		errors.Is(err, payroll.ErrNegativeCompensation),
		errors.Is(err, payroll.ErrInvalidWorkingDays):
		BadRequest(w, err.Error(), nil)

	// Compensation domain errors
	case errors.Is(err, compensation.ErrProfileNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, compensation.ErrNegativeSalary),
		errors.Is(err, compensation.ErrNegativeAllowance),
		errors.Is(err, compensation.ErrInvalidSalaryType):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrRecordLocked):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, attendance.ErrInvalidClockFormat):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave credit balance not found")
	case errors.Is(err, leave.ErrBalanceConflict):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrInsufficientBalance),
		errors.Is(err, leave.ErrNothingToConvert),
		errors.Is(err, leave.ErrReasonRequired):
		BadRequest(w, err.Error(), nil)

	// Statutory table errors
	case errors.Is(err, statutory.ErrUnknownScheme):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
