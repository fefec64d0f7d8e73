package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/domain/auth"
	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/domain/leave"
	"github.com/garagepro/garage-backend-go/internal/domain/salary"
	"github.com/garagepro/garage-backend-go/internal/domain/user"
	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth and user domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeInactive):
		StateConflict(w, "EMPLOYEE_INACTIVE", "Employee is inactive")
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		StateConflict(w, "EMPLOYEE_ALREADY_INACTIVE", "Employee is already inactive")
	case errors.Is(err, employee.ErrInvalidImportFile):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCompleted):
		StateConflict(w, "ALREADY_COMPLETED", "Already marked attendance today")
	case errors.Is(err, attendance.ErrInvalidKioskCode):
		Unauthorized(w, "Kiosk code is missing or expired")
	case errors.Is(err, attendance.ErrKioskDisabled):
		NotFound(w, "Kiosk code verification is not configured")
	case errors.Is(err, attendance.ErrInvalidDuration):
		slog.Error("attendance data integrity error", "error", err)
		DataIntegrityError(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		StateConflict(w, "ALREADY_PROCESSED", "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Employee already has leave in this range")

	// Salary domain errors
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, salary.ErrInvalidStatusTransition):
		StateConflict(w, "INVALID_STATUS_TRANSITION", err.Error())
	case errors.Is(err, salary.ErrSalaryLocked):
		StateConflict(w, "SALARY_LOCKED", "Salary record is finalized and can no longer change")
	case errors.Is(err, salary.ErrNoSalariesToExport):
		NotFound(w, "No salary records match the export filter")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
