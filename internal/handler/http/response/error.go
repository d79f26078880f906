package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/request"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
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
	// Caller errors
	case errors.Is(err, user.ErrPermissionDenied):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, user.ErrInsufficientPermission):
		Forbidden(w, "Insufficient permissions")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidPunchKind):
		ValidationError(w, map[string]string{"type": err.Error()})
	case errors.Is(err, attendance.ErrRangeTooLong):
		BadRequest(w, err.Error(), nil)

	// Request domain errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, request.ErrInvalidStateTransition):
		Conflict(w, "Request is no longer pending")
	case errors.Is(err, request.ErrForbidden):
		Forbidden(w, "Not allowed to act on this request")
	case errors.Is(err, request.ErrInvalidAction):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
