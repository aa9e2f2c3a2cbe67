package response

import (
	"errors"
	"net/http"

	"github.com/greythr-lite/hrms-backend-go/internal/domain/announcement"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/attendance"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/auth"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/chat"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/employee"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/leave"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/notification"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/payroll"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/task"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/user"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/validator"
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
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthNotConfigured):
		BadRequest(w, "OAuth login is not configured", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is disabled")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrStaffAccessRequired):
		Forbidden(w, "Admin or HR access required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeExists):
		Conflict(w, "Employee already exists for this user")
	case errors.Is(err, employee.ErrNotOwnProfile):
		Forbidden(w, "Cannot modify another employee's profile")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNotClockedIn):
		NotFound(w, "No clock-in record found for today")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollAlreadyGenerated):
		Conflict(w, "Payroll already generated for this employee and period")
	case errors.Is(err, payroll.ErrInvalidStatusTransition):
		Conflict(w, "Payroll status can only advance draft -> processed -> paid")
	case errors.Is(err, payroll.ErrPaidRecordImmutable):
		Conflict(w, "A paid payroll record cannot be modified")

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrNotTaskOwner):
		Forbidden(w, "Task is assigned to another employee")
	case errors.Is(err, task.ErrAssigneeGone):
		BadRequest(w, "Assigned employee not found", nil)

	// Announcement domain errors
	case errors.Is(err, announcement.ErrAnnouncementNotFound):
		NotFound(w, "Announcement not found")

	// Chat domain errors
	case errors.Is(err, chat.ErrChatNotFound):
		NotFound(w, "Chat not found")
	case errors.Is(err, chat.ErrNotParticipant):
		Forbidden(w, "You are not a participant of this chat")
	case errors.Is(err, chat.ErrMessageNotFound):
		NotFound(w, "Message not found")
	case errors.Is(err, chat.ErrEmptyChat):
		BadRequest(w, "A chat needs at least two participants", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		if debug {
			writeJSON(w, http.StatusInternalServerError, Response{
				Success: false,
				Error: &ErrorDetail{
					Code:    "INTERNAL_SERVER_ERROR",
					Message: "An unexpected error occurred",
					Details: map[string]string{"error": err.Error()},
				},
			})
			return
		}
		InternalServerError(w, "An unexpected error occurred")
	}
}
