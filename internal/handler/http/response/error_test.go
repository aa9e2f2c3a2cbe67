package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/greythr-lite/hrms-backend-go/internal/domain/attendance"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/auth"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/chat"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/employee"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/payroll"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/task"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/user"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrInvalidToken, http.StatusUnauthorized},
		{auth.ErrTokenExpired, http.StatusUnauthorized},
		{user.ErrUserNotFound, http.StatusNotFound},
		{user.ErrEmailExists, http.StatusConflict},
		{user.ErrAdminAccessRequired, http.StatusForbidden},
		{user.ErrStaffAccessRequired, http.StatusForbidden},
		{employee.ErrEmployeeNotFound, http.StatusNotFound},
		{employee.ErrNotOwnProfile, http.StatusForbidden},
		{attendance.ErrNotClockedIn, http.StatusNotFound},
		{attendance.ErrAlreadyClockedOut, http.StatusConflict},
		{payroll.ErrPayrollAlreadyGenerated, http.StatusConflict},
		{payroll.ErrInvalidStatusTransition, http.StatusConflict},
		{payroll.ErrPaidRecordImmutable, http.StatusConflict},
		{task.ErrTaskNotFound, http.StatusNotFound},
		{task.ErrNotTaskOwner, http.StatusForbidden},
		{chat.ErrNotParticipant, http.StatusForbidden},
		{chat.ErrEmptyChat, http.StatusBadRequest},
		{errors.New("something odd"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		HandleError(rec, c.err)
		assert.Equal(t, c.want, rec.Code, "error %v", c.err)
	}
}

func TestHandleErrorWrappedSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, fmt.Errorf("clock out: %w", attendance.ErrNotClockedIn))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleErrorValidation(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "email", Message: "email is required"},
	}

	rec := httptest.NewRecorder()
	HandleError(rec, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "email is required", body.Error.Details["email"])
}

func TestHandleErrorDebugDetail(t *testing.T) {
	t.Run("debug on includes underlying error", func(t *testing.T) {
		SetDebug(true)
		defer SetDebug(false)

		rec := httptest.NewRecorder()
		HandleError(rec, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotNil(t, body.Error)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Error.Code)
		assert.Equal(t, "pq: connection refused", body.Error.Details["error"])
	})

	t.Run("debug off hides underlying error", func(t *testing.T) {
		SetDebug(false)

		rec := httptest.NewRecorder()
		HandleError(rec, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotNil(t, body.Error)
		assert.Equal(t, "An unexpected error occurred", body.Error.Message)
		assert.Empty(t, body.Error.Details)
	})
}

func TestHandleErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, user.ErrUserNotFound)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "User not found", body.Error.Message)
}
