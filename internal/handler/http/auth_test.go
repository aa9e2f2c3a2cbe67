package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/greythr-lite/hrms-backend-go/internal/handler/http/response"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/oauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOAuthDisabled(t *testing.T) {
	handler := NewAuthHandler(nil, nil, nil, false, "http://localhost:3000")

	t.Run("login redirect is refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/login/oauth/google", nil)
		rec := httptest.NewRecorder()
		handler.LoginWithGoogle(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body response.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotNil(t, body.Error)
		assert.Equal(t, "BAD_REQUEST", body.Error.Code)
	})

	t.Run("callback is refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/oauth/callback/google?code=x&state=y", nil)
		rec := httptest.NewRecorder()
		handler.OAuthCallbackGoogle(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOAuthEnabledRedirectsToProvider(t *testing.T) {
	googleService := oauth.NewGoogleService(
		"client-id",
		"client-secret",
		"http://localhost:8080/api/v1/auth/oauth/callback/google",
		[]string{"email", "profile"},
	)
	handler := NewAuthHandler(nil, nil, googleService, true, "http://localhost:3000")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/login/oauth/google", nil)
	rec := httptest.NewRecorder()
	handler.LoginWithGoogle(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.True(t, strings.Contains(rec.Header().Get("Location"), "accounts.google.com"))
}
