package jwt

import (
	"testing"

	"github.com/greythr-lite/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, testAccessExp, testRefreshExp)

	employeeID := "emp-1"
	token, expiresAt, err := svc.GenerateAccessToken("user-1", "test@example.com", &employeeID, user.RoleEmployee)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claim, _ := decoded.Get("type")
	assert.Equal(t, "access", claim)
	claim, _ = decoded.Get("role")
	assert.Equal(t, "employee", claim)
	claim, _ = decoded.Get("employee_id")
	assert.Equal(t, "emp-1", claim)
}

func TestGenerateAccessTokenNilEmployeeID(t *testing.T) {
	svc := NewJWTService(testSecret, testAccessExp, testRefreshExp)

	token, _, err := svc.GenerateAccessToken("user-1", "test@example.com", nil, user.RoleAdmin)
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claim, _ := decoded.Get("employee_id")
	assert.Nil(t, claim)
}

func TestGenerateAccessTokenInvalidExpiration(t *testing.T) {
	svc := NewJWTService(testSecret, "not-a-duration", testRefreshExp)

	_, _, err := svc.GenerateAccessToken("user-1", "test@example.com", nil, user.RoleEmployee)
	assert.Error(t, err)
}

func TestStreamTokenRoundtrip(t *testing.T) {
	svc := NewJWTService(testSecret, testAccessExp, testRefreshExp)

	token, expiresIn, err := svc.GenerateStreamToken("user-1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateStreamToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateStreamTokenRejectsAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, testAccessExp, testRefreshExp)

	token, _, err := svc.GenerateAccessToken("user-1", "test@example.com", nil, user.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.ValidateStreamToken(token)
	assert.Error(t, err)
}

func TestValidateStreamTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService(testSecret, testAccessExp, testRefreshExp)

	_, err := svc.ValidateStreamToken("not-a-token")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService(testSecret, testAccessExp, testRefreshExp)

	token, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := NewJWTService(testSecret, testAccessExp, testRefreshExp)

	cookie := svc.RefreshTokenCookie("some-token", 1700000000)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "some-token", cookie.Value)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
}
