package auth

import (
	"context"
	"testing"

	domainAuth "github.com/greythr-lite/hrms-backend-go/internal/domain/auth"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeJWTRepo counts revocation lookups so tests can tell whether the
// in-memory fast path short-circuited before the database.
type fakeJWTRepo struct {
	revoked      bool
	revokedCalls int
}

func (f *fakeJWTRepo) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq domainAuth.SessionTrackingRequest) error {
	return nil
}

func (f *fakeJWTRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	f.revokedCalls++
	return f.revoked, nil
}

func (f *fakeJWTRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	return nil
}

func TestRefreshTokenRevocation(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "15m", "720h")
	token, _, err := jwtService.GenerateRefreshToken("u1")
	require.NoError(t, err)

	t.Run("locally revoked token is rejected before the database", func(t *testing.T) {
		repo := &fakeJWTRepo{}
		svc := NewAuthService(nil, nil, nil, jwtService, repo)

		jwtService.RevokeToken(token)

		_, err := svc.RefreshToken(context.Background(), domainAuth.RefreshTokenRequest{RefreshToken: token}, domainAuth.SessionTrackingRequest{})
		assert.ErrorIs(t, err, domainAuth.ErrRefreshTokenRevoked)
		assert.Zero(t, repo.revokedCalls)
	})

	t.Run("token revoked in the store is rejected", func(t *testing.T) {
		other, _, err := jwt.NewJWTService("test-secret", "15m", "720h").GenerateRefreshToken("u2")
		require.NoError(t, err)

		repo := &fakeJWTRepo{revoked: true}
		svc := NewAuthService(nil, nil, nil, jwtService, repo)

		_, err = svc.RefreshToken(context.Background(), domainAuth.RefreshTokenRequest{RefreshToken: other}, domainAuth.SessionTrackingRequest{})
		assert.ErrorIs(t, err, domainAuth.ErrRefreshTokenRevoked)
		assert.Equal(t, 1, repo.revokedCalls)
	})
}
