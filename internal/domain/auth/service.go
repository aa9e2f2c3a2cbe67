package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, sessionReq SessionTrackingRequest) (TokenResponse, error)
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest, sessionReq SessionTrackingRequest) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	LoginWithGoogle(ctx context.Context, googleEmail string, googleName string, sessionReq SessionTrackingRequest) (TokenResponse, error)
}
