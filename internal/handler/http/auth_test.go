package http

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdeck/staffdeck-backend-go/internal/domain/auth"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/jwt"
)

// stubAuthService records what Logout was called with.
type stubAuthService struct {
	logoutRefreshToken string
	logoutSessionID    string
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	return auth.LoginResponse{}, nil
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	return auth.LoginResponse{}, nil
}

func (s *stubAuthService) Logout(ctx context.Context, refreshToken string, sessionID string) error {
	s.logoutRefreshToken = refreshToken
	s.logoutSessionID = sessionID
	return nil
}

func (s *stubAuthService) SetPIN(ctx context.Context, req auth.SetPINRequest) error {
	return nil
}

func (s *stubAuthService) VerifyPIN(ctx context.Context, req auth.VerifyPINRequest) (auth.VerifyPINResponse, error) {
	return auth.VerifyPINResponse{}, nil
}

func TestAuthHandler_Logout_IgnoresBodySessionID(t *testing.T) {
	svc := &stubAuthService{}
	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")
	handler := NewAuthHandler(svc, jwtService)

	// A leaked session ID in the body must not revoke that session.
	body := `{"refresh_token":"rt-1","session_id":"victim-session"}`
	r := httptest.NewRequest("POST", "/api/v1/auth/logout", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Logout(w, r)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "rt-1", svc.logoutRefreshToken)
	assert.Empty(t, svc.logoutSessionID)
}

func TestAuthHandler_Logout_SessionFromAccessToken(t *testing.T) {
	svc := &stubAuthService{}
	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")
	handler := NewAuthHandler(svc, jwtService)

	_, tokenString, err := jwtService.JWTAuth().Encode(map[string]interface{}{
		"user_id":    "user-1",
		"session_id": "sess-1",
		"type":       "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	r := httptest.NewRequest("POST", "/api/v1/auth/logout", strings.NewReader(`{"refresh_token":"rt-1"}`))
	r.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()

	handler.Logout(w, r)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "sess-1", svc.logoutSessionID)
}

func TestAuthHandler_Logout_RejectsNonAccessToken(t *testing.T) {
	svc := &stubAuthService{}
	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")
	handler := NewAuthHandler(svc, jwtService)

	// An elevated token names a session too, but only access tokens prove
	// the caller owns it for logout purposes.
	elevated, _, err := jwtService.GenerateElevatedToken("user-1", "sess-1")
	require.NoError(t, err)

	r := httptest.NewRequest("POST", "/api/v1/auth/logout", strings.NewReader(`{}`))
	r.Header.Set("Authorization", "Bearer "+elevated)
	w := httptest.NewRecorder()

	handler.Logout(w, r)

	assert.Equal(t, 200, w.Code)
	assert.Empty(t, svc.logoutSessionID)
}
