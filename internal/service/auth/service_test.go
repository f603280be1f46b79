package auth

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/auth"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/user"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/jwt"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/session"
	"github.com/staffdeck/staffdeck-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail map[string]user.User
	byID    map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) UpdatePINHash(_ context.Context, userID string, pinHash string) error {
	u, ok := f.byID[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PINHash = &pinHash
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	return nil
}

type fakeRefreshRepo struct {
	active map[string]bool
}

func (f *fakeRefreshRepo) Store(_ context.Context, _ string, token string, _ time.Time) error {
	f.active[token] = true
	return nil
}

func (f *fakeRefreshRepo) Revoke(_ context.Context, token string) error {
	f.active[token] = false
	return nil
}

func (f *fakeRefreshRepo) IsActive(_ context.Context, token string) (bool, error) {
	return f.active[token], nil
}

func newTestService(t *testing.T) (*AuthServiceImpl, *fakeUserRepo, *session.Store) {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserRepo{
		byEmail: map[string]user.User{
			"jane@example.com": {
				ID:           "user-1",
				CompanyID:    "company-1",
				Email:        "jane@example.com",
				PasswordHash: string(passwordHash),
				Role:         user.RoleAdmin,
			},
		},
		byID: map[string]user.User{},
	}
	users.byID["user-1"] = users.byEmail["jane@example.com"]

	sessions := session.NewStore(30*time.Minute, 5*time.Minute)
	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")

	svc := NewAuthService(
		users,
		&fakeRefreshRepo{active: map[string]bool{}},
		jwtService,
		sessions,
		memory.NewOverrideStore(),
	).(*AuthServiceImpl)

	return svc, users, sessions
}

// authedContext builds a request context carrying the user's access claims,
// the way the verifier middleware would.
func authedContext(t *testing.T, svc *AuthServiceImpl, userID string, sessionID string) context.Context {
	t.Helper()

	claims := map[string]interface{}{
		"user_id":    userID,
		"session_id": sessionID,
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
	token, _, err := svc.jwtService.JWTAuth().Encode(claims)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestLogin_Success(t *testing.T) {
	svc, _, sessions := newTestService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 1, sessions.ActiveCount())
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestVerifyPIN_WithoutEnrollment(t *testing.T) {
	svc, _, sessions := newTestService(t)
	sess := sessions.Create("user-1")
	ctx := authedContext(t, svc, "user-1", sess.ID)

	_, err := svc.VerifyPIN(ctx, auth.VerifyPINRequest{PIN: "123456"})

	assert.ErrorIs(t, err, auth.ErrPINNotSet)
}

func TestSetAndVerifyPIN(t *testing.T) {
	svc, _, sessions := newTestService(t)
	sess := sessions.Create("user-1")
	ctx := authedContext(t, svc, "user-1", sess.ID)

	require.NoError(t, svc.SetPIN(ctx, auth.SetPINRequest{PIN: "123456"}))

	_, err := svc.VerifyPIN(ctx, auth.VerifyPINRequest{PIN: "654321"})
	assert.ErrorIs(t, err, auth.ErrInvalidPIN)
	assert.False(t, sessions.IsPINVerified(sess.ID))

	resp, err := svc.VerifyPIN(ctx, auth.VerifyPINRequest{PIN: "123456"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ElevatedToken)
	assert.Equal(t, 300, resp.ExpiresIn)
	assert.True(t, sessions.IsPINVerified(sess.ID))

	// The elevated token round-trips through the validator.
	userID, sessionID, err := svc.jwtService.ValidateElevatedToken(resp.ElevatedToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, sess.ID, sessionID)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	assert.NotEqual(t, login.SessionID, refreshed.SessionID)

	// The old refresh token is single-use.
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestLogout_RevokesSessionAndToken(t *testing.T) {
	svc, _, sessions := newTestService(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken, login.SessionID))

	assert.Equal(t, 0, sessions.ActiveCount())
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
