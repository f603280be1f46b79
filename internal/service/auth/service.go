package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/auth"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/reconciliation"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/user"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/jwt"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	refreshTokens auth.RefreshTokenRepository
	jwtService    jwt.Service
	sessions      *session.Store
	overrides     reconciliation.OverrideStore
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	sess := s.sessions.Create(u.ID)

	return s.issueTokens(ctx, u, sess.ID)
}

// Refresh implements auth.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.LoginResponse{}, auth.ErrRefreshTokenRevoked
	}

	active, err := s.refreshTokens.IsActive(ctx, refreshToken)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	if !active {
		return auth.LoginResponse{}, auth.ErrRefreshTokenRevoked
	}

	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	// Single-use refresh: the old token dies with the rotation and the
	// client starts a fresh session.
	if err := s.refreshTokens.Revoke(ctx, refreshToken); err != nil {
		return auth.LoginResponse{}, err
	}
	s.jwtService.RevokeToken(refreshToken)

	sess := s.sessions.Create(u.ID)

	return s.issueTokens(ctx, u, sess.ID)
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string, sessionID string) error {
	if refreshToken != "" {
		if err := s.refreshTokens.Revoke(ctx, refreshToken); err != nil {
			return err
		}
		s.jwtService.RevokeToken(refreshToken)
	}

	if sessionID != "" {
		s.sessions.Revoke(sessionID)
		// Penalty overrides are scoped to the session; they die with it.
		s.overrides.ClearSession(sessionID)
	}

	return nil
}

// SetPIN implements auth.AuthService.
func (s *AuthServiceImpl) SetPIN(ctx context.Context, req auth.SetPINRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash pin: %w", err)
	}

	return s.UserRepository.UpdatePINHash(ctx, userID, string(hash))
}

// VerifyPIN implements auth.AuthService.
func (s *AuthServiceImpl) VerifyPIN(ctx context.Context, req auth.VerifyPINRequest) (auth.VerifyPINResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.VerifyPINResponse{}, err
	}

	userID, sessionID, err := claimsFromContext(ctx)
	if err != nil {
		return auth.VerifyPINResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.VerifyPINResponse{}, err
	}

	if u.PINHash == nil {
		return auth.VerifyPINResponse{}, auth.ErrPINNotSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*u.PINHash), []byte(req.PIN)); err != nil {
		return auth.VerifyPINResponse{}, auth.ErrInvalidPIN
	}

	if err := s.sessions.MarkPINVerified(sessionID); err != nil {
		return auth.VerifyPINResponse{}, err
	}

	elevatedToken, expiresIn, err := s.jwtService.GenerateElevatedToken(userID, sessionID)
	if err != nil {
		return auth.VerifyPINResponse{}, fmt.Errorf("failed to generate elevated token: %w", err)
	}

	return auth.VerifyPINResponse{
		ElevatedToken: elevatedToken,
		ExpiresIn:     expiresIn,
	}, nil
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, sessionID string) (auth.LoginResponse, error) {
	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.CompanyID, u.Role, sessionID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.refreshTokens.Store(ctx, u.ID, refreshToken, unixTime(refreshExpiresAt)); err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt,
		SessionID:             sessionID,
	}, nil
}

func unixTime(sec int64) time.Time {
	return time.Unix(sec, 0)
}

func claimsFromContext(ctx context.Context) (userID string, sessionID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	sessionID, ok = claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", "", fmt.Errorf("session_id claim is missing or invalid")
	}

	return userID, sessionID, nil
}

func NewAuthService(
	userRepo user.UserRepository,
	refreshTokens auth.RefreshTokenRepository,
	jwtService jwt.Service,
	sessions *session.Store,
	overrides reconciliation.OverrideStore,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepo,
		refreshTokens:  refreshTokens,
		jwtService:     jwtService,
		sessions:       sessions,
		overrides:      overrides,
	}
}
