package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"schoolsync/backend/config"
	"schoolsync/backend/internal/calendar"
	"schoolsync/backend/internal/dto"
	"schoolsync/backend/pkg/jwt"
	"schoolsync/backend/pkg/redis"
)

// ── auth module errors ──

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles the admin API session and the calendar OAuth2
// session. The API is operated by a single admin account from config.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, accessToken string) error

	CalendarAuthURL() *dto.CalendarAuthURLResponse
	CalendarLogin(ctx context.Context, req *dto.CalendarLoginRequest) error
	CalendarLogout() error
	CalendarAuthorized() bool
}

type authService struct {
	cfg      *config.AuthConfig
	tokens   *jwt.Manager
	cache    *redis.Client // nil when redis is unavailable
	sessions *calendar.SessionManager
	logger   *zap.Logger
}

// NewAuthService creates an AuthService. cache may be nil; logout then
// degrades to expiry-only invalidation.
func NewAuthService(cfg *config.AuthConfig, tokens *jwt.Manager, cache *redis.Client, sessions *calendar.SessionManager, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, tokens: tokens, cache: cache, sessions: sessions, logger: logger}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.AdminUser)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordBcrypt), []byte(req.Password))
	if !userOK || passErr != nil {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	return s.issuePair(req.Username)
}

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.LoginResponse, error) {
	claims, err := s.tokens.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidToken
	}

	if s.cache != nil {
		blacklisted, err := s.cache.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("blacklist check failed", zap.Error(err))
		} else if blacklisted {
			return nil, ErrInvalidToken
		}
	}

	// Rotate: the used refresh token is blacklisted for its remainder.
	s.blacklist(ctx, claims)

	return s.issuePair(claims.Subject)
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.tokens.ParseToken(accessToken)
	if err != nil {
		return ErrInvalidToken
	}

	s.blacklist(ctx, claims)
	return nil
}

func (s *authService) issuePair(subject string) (*dto.LoginResponse, error) {
	access, err := s.tokens.GenerateAccessToken(subject)
	if err != nil {
		s.logger.Error("access token generation failed", zap.Error(err))
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(subject)
	if err != nil {
		s.logger.Error("refresh token generation failed", zap.Error(err))
		return nil, err
	}
	return &dto.LoginResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) blacklist(ctx context.Context, claims *jwt.Claims) {
	if s.cache == nil || claims.ExpiresAt == nil {
		return
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.cache.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("token blacklist failed", zap.String("jti", claims.ID), zap.Error(err))
	}
}

// ── calendar session ──

func (s *authService) CalendarAuthURL() *dto.CalendarAuthURLResponse {
	return &dto.CalendarAuthURLResponse{AuthURL: s.sessions.AuthURL("state-token")}
}

func (s *authService) CalendarLogin(ctx context.Context, req *dto.CalendarLoginRequest) error {
	return s.sessions.Login(ctx, req.AuthCode)
}

func (s *authService) CalendarLogout() error {
	return s.sessions.Logout()
}

func (s *authService) CalendarAuthorized() bool {
	return s.sessions.Authorized()
}
