package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"schoolsync/backend/config"
)

// SessionManager owns the OAuth2 credential lifecycle for the calendar
// integration: login stores the token file, logout removes it, and a valid
// token is refreshed lazily through the oauth2 token source. The manager is
// injected into the gateway; there is no process-global session.
type SessionManager struct {
	mu        sync.Mutex
	oauthCfg  *oauth2.Config
	tokenPath string
	token     *oauth2.Token // cached after first load, dropped on logout
	logger    *zap.Logger
}

// NewSessionManager reads the OAuth2 client credentials file. A missing or
// invalid credentials file is a startup error; a missing token file is not,
// it just means login is required.
func NewSessionManager(cfg *config.CalendarConfig, logger *zap.Logger) (*SessionManager, error) {
	b, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read calendar credentials: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(b, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parse calendar credentials: %w", err)
	}

	return &SessionManager{
		oauthCfg:  oauthCfg,
		tokenPath: cfg.TokenPath,
		logger:    logger,
	}, nil
}

// AuthURL returns the consent URL the operator visits to authorize access.
func (m *SessionManager) AuthURL(state string) string {
	return m.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Login exchanges the authorization code and persists the token.
func (m *SessionManager) Login(ctx context.Context, authCode string) error {
	token, err := m.oauthCfg.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("exchange auth code: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	b, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.WriteFile(m.tokenPath, b, 0o600); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	m.token = token

	m.logger.Info("calendar session established")
	return nil
}

// Logout drops the cached token and removes the token file. Logging out
// when no session exists is not an error.
func (m *SessionManager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = nil
	if err := os.Remove(m.tokenPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove token: %w", err)
	}

	m.logger.Info("calendar session closed")
	return nil
}

// Authorized reports whether a usable token exists.
func (m *SessionManager) Authorized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadTokenLocked() == nil
}

// Service builds an authorized calendar client, or ErrLoginRequired when
// no token is available. Expired tokens with a refresh token are renewed
// transparently by the token source.
func (m *SessionManager) Service(ctx context.Context) (*gcal.Service, error) {
	m.mu.Lock()
	if err := m.loadTokenLocked(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	source := m.oauthCfg.TokenSource(ctx, m.token)
	m.mu.Unlock()

	svc, err := gcal.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("build calendar service: %w", err)
	}
	return svc, nil
}

// loadTokenLocked populates the cached token from the token file.
// Caller must hold mu.
func (m *SessionManager) loadTokenLocked() error {
	if m.token != nil {
		if m.token.Valid() || m.token.RefreshToken != "" {
			return nil
		}
		m.token = nil
	}

	b, err := os.ReadFile(m.tokenPath)
	if err != nil {
		return ErrLoginRequired
	}
	var token oauth2.Token
	if err := json.Unmarshal(b, &token); err != nil {
		m.logger.Warn("calendar token file unreadable", zap.Error(err))
		return ErrLoginRequired
	}
	if !token.Valid() && token.RefreshToken == "" {
		return ErrLoginRequired
	}
	m.token = &token
	return nil
}
