// Package session persists the authenticated session (token pair and user
// profile) in the config directory and answers auth-state queries.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"taskmaster/internal/config"
	"taskmaster/internal/service"
)

// Store owns the persisted session. It wraps the backend for login,
// register and logout, and is the only writer of the session files.
type Store struct {
	cfg *config.Config
	svc service.Service
	log hclog.Logger
}

// NewStore creates a session store over the given backend.
func NewStore(cfg *config.Config, svc service.Service, log hclog.Logger) *Store {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Store{cfg: cfg, svc: svc, log: log}
}

// Login authenticates and persists the session triple on success.
func (s *Store) Login(ctx context.Context, email, password string) (service.User, error) {
	session, err := s.svc.Login(ctx, email, password)
	if err != nil {
		return service.User{}, err
	}
	if err := s.persist(session); err != nil {
		return service.User{}, err
	}
	return session.User, nil
}

// Register creates an account and persists its session, same as login.
func (s *Store) Register(ctx context.Context, fullName, email, password string) (service.User, error) {
	session, err := s.svc.Register(ctx, fullName, email, password)
	if err != nil {
		return service.User{}, err
	}
	if err := s.persist(session); err != nil {
		return service.User{}, err
	}
	return session.User, nil
}

// Logout notifies the server and clears the persisted session. Local
// termination is unconditional: a failed server call is logged and the
// files are removed anyway. Logout never reports an error to the caller.
func (s *Store) Logout(ctx context.Context) {
	if err := s.svc.Logout(ctx); err != nil {
		s.log.Warn("server logout failed, clearing local session anyway", "error", err)
	}
	s.clear()
}

// CurrentUser reads the persisted user profile.
func (s *Store) CurrentUser() (service.User, bool) {
	data, err := os.ReadFile(s.cfg.UserPath())
	if err != nil {
		return service.User{}, false
	}
	var user service.User
	if err := json.Unmarshal(data, &user); err != nil {
		return service.User{}, false
	}
	return user, true
}

// IsAuthenticated reports whether an access token is persisted. It does not
// verify validity or expiry; a stale token reads as authenticated until an
// API call fails.
func (s *Store) IsAuthenticated() bool {
	return s.cfg.HasToken()
}

func (s *Store) persist(session service.Session) error {
	if err := s.cfg.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	token := &oauth2.Token{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    "Bearer",
	}
	tokenData, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.cfg.TokenPath(), tokenData, 0600); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	userData, err := json.MarshalIndent(session.User, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.cfg.UserPath(), userData, 0600); err != nil {
		return fmt.Errorf("failed to save user profile: %w", err)
	}
	return nil
}

func (s *Store) clear() {
	for _, path := range []string{s.cfg.TokenPath(), s.cfg.UserPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.log.Warn("failed to remove session file", "path", path, "error", err)
		}
	}
}

// ErrNotLoggedIn is returned by LoadToken when no token is persisted.
var ErrNotLoggedIn = errors.New("not logged in")

// LoadToken reads the persisted token pair for use as a bearer credential.
func LoadToken(cfg *config.Config) (*oauth2.Token, error) {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to read token: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token file: %w", err)
	}
	if token.AccessToken == "" {
		return nil, ErrNotLoggedIn
	}
	return &token, nil
}
