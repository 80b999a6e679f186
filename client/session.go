package client

import (
	"context"
	"errors"
	"sync"
)

// SessionState is the authentication lifecycle state.
type SessionState int

const (
	// StateLoading means the stored token has not been verified yet.
	StateLoading SessionState = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

var ErrNotAuthenticated = errors.New("not authenticated")

// Session manages the login lifecycle: it restores a persisted token on
// startup, verifies it against the API and keeps the current user loaded.
type Session struct {
	client *Client
	store  CredentialStore

	mu    sync.RWMutex
	state SessionState
	user  *User
}

func NewSession(client *Client, store CredentialStore) *Session {
	return &Session{
		client: client,
		store:  store,
		state:  StateLoading,
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentUser returns the authenticated user, nil otherwise.
func (s *Session) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Initialize restores the persisted token and verifies it. A rejected
// token is cleared from the store so the next start is a clean logout.
func (s *Session) Initialize(ctx context.Context) error {
	creds, err := s.store.Load()
	if err != nil {
		s.setUnauthenticated()
		return err
	}
	if creds == nil || creds.AccessToken == "" {
		s.setUnauthenticated()
		return nil
	}

	s.client.SetToken(creds.AccessToken)

	user, err := s.client.Me(ctx)
	if err != nil {
		s.client.ClearToken()
		if IsUnauthorized(err) {
			// 过期或被吊销的 token 直接清掉
			if clearErr := s.store.Clear(); clearErr != nil {
				s.setUnauthenticated()
				return clearErr
			}
			s.setUnauthenticated()
			return nil
		}
		s.setUnauthenticated()
		return err
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user
	s.mu.Unlock()
	return nil
}

// Login authenticates, persists the token and attaches it to the client.
func (s *Session) Login(ctx context.Context, username, password string) (*User, error) {
	result, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	creds := &Credentials{
		AccessToken: result.AccessToken,
		Username:    result.User.Username,
	}
	if err := s.store.Save(creds); err != nil {
		return nil, err
	}

	s.client.SetToken(result.AccessToken)

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = &result.User
	s.mu.Unlock()
	return &result.User, nil
}

// Logout clears the token from both the client and the store.
func (s *Session) Logout() error {
	s.client.ClearToken()
	err := s.store.Clear()
	s.setUnauthenticated()
	return err
}

// Refresh re-fetches the current user; on 401 the session is logged out.
func (s *Session) Refresh(ctx context.Context) (*User, error) {
	if s.State() != StateAuthenticated {
		return nil, ErrNotAuthenticated
	}

	user, err := s.client.Me(ctx)
	if err != nil {
		if IsUnauthorized(err) {
			s.Logout()
		}
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

func (s *Session) setUnauthenticated() {
	s.mu.Lock()
	s.state = StateUnauthenticated
	s.user = nil
	s.mu.Unlock()
}
