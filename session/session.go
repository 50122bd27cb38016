// Package session owns the client-side record of who is logged in. A single
// Store instance is created at startup and handed to every consumer; all
// mutation goes through it so the authenticated flag and the persisted token
// pair can never disagree.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ledgerline/ledgerline-go/api"
	"github.com/ledgerline/ledgerline-go/internal/errors"
	"github.com/ledgerline/ledgerline-go/tokenstore"
	"github.com/ledgerline/ledgerline-go/users"
)

// Fallback messages shown when the backend gives us nothing usable.
const (
	loginFailedMsg    = "Login failed"
	registerFailedMsg = "Registration failed"
)

// AuthAPI is the slice of the API surface the session store needs.
type AuthAPI interface {
	Login(ctx context.Context, creds api.Credentials) (*api.AuthPayload, error)
	Register(ctx context.Context, reg api.Registration) (*api.AuthPayload, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context) (*users.User, error)
}

// State is a point-in-time snapshot of the session. Exactly one of loading,
// authenticated-with-user and unauthenticated holds at any time.
type State struct {
	User            *users.User
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

// Result is the outcome of a login or register attempt. Business failures are
// reported here, not as Go errors, so callers show the message and move on.
type Result struct {
	Success bool
	User    *users.User
	Error   string
}

// Store is the single source of truth for the current session.
type Store struct {
	authAPI AuthAPI
	tokens  tokenstore.Store
	log     zerolog.Logger

	lock  sync.RWMutex
	state State
}

// Option modifies the Store instance.
type Option func(*Store)

// WithLogger sets the structured logger used by the store.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New initializes a session store in the loading state, ready for the initial
// LoadUser call.
func New(authAPI AuthAPI, tokens tokenstore.Store, options ...Option) (*Store, error) {
	if authAPI == nil {
		return nil, errors.Wrapf(errors.ErrInternal, "[session.New] auth API is required")
	}
	if tokens == nil {
		return nil, errors.Wrapf(errors.ErrInternal, "[session.New] token store is required")
	}

	store := &Store{
		authAPI: authAPI,
		tokens:  tokens,
		log:     zerolog.Nop(),
		state:   State{IsLoading: true},
	}

	for _, opt := range options {
		opt(store)
	}

	return store, nil
}

// State returns a snapshot of the current session. The user is copied so
// callers cannot mutate shared state through the pointer.
func (s *Store) State() State {
	s.lock.RLock()
	defer s.lock.RUnlock()

	snapshot := s.state
	if s.state.User != nil {
		userCopy := *s.state.User
		snapshot.User = &userCopy
	}
	return snapshot
}

// LoadUser resolves the initial session from storage. With no stored access
// token it settles unauthenticated without touching the network. With one, it
// fetches the profile; any failure clears both tokens and resets the session.
func (s *Store) LoadUser(ctx context.Context) {
	if _, ok := s.tokens.AccessToken(); !ok {
		s.setState(State{})
		return
	}

	user, err := s.authAPI.Profile(ctx)
	if err != nil || user == nil {
		s.log.Warn().Err(err).Msg("failed to load user profile")
		s.clearTokens()
		s.setState(State{})
		return
	}

	s.log.Debug().Str("user_id", user.ID.String()).Msg("user profile loaded")
	s.setState(State{User: user, IsAuthenticated: true})
}

// Login authenticates with credentials. On success both tokens are persisted
// and the session becomes authenticated; on failure the session carries the
// backend's message (or a generic fallback) and no error is thrown.
func (s *Store) Login(ctx context.Context, creds api.Credentials) Result {
	s.setLoading()

	payload, err := s.authAPI.Login(ctx, creds)
	if err != nil || payload == nil || payload.User == nil {
		return s.fail(loginFailedMsg, err)
	}
	return s.establish(payload, loginFailedMsg)
}

// Register creates an account; contract and state transitions are identical
// to Login.
func (s *Store) Register(ctx context.Context, reg api.Registration) Result {
	s.setLoading()

	payload, err := s.authAPI.Register(ctx, reg)
	if err != nil || payload == nil || payload.User == nil {
		return s.fail(registerFailedMsg, err)
	}
	return s.establish(payload, registerFailedMsg)
}

// Logout invalidates the refresh token server-side on a best-effort basis.
// Local tokens and session state are cleared no matter what.
func (s *Store) Logout(ctx context.Context) {
	defer func() {
		s.clearTokens()
		s.setState(State{})
	}()

	refreshToken, ok := s.tokens.RefreshToken()
	if !ok {
		return
	}
	if err := s.authAPI.Logout(ctx, refreshToken); err != nil {
		s.log.Debug().Err(err).Msg("server-side logout failed, clearing locally anyway")
	}
}

// UpdateUser shallow-merges a partial update into the current user. The
// caller is expected to have persisted the change already.
func (s *Store) UpdateUser(partial users.User) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.state.User == nil {
		return
	}
	userCopy := *s.state.User
	userCopy.Merge(partial)
	s.state.User = &userCopy
}

// ClearError resets the error field only.
func (s *Store) ClearError() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.state.Error = ""
}

func (s *Store) establish(payload *api.AuthPayload, fallbackMsg string) Result {
	if err := s.tokens.SetPair(payload.Tokens.AccessToken, payload.Tokens.RefreshToken); err != nil {
		s.log.Error().Err(err).Msg("failed to persist token pair")
		return s.fail(fallbackMsg, err)
	}

	s.setState(State{User: payload.User, IsAuthenticated: true})
	return Result{Success: true, User: payload.User}
}

func (s *Store) fail(fallbackMsg string, err error) Result {
	message := api.Message(err, fallbackMsg)
	s.setState(State{Error: message})
	return Result{Success: false, Error: message}
}

func (s *Store) setLoading() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.state.IsLoading = true
	s.state.Error = ""
}

func (s *Store) setState(st State) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.state = st
}

func (s *Store) clearTokens() {
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear stored tokens")
	}
}
