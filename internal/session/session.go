// Package session holds the signed-in customer and the staff session of a
// terminal, persisted through the storage layer.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"pizza-storefront/internal/model"
	"pizza-storefront/internal/storage"

	"github.com/rs/zerolog"
)

// State is what subscribers see after every change.
type State struct {
	User  *model.User `json:"user"`
	Staff bool        `json:"staff"`
}

// Listener receives the state after every change.
type Listener func(State)

type staffRecord struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Session is the application state shared by the HTTP handlers and the
// services. Views read it through accessors and Subscribe instead of
// reading storage directly.
type Session struct {
	mu        sync.Mutex
	user      *model.User
	staff     staffRecord
	store     storage.Store
	tokens    *StaffTokens
	listeners map[int]Listener
	nextID    int
	now       func() time.Time
	logger    zerolog.Logger
}

// New creates an empty session. Call Load to restore persisted state.
func New(store storage.Store, tokens *StaffTokens, logger zerolog.Logger) *Session {
	return &Session{
		store:     store,
		tokens:    tokens,
		listeners: make(map[int]Listener),
		now:       time.Now,
		logger:    logger.With().Str("component", "session").Logger(),
	}
}

// Load restores the user and staff token. Corrupt entries are ignored.
func (s *Session) Load(ctx context.Context) {
	var user *model.User
	var u model.User
	if s.read(ctx, storage.KeyUser, &u) {
		if err := u.Validate(); err != nil {
			s.logger.Warn().Err(err).Msg("stored user is invalid, ignoring")
		} else {
			user = &u
		}
	}

	var staff staffRecord
	s.read(ctx, storage.KeyStaff, &staff)

	s.mu.Lock()
	s.user = user
	s.staff = staff
	st := s.stateLocked()
	s.mu.Unlock()

	s.publish(st)
}

// Reload re-reads storage after another terminal changed it.
func (s *Session) Reload(ctx context.Context) {
	s.Load(ctx)
}

func (s *Session) read(ctx context.Context, key string, dst interface{}) bool {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to read session state")
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("stored session state is corrupt, ignoring")
		return false
	}
	return true
}

// User returns the signed-in customer.
func (s *Session) User() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// SetUser stores the signed-in customer.
func (s *Session) SetUser(ctx context.Context, user model.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyUser, raw); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	st := s.stateLocked()
	s.mu.Unlock()

	s.publish(st)
	return nil
}

// ClearUser signs the customer out.
func (s *Session) ClearUser(ctx context.Context) error {
	if err := s.store.Delete(ctx, storage.KeyUser); err != nil {
		return fmt.Errorf("failed to clear user: %w", err)
	}

	s.mu.Lock()
	s.user = nil
	st := s.stateLocked()
	s.mu.Unlock()

	s.publish(st)
	return nil
}

// StartStaff issues and stores a new staff token.
func (s *Session) StartStaff(ctx context.Context) (string, time.Time, error) {
	token, exp, err := s.tokens.Issue(s.now())
	if err != nil {
		return "", time.Time{}, err
	}

	rec := staffRecord{Token: token, ExpiresAt: exp}
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to encode staff session: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyStaff, raw); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to persist staff session: %w", err)
	}

	s.mu.Lock()
	s.staff = rec
	st := s.stateLocked()
	s.mu.Unlock()

	s.publish(st)
	return token, exp, nil
}

// EndStaff forgets the staff token.
func (s *Session) EndStaff(ctx context.Context) error {
	if err := s.store.Delete(ctx, storage.KeyStaff); err != nil {
		return fmt.Errorf("failed to clear staff session: %w", err)
	}

	s.mu.Lock()
	s.staff = staffRecord{}
	st := s.stateLocked()
	s.mu.Unlock()

	s.publish(st)
	return nil
}

// IsStaff reports whether the stored staff token is still valid.
func (s *Session) IsStaff() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staffValidLocked()
}

// VerifyStaff checks a bearer token presented by a client. It must be
// valid and match the token this terminal issued.
func (s *Session) VerifyStaff(raw string) error {
	if _, err := s.tokens.Verify(raw, s.now()); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staff.Token == "" || s.staff.Token != raw {
		return ErrInvalidToken
	}
	return nil
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription.
func (s *Session) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Session) staffValidLocked() bool {
	if s.staff.Token == "" {
		return false
	}
	_, err := s.tokens.Verify(s.staff.Token, s.now())
	return err == nil
}

func (s *Session) stateLocked() State {
	st := State{Staff: s.staffValidLocked()}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

func (s *Session) publish(st State) {
	s.mu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(st)
	}
}
