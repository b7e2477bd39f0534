// Package session holds the client's record of current authentication
// state: an injectable store with reducer-style transitions, the
// persisted-session backend contract, and the access gate that decides
// whether a screen may render.
package session

import (
	"encoding/json"
	"sync"

	"github.com/mocklingo/admin-dashboard-tui/internal/logger"
	"github.com/mocklingo/admin-dashboard-tui/internal/models"
)

// Session is the current authentication state. LoggedIn implies Token is
// non-empty; Loading is true only during the initial restore check or an
// in-flight login.
type Session struct {
	User     *models.AdminUser
	Token    string
	LoggedIn bool
	Loading  bool
	Err      string
}

// Store is the single owner of session state. All mutation goes through
// the six transition operations; everything else reads snapshots. The
// store never returns errors to callers: persistence failures are logged
// and a malformed persisted record restores to anonymous.
type Store struct {
	mu       sync.RWMutex
	current  Session
	backend  Backend
	onChange []func(Session)
}

// NewStore creates a store in the initial pre-restore state.
func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		current: Session{Loading: true},
	}
}

// Snapshot returns a copy of the current session.
func (st *Store) Snapshot() Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s := st.current
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// OnChange registers a callback invoked after every transition with the
// new session snapshot. Gate decisions are re-evaluated from these
// notifications, never cached.
func (st *Store) OnChange(fn func(Session)) {
	st.mu.Lock()
	st.onChange = append(st.onChange, fn)
	st.mu.Unlock()
}

func (st *Store) apply(mutate func(*Session)) {
	st.mu.Lock()
	mutate(&st.current)
	snapshot := st.current
	callbacks := make([]func(Session), len(st.onChange))
	copy(callbacks, st.onChange)
	st.mu.Unlock()

	for _, fn := range callbacks {
		fn(snapshot)
	}
}

// StartLogin marks a login attempt in flight and clears any prior error.
func (st *Store) StartLogin() {
	st.apply(func(s *Session) {
		s.Loading = true
		s.Err = ""
	})
}

// LoginSucceeded records a successful authentication and persists the
// session. Call only with a result from the login endpoint.
func (st *Store) LoginSucceeded(token string, user models.AdminUser) {
	st.apply(func(s *Session) {
		s.Loading = false
		s.LoggedIn = true
		s.Token = token
		s.User = &user
		s.Err = ""
	})

	if err := st.backend.Set(KeyToken, token); err != nil {
		logger.Error("failed to persist session token", "error", err)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		logger.Error("failed to encode session user", "error", err)
		return
	}
	if err := st.backend.Set(KeyUser, string(raw)); err != nil {
		logger.Error("failed to persist session user", "error", err)
	}
}

// LoginFailed records a failed authentication attempt.
func (st *Store) LoginFailed(msg string) {
	st.apply(func(s *Session) {
		s.Loading = false
		s.LoggedIn = false
		s.User = nil
		s.Token = ""
		s.Err = msg
	})
}

// Logout resets the session and deletes the persisted record.
func (st *Store) Logout() {
	st.apply(func(s *Session) {
		*s = Session{}
	})

	if err := st.backend.Delete(KeyToken); err != nil {
		logger.Error("failed to delete persisted token", "error", err)
	}
	if err := st.backend.Delete(KeyUser); err != nil {
		logger.Error("failed to delete persisted user", "error", err)
	}
}

// RestoreFromStorage loads the persisted session, if any. A missing or
// corrupt record restores to anonymous; restore always ends with Loading
// false and is idempotent against unchanged storage.
func (st *Store) RestoreFromStorage() {
	token, hasToken := st.backend.Get(KeyToken)
	rawUser, hasUser := st.backend.Get(KeyUser)

	var user *models.AdminUser
	if hasUser && rawUser != "" {
		var u models.AdminUser
		if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
			logger.Warn("ignoring corrupt persisted session user", "error", err)
			hasUser = false
		} else {
			user = &u
		}
	}

	st.apply(func(s *Session) {
		if hasToken && token != "" && hasUser && user != nil {
			s.LoggedIn = true
			s.Token = token
			s.User = user
		} else {
			s.LoggedIn = false
			s.Token = ""
			s.User = nil
		}
		s.Loading = false
	})
}

// ClearError clears the error message without touching other fields.
// Invoked whenever the user edits a credential input.
func (st *Store) ClearError() {
	st.apply(func(s *Session) {
		s.Err = ""
	})
}
