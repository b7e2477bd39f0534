// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/mocklingo/admin-dashboard-tui/internal/api"
	"github.com/mocklingo/admin-dashboard-tui/internal/config"
	"github.com/mocklingo/admin-dashboard-tui/internal/db"
	"github.com/mocklingo/admin-dashboard-tui/internal/logger"
	"github.com/mocklingo/admin-dashboard-tui/internal/models"
	"github.com/mocklingo/admin-dashboard-tui/internal/session"
)

type (
	// SessionChangedEvent is emitted whenever the session store mutates.
	SessionChangedEvent struct {
		Session session.Session
	}

	// SessionExpiredEvent is emitted when the backend rejects the token
	// of a previously logged-in session.
	SessionExpiredEvent struct {
		Message string
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SessionChangedEvent) isServiceEvent() {}
func (SessionExpiredEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()          {}

// Manager orchestrates the session store, API client and local cache.
type Manager struct {
	mu          sync.RWMutex
	store       *session.Store
	backend     *session.FileBackend
	client      *api.Client
	database    *db.DB
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		stopChan: make(chan struct{}),
	}

	backend, err := session.NewFileBackend(cfg.SessionPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	m.backend = backend
	m.store = session.NewStore(backend)

	// The cache is best effort. A broken cache file degrades boot
	// rendering but never blocks the dashboard.
	m.database, err = db.New(cfg.CacheDBPath)
	if err != nil {
		logger.Warn("dashboard cache unavailable", "error", err)
		m.database = nil
	}

	m.client = api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, func() string {
		return m.store.Snapshot().Token
	})

	m.store.OnChange(func(s session.Session) {
		m.broadcast(SessionChangedEvent{Session: s})
	})

	go m.watchSessionFile()

	return m, nil
}

// watchSessionFile reloads the session when the file changes on disk,
// so a logout in another instance logs this one out too.
func (m *Manager) watchSessionFile() {
	for {
		select {
		case <-m.backend.Changes():
			m.store.RestoreFromStorage()
		case <-m.stopChan:
			return
		}
	}
}

// Session returns the current session snapshot.
func (m *Manager) Session() session.Session {
	return m.store.Snapshot()
}

// Store returns the session store.
func (m *Manager) Store() *session.Store {
	return m.store
}

// Client returns the API client.
func (m *Manager) Client() *api.Client {
	return m.client
}

// RestoreSession loads any persisted session from disk.
func (m *Manager) RestoreSession() {
	m.store.RestoreFromStorage()
}

// Login authenticates against the backend and persists the session.
// Failures land in the session's error state, never as a panic or a
// returned error; the UI reads them from the next SessionChangedEvent.
func (m *Manager) Login(ctx context.Context, username, password string) {
	m.store.StartLogin()

	result, err := m.client.Login(ctx, username, password)
	if err != nil {
		m.store.LoginFailed(err.Error())
		return
	}

	m.store.LoginSucceeded(result.AccessToken, result.AdminUser)
}

// Logout clears the session and its persisted record.
func (m *Manager) Logout() {
	m.store.Logout()
}

// HandleAPIError inspects a data-fetch error. An auth failure on a
// live session means the token expired server-side: the session is
// torn down and the user is notified.
func (m *Manager) HandleAPIError(err error) {
	if err == nil {
		return
	}

	var authErr *api.AuthError
	if errors.As(err, &authErr) && m.store.Snapshot().LoggedIn {
		m.store.Logout()
		_ = beeep.Notify("MockLingo Admin", "Session expired - please login again", "")
		m.broadcast(SessionExpiredEvent{Message: authErr.Message})
		return
	}

	m.broadcast(ErrorEvent{Service: "api", Error: err})
}

// CacheUsage stores fetched usage records for the next boot.
func (m *Manager) CacheUsage(records []models.UsageRecord) {
	if m.database == nil {
		return
	}
	if err := m.database.ReplaceUsageRecords(records); err != nil {
		logger.Warn("failed to cache usage records", "error", err)
	}
}

// CachedUsage returns the usage records from the last successful fetch.
func (m *Manager) CachedUsage() []models.UsageRecord {
	if m.database == nil {
		return nil
	}
	records, err := m.database.GetUsageRecords()
	if err != nil {
		logger.Warn("failed to read cached usage records", "error", err)
		return nil
	}
	return records
}

// CacheStat stores a single dashboard statistic.
func (m *Manager) CacheStat(key string, value int64) {
	if m.database == nil {
		return
	}
	if err := m.database.SetStat(key, strconv.FormatInt(value, 10)); err != nil {
		logger.Warn("failed to cache stat", "key", key, "error", err)
	}
}

// CachedStat returns a cached dashboard statistic, or false when absent.
func (m *Manager) CachedStat(key string) (int64, bool) {
	if m.database == nil {
		return 0, false
	}
	value, ok, err := m.database.GetStat(key)
	if err != nil {
		logger.Warn("failed to read cached stat", "key", key, "error", err)
		return 0, false
	}
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Database returns the cache database, or nil when unavailable.
func (m *Manager) Database() *db.DB {
	return m.database
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.backend.Close(); err != nil {
		errs = append(errs, err)
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
