package login

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mocklingo/admin-dashboard-tui/internal/app"
	"github.com/mocklingo/admin-dashboard-tui/internal/config"
	"github.com/mocklingo/admin-dashboard-tui/internal/services"
)

func newTestManager(t *testing.T) *services.Manager {
	t.Helper()

	tmpDir := t.TempDir()
	cfg := &config.Config{
		APIBaseURL:     "http://127.0.0.1:1",
		SessionPath:    tmpDir + "/session.json",
		CacheDBPath:    tmpDir + "/cache.db",
		RequestTimeout: time.Second,
	}

	mgr, err := services.NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })
	mgr.RestoreSession()
	return mgr
}

func typeString(m app.LoginScreen, s string) app.LoginScreen {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestNew(t *testing.T) {
	m := New(nil)
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.focus != focusUsername {
		t.Error("Username should be focused initially")
	}
	if m.Init() == nil {
		t.Error("Init should return the blink command")
	}
}

func TestModel_TypingFillsFields(t *testing.T) {
	var screen app.LoginScreen = New(nil)

	screen = typeString(screen, "admin")
	screen, _ = screen.Update(tea.KeyMsg{Type: tea.KeyTab})
	screen = typeString(screen, "secret")

	m := screen.(*Model)
	if m.username.Value() != "admin" {
		t.Errorf("username = %q, want admin", m.username.Value())
	}
	if m.password.Value() != "secret" {
		t.Errorf("password = %q, want secret", m.password.Value())
	}
}

func TestModel_SubmitRequiresBothFields(t *testing.T) {
	var screen app.LoginScreen = New(nil)

	// Empty form: enter on the password field does nothing
	screen, _ = screen.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := screen.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("Submit with empty fields should be rejected")
	}
}

func TestModel_SubmitEmitsCredentials(t *testing.T) {
	var screen app.LoginScreen = New(nil)

	screen = typeString(screen, "admin")
	// Enter on the username field moves to the password field
	screen, cmd := screen.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("Enter on username should only move focus")
	}
	screen = typeString(screen, "secret")

	screen, cmd = screen.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Submit should return a command")
	}

	msg, ok := cmd().(app.LoginSubmitMsg)
	if !ok {
		t.Fatalf("Expected LoginSubmitMsg, got %T", cmd())
	}
	if msg.Username != "admin" || msg.Password != "secret" {
		t.Errorf("credentials = %q/%q", msg.Username, msg.Password)
	}
	_ = screen
}

func TestModel_FocusCycle(t *testing.T) {
	m := New(nil)
	var screen app.LoginScreen = m

	screen, _ = screen.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusPassword {
		t.Errorf("focus = %d, want password", m.focus)
	}
	screen, _ = screen.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusSubmit {
		t.Errorf("focus = %d, want submit", m.focus)
	}
	screen, _ = screen.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusUsername {
		t.Errorf("focus = %d, want username after wrap", m.focus)
	}
	screen, _ = screen.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != focusSubmit {
		t.Errorf("focus = %d, want submit after shift+tab", m.focus)
	}
	_ = screen
}

func TestModel_Reset(t *testing.T) {
	var screen app.LoginScreen = New(nil)
	screen = typeString(screen, "admin")

	m := screen.(*Model)
	m.Reset()

	if m.username.Value() != "" || m.password.Value() != "" {
		t.Error("Reset should clear both fields")
	}
	if m.focus != focusUsername {
		t.Error("Reset should focus the username field")
	}
}

func TestModel_TypingClearsError(t *testing.T) {
	mgr := newTestManager(t)
	mgr.Store().StartLogin()
	mgr.Store().LoginFailed("Wrong username or password")

	var screen app.LoginScreen = New(mgr)
	screen = typeString(screen, "a")

	if mgr.Session().Err != "" {
		t.Error("Typing should clear the login error")
	}
}

func TestModel_View(t *testing.T) {
	mgr := newTestManager(t)
	m := New(mgr)
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "MockLingo Admin") {
		t.Error("View should show the title")
	}
	if !strings.Contains(view, "Login") {
		t.Error("View should show the submit button")
	}

	mgr.Store().StartLogin()
	mgr.Store().LoginFailed("Wrong username or password")
	view = m.View()
	if !strings.Contains(view, "Wrong username or password") {
		t.Error("View should show the login error")
	}
}

func TestModel_ViewWhileLoading(t *testing.T) {
	mgr := newTestManager(t)
	mgr.Store().StartLogin()

	m := New(mgr)
	view := m.View()
	if !strings.Contains(view, "Signing in...") {
		t.Error("View should show the in-flight label")
	}
}
