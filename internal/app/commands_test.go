package app

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mocklingo/admin-dashboard-tui/internal/config"
	"github.com/mocklingo/admin-dashboard-tui/internal/services"
)

// newTestManager builds a manager against an unreachable API with all
// state files in a temp dir.
func newTestManager(t *testing.T) *services.Manager {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		APIBaseURL:     "http://127.0.0.1:1",
		SessionPath:    filepath.Join(dir, "session.json"),
		CacheDBPath:    filepath.Join(dir, "cache.db"),
		RequestTimeout: time.Second,
	}

	mgr, err := services.NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })

	return mgr
}

func TestTickCmds(t *testing.T) {
	cmds := NewCommands(nil)
	if cmds.Tick(time.Millisecond) == nil {
		t.Error("Tick returned nil")
	}
	if cmds.DefaultTick() == nil {
		t.Error("DefaultTick returned nil")
	}
}

func TestNotificationCmds(t *testing.T) {
	cmds := NewCommands(nil)

	tests := []struct {
		name string
		fn   func(string) tea.Cmd
		want NotificationType
	}{
		{"Success", cmds.NotifySuccess, NotificationSuccess},
		{"Error", cmds.NotifyError, NotificationError},
		{"Warning", cmds.NotifyWarning, NotificationWarning},
		{"Info", cmds.NotifyInfo, NotificationInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.fn("msg")()

			addMsg, ok := msg.(AddNotificationMsg)
			if !ok {
				t.Fatalf("Expected AddNotificationMsg, got %T", msg)
			}
			if addMsg.Type != tt.want {
				t.Errorf("Type = %v, want %v", addMsg.Type, tt.want)
			}
			if addMsg.Message != "msg" {
				t.Errorf("Message = %q, want msg", addMsg.Message)
			}
			if addMsg.Duration <= 0 {
				t.Error("Notification should carry a positive duration")
			}
		})
	}
}

func TestNotificationCmds_ErrorsLingerLongest(t *testing.T) {
	cmds := NewCommands(nil)

	errMsg := cmds.NotifyError("e")().(AddNotificationMsg)
	infoMsg := cmds.NotifyInfo("i")().(AddNotificationMsg)

	if errMsg.Duration <= infoMsg.Duration {
		t.Errorf("error duration %v should exceed info duration %v",
			errMsg.Duration, infoMsg.Duration)
	}
}

func TestRestoreSessionCmd_Anonymous(t *testing.T) {
	mgr := newTestManager(t)

	msg := restoreSessionCmd(mgr)()
	restored, ok := msg.(SessionRestoredMsg)
	if !ok {
		t.Fatalf("Expected SessionRestoredMsg, got %T", msg)
	}
	if restored.Session.LoggedIn {
		t.Error("Fresh session file should restore to anonymous")
	}
	if restored.Session.Loading {
		t.Error("Restore should finish the loading phase")
	}
}

func TestLogoutCmd(t *testing.T) {
	mgr := newTestManager(t)
	mgr.RestoreSession()

	msg := logoutCmd(mgr)()
	changed, ok := msg.(SessionChangedEventMsg)
	if !ok {
		t.Fatalf("Expected SessionChangedEventMsg, got %T", msg)
	}
	if changed.Event.Session.LoggedIn {
		t.Error("Session should be anonymous after logout")
	}
}

func TestLoadCachedDataCmd_EmptyCache(t *testing.T) {
	mgr := newTestManager(t)

	if msg := loadCachedDataCmd(mgr)(); msg != nil {
		t.Errorf("Empty cache should produce no message, got %T", msg)
	}
}

func TestClearNotificationCmd(t *testing.T) {
	cmds := NewCommands(nil)
	if cmds.ClearNotification("id", time.Millisecond) == nil {
		t.Error("ClearNotification returned nil")
	}
}

func TestQuitCmd(t *testing.T) {
	cmds := NewCommands(nil)
	msg := cmds.Quit()()
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Errorf("Expected QuitMsg, got %T", msg)
	}
}

func TestBatchAndDelayedCmds(t *testing.T) {
	cmds := NewCommands(nil)
	if cmds.Batch(cmds.Quit(), cmds.NotifyInfo("test")) == nil {
		t.Error("Batch returned nil")
	}
	if cmds.Delayed(time.Millisecond, QuitMsg{}) == nil {
		t.Error("Delayed returned nil")
	}
}
