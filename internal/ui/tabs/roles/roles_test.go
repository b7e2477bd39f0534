package roles

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mocklingo/admin-dashboard-tui/internal/app"
	"github.com/mocklingo/admin-dashboard-tui/internal/models"
)

func TestNew(t *testing.T) {
	m := New(app.NewAppState())

	if m == nil {
		t.Fatal("New() returned nil")
	}
	if m.selectedRole != 0 {
		t.Errorf("selectedRole = %d, want 0", m.selectedRole)
	}
}

func TestModel_Init(t *testing.T) {
	m := New(app.NewAppState())
	if cmd := m.Init(); cmd != nil {
		t.Error("Init() should be nil for a static catalog")
	}
}

func TestModel_Selection(t *testing.T) {
	m := New(app.NewAppState())
	count := len(models.Roles)

	next := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	prev := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}

	m.Update(next)
	if m.selectedRole != 1 {
		t.Errorf("after j: selectedRole = %d, want 1", m.selectedRole)
	}

	m.Update(prev)
	m.Update(prev)
	if m.selectedRole != count-1 {
		t.Errorf("prev should wrap to last role, got %d", m.selectedRole)
	}

	m.Update(next)
	if m.selectedRole != 0 {
		t.Errorf("next should wrap to first role, got %d", m.selectedRole)
	}
}

func TestModel_View(t *testing.T) {
	m := New(app.NewAppState())
	m.SetSize(120, 40)

	view := m.View()

	if !strings.Contains(view, "Roles") {
		t.Error("view should contain title")
	}
	if !strings.Contains(view, "Administrator") {
		t.Error("view should list the admin role")
	}
	if !strings.Contains(view, "15164 users") {
		t.Error("view should show user counts")
	}
	if !strings.Contains(view, "Permissions · Administrator") {
		t.Error("view should show the selected role's permission panel")
	}
	if !strings.Contains(view, "Token Management") {
		t.Error("view should list permissions")
	}
}

func TestModel_View_SelectionChangesPanel(t *testing.T) {
	m := New(app.NewAppState())
	m.SetSize(120, 40)

	// premium is the third catalog entry
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})

	view := m.View()
	if !strings.Contains(view, "Permissions · Premium User") {
		t.Error("panel should follow the selected role")
	}
}

func TestFormatUserCount(t *testing.T) {
	if got := formatUserCount(1); got != "1 user" {
		t.Errorf("formatUserCount(1) = %q", got)
	}
	if got := formatUserCount(8); got != "8 users" {
		t.Errorf("formatUserCount(8) = %q", got)
	}
}
