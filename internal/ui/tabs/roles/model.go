// Package roles provides the role catalog tab of the MockLingo admin TUI.
package roles

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mocklingo/admin-dashboard-tui/internal/app"
	"github.com/mocklingo/admin-dashboard-tui/internal/models"
)

type keyMap struct {
	Next key.Binding
	Prev key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "next role"),
		),
		Prev: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "prev role"),
		),
	}
}

// Model represents the roles tab state. The catalog is static so the
// tab carries no loading state.
type Model struct {
	state        *app.AppState
	keys         keyMap
	width        int
	height       int
	selectedRole int
}

// New creates a new roles model.
func New(state *app.AppState) *Model {
	return &Model{
		state: state,
		keys:  defaultKeyMap(),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		count := len(models.Roles)
		switch {
		case key.Matches(msg, m.keys.Next):
			m.selectedRole = (m.selectedRole + 1) % count
		case key.Matches(msg, m.keys.Prev):
			m.selectedRole = (m.selectedRole - 1 + count) % count
		}
	}
	return m, nil
}

// SetSize sets the available size for the roles tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Next, m.keys.Prev}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Next, m.keys.Prev}}
}
