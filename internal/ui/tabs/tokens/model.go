// Package tokens provides the token usage tab of the MockLingo admin TUI.
package tokens

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mocklingo/admin-dashboard-tui/internal/app"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/components"
)

// chartMode selects which daily series is plotted.
type chartMode int

const (
	chartTokens chartMode = iota
	chartCost
	chartBoth
)

func (c chartMode) String() string {
	switch c {
	case chartTokens:
		return "tokens"
	case chartCost:
		return "cost"
	case chartBoth:
		return "tokens + cost"
	default:
		return "unknown"
	}
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle chart"),
		),
	}
}

// Model represents the tokens tab state.
type Model struct {
	state    *app.AppState
	spinner  components.LoadingSpinner
	keys     keyMap
	viewport viewport.Model
	mode     chartMode
	width    int
	height   int
	ready    bool
}

// New creates a new tokens model.
func New(state *app.AppState) *Model {
	return &Model{
		state:   state,
		spinner: components.NewSpinner("Loading token usage..."),
		keys:    defaultKeyMap(),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Toggle) {
			m.mode = (m.mode + 1) % 3
			break
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// SetSize sets the available size for the tokens tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	if !m.ready {
		m.viewport = viewport.New(width, height)
		m.ready = true
		return
	}
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Toggle},
		{m.keys.Up, m.keys.Down},
	}
}
