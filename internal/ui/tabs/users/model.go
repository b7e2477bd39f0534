// Package users provides the user activity tab of the MockLingo admin TUI.
package users

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mocklingo/admin-dashboard-tui/internal/app"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the users tab.
type keyMap struct {
	Next  key.Binding
	Prev  key.Binding
	First key.Binding
	Last  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "next user"),
		),
		Prev: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "prev user"),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first user"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last user"),
		),
	}
}

// Model represents the users tab state.
type Model struct {
	state         *app.AppState
	spinner       components.LoadingSpinner
	scoreBar      components.ScoreBar
	keys          keyMap
	width         int
	height        int
	selectedIndex int
	offset        int
}

// New creates a new users model.
func New(state *app.AppState) *Model {
	return &Model{
		state:    state,
		spinner:  components.NewSpinner("Loading users..."),
		scoreBar: components.NewScoreBarWithWidth(20),
		keys:     defaultKeyMap(),
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
		m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) {
	count := len(m.state.GetUsers())
	if count == 0 {
		m.selectedIndex = 0
		return
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.selectedIndex = (m.selectedIndex + 1) % count
	case key.Matches(msg, m.keys.Prev):
		m.selectedIndex = (m.selectedIndex - 1 + count) % count
	case key.Matches(msg, m.keys.First):
		m.selectedIndex = 0
	case key.Matches(msg, m.keys.Last):
		m.selectedIndex = count - 1
	}

	m.clampScroll(count)
}

// clampScroll keeps the selection inside the visible window.
func (m *Model) clampScroll(count int) {
	visible := m.visibleRows()
	if visible <= 0 {
		return
	}
	if m.selectedIndex < m.offset {
		m.offset = m.selectedIndex
	}
	if m.selectedIndex >= m.offset+visible {
		m.offset = m.selectedIndex - visible + 1
	}
	if m.offset > count-visible {
		m.offset = max(count-visible, 0)
	}
}

func (m *Model) visibleRows() int {
	// Title, header row, selected-user card and margins eat the rest.
	return max(m.height-14, 3)
}

// SetSize sets the available size for the users tab.
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
	return [][]key.Binding{
		{m.keys.Next, m.keys.Prev},
		{m.keys.First, m.keys.Last},
	}
}
