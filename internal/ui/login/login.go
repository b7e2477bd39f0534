// Package login provides the login form shown to anonymous sessions.
package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mocklingo/admin-dashboard-tui/internal/app"
	"github.com/mocklingo/admin-dashboard-tui/internal/services"
	"github.com/mocklingo/admin-dashboard-tui/internal/session"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/styles"
)

const (
	focusUsername = iota
	focusPassword
	focusSubmit
	focusCount
)

// keyMap defines the key bindings specific to the login form.
type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "login"),
		),
	}
}

// Model represents the login form state.
type Model struct {
	mgr      *services.Manager
	username textinput.Model
	password textinput.Model
	focus    int
	keys     keyMap
	width    int
	height   int
}

// New creates a new login form.
func New(mgr *services.Manager) *Model {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 64
	username.Width = 32
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 64
	password.Width = 32
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &Model{
		mgr:      mgr,
		username: username,
		password: password,
		focus:    focusUsername,
		keys:     defaultKeyMap(),
	}
}

// Init initializes the form.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) sessionState() session.Session {
	if m.mgr == nil {
		return session.Session{}
	}
	return m.mgr.Session()
}

// canSubmit reports whether the form may be submitted.
func (m *Model) canSubmit() bool {
	if m.sessionState().Loading {
		return false
	}
	return strings.TrimSpace(m.username.Value()) != "" && m.password.Value() != ""
}

// Update handles messages for the login form.
func (m *Model) Update(msg tea.Msg) (app.LoginScreen, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateInputs(msg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Next):
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil

	case key.Matches(keyMsg, m.keys.Prev):
		m.setFocus((m.focus - 1 + focusCount) % focusCount)
		return m, nil

	case key.Matches(keyMsg, m.keys.Submit):
		if m.focus == focusUsername {
			m.setFocus(focusPassword)
			return m, nil
		}
		if !m.canSubmit() {
			return m, nil
		}
		username := strings.TrimSpace(m.username.Value())
		password := m.password.Value()
		return m, func() tea.Msg {
			return app.LoginSubmitMsg{Username: username, Password: password}
		}
	}

	// Typing clears a stale login error
	if m.mgr != nil && m.sessionState().Err != "" {
		m.mgr.Store().ClearError()
	}

	return m, m.updateInputs(msg)
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.username, cmd = m.username.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)

	return tea.Batch(cmds...)
}

func (m *Model) setFocus(focus int) {
	m.focus = focus

	m.username.Blur()
	m.password.Blur()

	switch focus {
	case focusUsername:
		m.username.Focus()
	case focusPassword:
		m.password.Focus()
	}
}

// Reset clears the form fields and focuses the username input.
func (m *Model) Reset() {
	m.username.SetValue("")
	m.password.SetValue("")
	m.setFocus(focusUsername)
}

// SetSize sets the available size for the form.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the login form.
func (m *Model) View() string {
	sess := m.sessionState()

	var rows []string
	rows = append(rows, styles.TitleStyle.Render("MockLingo Admin"))
	rows = append(rows, styles.HelpStyle.Render("Sign in to the admin dashboard"))
	rows = append(rows, "")

	rows = append(rows, m.renderInput(m.username, m.focus == focusUsername))
	rows = append(rows, m.renderInput(m.password, m.focus == focusPassword))
	rows = append(rows, "")

	rows = append(rows, m.renderButton(sess))

	if sess.Err != "" {
		rows = append(rows, "")
		rows = append(rows, styles.ErrorTextStyle.Render(sess.Err))
	}

	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("tab: switch field • enter: login • ctrl+c: quit"))

	card := styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	if m.width > 0 && m.height > 0 {
		return styles.CenterBoth(card, m.width, m.height)
	}
	return card
}

func (m *Model) renderInput(input textinput.Model, focused bool) string {
	if focused {
		return styles.FocusedBorderStyle.Render(input.View())
	}
	return styles.BlurredBorderStyle.Render(input.View())
}

func (m *Model) renderButton(sess session.Session) string {
	label := "Login"
	if sess.Loading {
		label = "Signing in..."
	}

	switch {
	case !m.canSubmit():
		return styles.ButtonDisabledStyle.Render(label)
	case m.focus == focusSubmit:
		return styles.ButtonActiveStyle.Render(label)
	default:
		return styles.ButtonInactiveStyle.Render(label)
	}
}
