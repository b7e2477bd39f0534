package dashboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mocklingo/admin-dashboard-tui/internal/analytics"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/components"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/styles"
)

const recentRows = 5

// View renders the dashboard tab.
func (m *Model) View() string {
	if m.state.Loading.Stats && m.state.GetLastUpdated().IsZero() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderStatCards())
	sections = append(sections, m.renderUsageSpark())
	sections = append(sections, m.renderRecentUsers())
	sections = append(sections, m.renderRecentFeedback())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the dashboard title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("MockLingo Admin")
	subtitle := styles.HelpStyle.Render("Platform overview")

	if stats := m.state.GetStats(); stats.FromCache {
		subtitle = styles.WarningTextStyle.Render("Showing cached data")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderStatCards renders the headline counter cards.
func (m *Model) renderStatCards() string {
	stats := m.state.GetStats()

	cards := []string{
		m.renderStatCard("Total Users", formatCount(stats.TotalUsers)),
		m.renderStatCard("Total Tokens", formatTokens(stats.TotalTokens)),
		m.renderStatCard("Feedbacks", formatCount(stats.TotalFeedbacks)),
		m.renderStatCard("Active Sessions", m.state.ActiveSessionsDisplay()),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m *Model) renderStatCard(label, value string) string {
	cardWidth := (m.width - 10) / 4
	if cardWidth < 16 {
		cardWidth = 16
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.StatValueStyle.Render(value),
		styles.StatLabelStyle.Render(label),
	)

	return styles.CardStyle.Width(cardWidth).Render(content)
}

// renderUsageSpark shows the 7-day token trend as a one-line sparkline.
func (m *Model) renderUsageSpark() string {
	_, daily, _ := m.state.GetUsage()
	if len(daily) == 0 {
		return ""
	}

	values := make([]float64, len(daily))
	for i, d := range daily {
		values[i] = float64(d.Tokens)
	}

	spark := components.RenderSparkline(values, 28)
	label := styles.StatLabelStyle.Render("Tokens, last 7 days")

	return lipgloss.JoinVertical(lipgloss.Left, "", label, spark)
}

// renderRecentUsers renders the most recently active users.
func (m *Model) renderRecentUsers() string {
	users := m.state.GetUsers()
	cardWidth := max(m.width-6, 40)

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Recent Users"))

	if m.state.Loading.Users && len(users) == 0 {
		rows = append(rows, m.spinner.ViewWithLabel())
		return styles.CardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	if len(users) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No users yet"))
		return styles.CardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	now := time.Now()
	nameStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary).Width(24)
	timeStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)

	limit := min(len(users), recentRows)
	for _, u := range users[:limit] {
		name := u.FullName
		if name == "" {
			name = u.Email
		}
		last := analytics.RelativeTimeString(now, u.LastInterview)
		score := fmt.Sprintf("%4.1f", u.AverageScore)

		rows = append(rows, fmt.Sprintf("%s %s  %s",
			nameStyle.Render(truncate(name, 24)),
			styles.InfoTextStyle.Render(score),
			timeStyle.Render(last),
		))
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderRecentFeedback renders the latest interview feedback.
func (m *Model) renderRecentFeedback() string {
	feedbacks := m.state.GetFeedbacks()
	cardWidth := max(m.width-6, 40)

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Recent Feedback"))

	if m.state.Loading.Feedback && len(feedbacks) == 0 {
		rows = append(rows, m.spinner.ViewWithLabel())
		return styles.CardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	if len(feedbacks) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No feedback yet"))
		return styles.CardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	modeStyle := lipgloss.NewStyle().Foreground(styles.Secondary).Width(12)
	commentStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)

	limit := min(len(feedbacks), recentRows)
	for _, f := range feedbacks[:limit] {
		stars := components.RenderStars(f.Rating)
		comment := truncate(f.Comment, max(cardWidth-30, 10))

		rows = append(rows, fmt.Sprintf("%s %s  %s",
			modeStyle.Render(truncate(f.Mode, 12)),
			stars,
			commentStyle.Render(comment),
		))
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// formatTokens renders a token count compactly (1.2M, 45.1K).
func formatTokens(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

func formatCount(n int64) string {
	return fmt.Sprintf("%d", n)
}

func truncate(s string, limit int) string {
	if limit <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
