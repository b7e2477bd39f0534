package users

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mocklingo/admin-dashboard-tui/internal/analytics"
	"github.com/mocklingo/admin-dashboard-tui/internal/models"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/components"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/styles"
)

const (
	nameColWidth  = 22
	emailColWidth = 28
)

// View renders the users tab.
func (m *Model) View() string {
	rows := m.state.GetUsers()

	if m.state.Loading.Users && len(rows) == 0 {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	var b strings.Builder

	b.WriteString(m.renderTitle(len(rows)))
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString(styles.HelpStyle.Render("No users yet"))
		return styles.DocStyle.Render(b.String())
	}

	b.WriteString(m.renderTable(rows))
	b.WriteString("\n")
	b.WriteString(m.renderSelectedCard(rows))

	return styles.DocStyle.Render(b.String())
}

func (m *Model) renderTitle(count int) string {
	title := styles.TitleStyle.Render("Users")
	subtitle := styles.SubTitleStyle.Render(fmt.Sprintf("%d registered", count))
	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", subtitle)
}

func (m *Model) renderTable(rows []models.UserRow) string {
	var b strings.Builder

	header := fmt.Sprintf("  %-*s %-*s %6s %11s  %s",
		nameColWidth, "Name",
		emailColWidth, "Email",
		"Score", "Interviews", "Last interview")
	b.WriteString(styles.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	now := time.Now()
	visible := m.visibleRows()
	end := min(m.offset+visible, len(rows))

	for i := m.offset; i < end; i++ {
		u := rows[i]
		line := fmt.Sprintf("%-*s %-*s %6.1f %11d  %s",
			nameColWidth, truncate(displayName(u), nameColWidth),
			emailColWidth, truncate(u.Email, emailColWidth),
			u.AverageScore,
			u.TotalInterviews,
			analytics.RelativeTimeString(now, u.LastInterview))

		if i == m.selectedIndex {
			b.WriteString(styles.TableSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(styles.TableCellStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if end < len(rows) {
		b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("  … %d more", len(rows)-end)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderSelectedCard shows the highlighted user with a score gauge.
func (m *Model) renderSelectedCard(rows []models.UserRow) string {
	if m.selectedIndex >= len(rows) {
		m.selectedIndex = len(rows) - 1
	}
	u := rows[m.selectedIndex]

	bar := m.scoreBar
	bar.SetScore(u.AverageScore)

	now := time.Now()
	var b strings.Builder
	b.WriteString(styles.CardTitleStyle.Render(displayName(u)))
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(u.Email))
	b.WriteString("\n\n")
	b.WriteString("Average score  " + bar.View())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Interviews     %s", styles.InfoTextStyle.Render(fmt.Sprintf("%d", u.TotalInterviews))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Last activity  %s", analytics.RelativeTimeString(now, u.LastInterview)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Registered     %s", registrationLabel(u.RegistrationDate)))

	return styles.CardStyle.Render(b.String())
}

// registrationLabel keeps only the date part of the backend timestamp.
func registrationLabel(s *string) string {
	if s == nil || *s == "" {
		return "unknown"
	}
	if len(*s) >= 10 {
		return (*s)[:10]
	}
	return *s
}

func displayName(u models.UserRow) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
