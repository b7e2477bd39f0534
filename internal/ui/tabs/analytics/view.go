package analytics

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mocklingo/admin-dashboard-tui/internal/models"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/components"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/styles"
)

// View renders the analytics tab.
func (m *Model) View() string {
	weekly := m.state.GetWeekly()
	usages, shares := m.state.GetServiceUsage()

	if m.state.Loading.Trends && len(weekly) == 0 && len(usages) == 0 {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	var b strings.Builder

	b.WriteString(m.renderTitle(weekly))
	b.WriteString("\n\n")
	b.WriteString(m.renderWeekly(weekly))
	b.WriteString("\n\n")
	b.WriteString(m.renderServiceMix(usages, shares))

	m.viewport.SetContent(b.String())
	if m.ready {
		return styles.DocStyle.Render(m.viewport.View())
	}
	return styles.DocStyle.Render(b.String())
}

func (m *Model) renderTitle(weekly []models.WeeklyBucket) string {
	title := styles.TitleStyle.Render("Analytics")

	var total int
	for _, w := range weekly {
		total += w.Users
	}
	subtitle := styles.SubTitleStyle.Render(
		fmt.Sprintf("%d registrations across %d weeks", total, len(weekly)))

	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", subtitle)
}

func (m *Model) renderWeekly(weekly []models.WeeklyBucket) string {
	header := styles.CardTitleStyle.Render("Weekly registrations")

	if len(weekly) == 0 {
		return header + "\n" + styles.HelpStyle.Render("No registration data yet")
	}

	values := make([]float64, len(weekly))
	labels := make([]string, len(weekly))
	for i, w := range weekly {
		values[i] = float64(w.Users)
		labels[i] = w.Name
	}

	width := max(m.width-12, 40)
	return header + "\n" + components.RenderBarChart(values, labels, width)
}

func (m *Model) renderServiceMix(usages []models.ServiceUsage, shares []models.PercentageSlice) string {
	header := styles.CardTitleStyle.Render("Interview service mix")

	if len(shares) == 0 {
		return header + "\n" + styles.HelpStyle.Render("No service usage yet")
	}

	var total int64
	for _, u := range usages {
		total += u.Count
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("%d interviews total", total)))
	b.WriteString("\n\n")
	b.WriteString(components.RenderShareLegend(shares, max(m.width-12, 40)))

	return b.String()
}
