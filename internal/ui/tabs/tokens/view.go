package tokens

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mocklingo/admin-dashboard-tui/internal/models"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/components"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/styles"
)

const (
	topConsumerRows  = 5
	recentRecordRows = 8
)

// View renders the tokens tab.
func (m *Model) View() string {
	records, daily, hourly := m.state.GetUsage()

	if m.state.Loading.Usage && len(records) == 0 && len(daily) == 0 {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	var b strings.Builder

	b.WriteString(m.renderTitle(daily))
	b.WriteString("\n\n")
	b.WriteString(m.renderDailyChart(daily))
	b.WriteString("\n\n")
	b.WriteString(m.renderHourly(hourly))
	b.WriteString("\n\n")
	b.WriteString(m.renderTopConsumers(records))
	b.WriteString("\n\n")
	b.WriteString(m.renderRecordTable(records))

	m.viewport.SetContent(b.String())
	if m.ready {
		return styles.DocStyle.Render(m.viewport.View())
	}
	return styles.DocStyle.Render(b.String())
}

func (m *Model) renderTitle(daily []models.DailyBucket) string {
	title := styles.TitleStyle.Render("Token Usage")

	var total int64
	var cost float64
	for _, d := range daily {
		total += d.Tokens
		cost += d.Cost
	}
	subtitle := styles.SubTitleStyle.Render(
		fmt.Sprintf("%s tokens · $%.2f · showing %s", formatTokens(total), cost, m.mode))

	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", subtitle)
}

func (m *Model) renderDailyChart(daily []models.DailyBucket) string {
	header := styles.CardTitleStyle.Render("Daily usage")

	if len(daily) == 0 {
		return header + "\n" + styles.HelpStyle.Render("No usage data yet")
	}

	tokens := make([]float64, len(daily))
	costs := make([]float64, len(daily))
	for i, d := range daily {
		tokens[i] = float64(d.Tokens)
		costs[i] = d.Cost
	}

	width := max(m.width-12, 40)
	caption := fmt.Sprintf("%s → %s", daily[0].Date, daily[len(daily)-1].Date)

	var chart string
	switch m.mode {
	case chartTokens:
		chart = components.RenderLineChart(tokens, width, 10, caption)
	case chartCost:
		chart = components.RenderLineChart(costs, width, 10, caption)
	case chartBoth:
		chart = components.RenderDualLineChart(tokens, costs, width, 10, caption)
	}

	return header + "\n" + chart
}

func (m *Model) renderHourly(hourly []models.HourlyBucket) string {
	header := styles.CardTitleStyle.Render("Hourly pattern")

	if len(hourly) == 0 {
		return header + "\n" + styles.HelpStyle.Render("No hourly data yet")
	}

	// Heatmap expects a 24-slot hour-of-day series.
	slots := make([]float64, 24)
	for _, h := range hourly {
		var hour int
		if _, err := fmt.Sscanf(h.Hour, "%d:", &hour); err != nil || hour < 0 || hour > 23 {
			continue
		}
		slots[hour] += float64(h.Tokens)
	}

	return header + "\n" + components.RenderHourlyHeatmap(slots)
}

// renderTopConsumers aggregates records per user and lists the heaviest.
func (m *Model) renderTopConsumers(records []models.UsageRecord) string {
	header := styles.CardTitleStyle.Render("Top consumers")

	if len(records) == 0 {
		return header + "\n" + styles.HelpStyle.Render("No usage records yet")
	}

	type consumer struct {
		name   string
		tokens int64
	}

	byUser := make(map[string]*consumer)
	order := make([]string, 0)
	for _, r := range records {
		name := r.UserName
		if name == "" {
			name = r.UserEmail
		}
		if name == "" {
			name = fmt.Sprintf("user %d", r.UserID)
		}
		c, ok := byUser[name]
		if !ok {
			c = &consumer{name: name}
			byUser[name] = c
			order = append(order, name)
		}
		c.tokens += r.TotalTokens()
	}

	consumers := make([]*consumer, 0, len(byUser))
	for _, name := range order {
		consumers = append(consumers, byUser[name])
	}
	sort.SliceStable(consumers, func(i, j int) bool {
		return consumers[i].tokens > consumers[j].tokens
	})

	if len(consumers) > topConsumerRows {
		consumers = consumers[:topConsumerRows]
	}

	var maxTokens int64
	for _, c := range consumers {
		if c.tokens > maxTokens {
			maxTokens = c.tokens
		}
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for i, c := range consumers {
		bar := usageBar(c.tokens, maxTokens, 20)
		b.WriteString(fmt.Sprintf("%d. %-24s %s %s\n",
			i+1,
			truncate(c.name, 24),
			bar,
			styles.InfoTextStyle.Render(formatTokens(c.tokens))))
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderRecordTable lists the most recent usage records with their
// input/output token split.
func (m *Model) renderRecordTable(records []models.UsageRecord) string {
	header := styles.CardTitleStyle.Render("Recent activity")

	if len(records) == 0 {
		return header + "\n" + styles.HelpStyle.Render("No usage records yet")
	}

	sorted := make([]models.UsageRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	if len(sorted) > recentRecordRows {
		sorted = sorted[:recentRecordRows]
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(styles.TableHeaderStyle.Render(
		fmt.Sprintf("%-12s %-24s %10s %10s %10s", "Date", "User", "Input", "Output", "Total")))
	b.WriteString("\n")

	for _, r := range sorted {
		b.WriteString(styles.TableCellStyle.Render(
			fmt.Sprintf("%-12s %-24s %10s %10s %10s",
				recordDate(r.CreatedAt),
				truncate(recordUser(r), 24),
				formatTokens(r.TotalInputTokens),
				formatTokens(r.TotalOutputTokens),
				formatTokens(r.TotalTokens()))))
		b.WriteString("\n")
	}

	if extra := len(records) - len(sorted); extra > 0 {
		b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("… %d more", extra)))
	}

	return strings.TrimRight(b.String(), "\n")
}

func recordUser(r models.UsageRecord) string {
	if r.UserName != "" {
		return r.UserName
	}
	if r.UserEmail != "" {
		return r.UserEmail
	}
	return fmt.Sprintf("user %d", r.UserID)
}

func recordDate(createdAt string) string {
	if len(createdAt) >= 10 {
		return createdAt[:10]
	}
	if createdAt == "" {
		return "unknown"
	}
	return createdAt
}

func usageBar(value, max int64, width int) string {
	if max <= 0 {
		return strings.Repeat("░", width)
	}
	filled := int(value * int64(width) / max)
	if filled > width {
		filled = width
	}
	return styles.SuccessTextStyle.Render(strings.Repeat("█", filled)) +
		styles.HelpStyle.Render(strings.Repeat("░", width-filled))
}

func formatTokens(tokens int64) string {
	switch {
	case tokens >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(tokens)/1_000_000)
	case tokens >= 1_000:
		return fmt.Sprintf("%.1fK", float64(tokens)/1_000)
	default:
		return fmt.Sprintf("%d", tokens)
	}
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
