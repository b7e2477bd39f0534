package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mocklingo/admin-dashboard-tui/internal/ui/styles"
)

// maxScore is the top of the interview scoring scale.
const maxScore = 10.0

// ScoreBar renders an interview score as a gradient progress bar with
// label and numeric value.
type ScoreBar struct {
	progress progress.Model
	label    string
	score    float64
}

// NewScoreBar creates a new score bar with gradient colors.
func NewScoreBar() ScoreBar {
	p := progress.New(
		progress.WithScaledGradient("#ff6b6b", "#51cf66"),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return ScoreBar{progress: p}
}

// NewScoreBarWithWidth creates a score bar with a specific width.
func NewScoreBarWithWidth(width int) ScoreBar {
	b := NewScoreBar()
	b.progress.Width = width
	return b
}

// SetLabel sets the text shown before the bar.
func (b *ScoreBar) SetLabel(label string) {
	b.label = label
}

// SetScore sets the score to display, clamped to the 0-10 scale.
func (b *ScoreBar) SetScore(score float64) {
	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}
	b.score = score
}

// Score returns the current score.
func (b ScoreBar) Score() float64 {
	return b.score
}

// SetWidth resizes the underlying bar.
func (b *ScoreBar) SetWidth(width int) {
	if width < 10 {
		width = 10
	}
	b.progress.Width = width
}

// Update handles progress animation frames.
func (b ScoreBar) Update(msg tea.Msg) (ScoreBar, tea.Cmd) {
	model, cmd := b.progress.Update(msg)
	if p, ok := model.(progress.Model); ok {
		b.progress = p
	}
	return b, cmd
}

// View renders the bar with its label and score value.
func (b ScoreBar) View() string {
	bar := b.progress.ViewAs(b.score / maxScore)

	value := fmt.Sprintf("%.1f", b.score)
	valueStyle := scoreStyle(b.score)

	if b.label == "" {
		return fmt.Sprintf("%s %s", bar, valueStyle.Render(value))
	}

	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	return fmt.Sprintf("%s %s %s", labelStyle.Render(b.label), bar, valueStyle.Render(value))
}

func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 7:
		return styles.SuccessTextStyle
	case score >= 4:
		return styles.WarningTextStyle
	default:
		return styles.ErrorTextStyle
	}
}

// RenderStars renders a 1-5 star rating with color by value.
func RenderStars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}

	filled := ""
	for i := 0; i < rating; i++ {
		filled += "★"
	}
	empty := ""
	for i := rating; i < 5; i++ {
		empty += "☆"
	}

	return styles.GetRatingStyle(rating).Render(filled) + styles.HelpStyle.Render(empty)
}
