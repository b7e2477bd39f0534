package roles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mocklingo/admin-dashboard-tui/internal/models"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/styles"
)

// View renders the roles tab.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderRoleList(),
		"  ",
		m.renderPermissionMatrix()))

	return styles.DocStyle.Render(b.String())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Roles")
	subtitle := styles.SubTitleStyle.Render("Role catalog is read-only")
	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", subtitle)
}

func (m *Model) renderRoleList() string {
	var b strings.Builder

	for i, role := range models.Roles {
		line := fmt.Sprintf("%-14s %s", role.Name, styles.HelpStyle.Render(formatUserCount(role.UserCount)))
		if i == m.selectedRole {
			b.WriteString(styles.SelectedListItemStyle.Render("▸ " + line))
		} else {
			b.WriteString(styles.ListItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	role := models.Roles[m.selectedRole]
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Width(32).Render(role.Description))

	return styles.CardStyle.Render(b.String())
}

// renderPermissionMatrix shows the selected role's grants, grouped by
// permission category.
func (m *Model) renderPermissionMatrix() string {
	role := models.Roles[m.selectedRole]

	var b strings.Builder
	b.WriteString(styles.CardTitleStyle.Render(fmt.Sprintf("Permissions · %s", role.Name)))
	b.WriteString("\n\n")

	lastCategory := ""
	for _, perm := range models.Permissions {
		if perm.Category != lastCategory {
			if lastCategory != "" {
				b.WriteString("\n")
			}
			b.WriteString(styles.TableHeaderStyle.Render(perm.Category))
			b.WriteString("\n")
			lastCategory = perm.Category
		}

		mark := styles.ErrorTextStyle.Render("✗")
		if models.HasPermission(role.ID, perm.ID) {
			mark = styles.SuccessTextStyle.Render("✓")
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", mark, perm.Name))
	}

	return styles.CardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func formatUserCount(count int) string {
	if count == 1 {
		return "1 user"
	}
	return fmt.Sprintf("%d users", count)
}
