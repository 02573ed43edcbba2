package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/reformcalc/internal/tui/tuistyles"
)

// TemplateItem is one what-if template in a checklist.
type TemplateItem struct {
	Name        string
	Description string
	Checked     bool
}

// TemplateList renders templates as a checklist with a cursor.
func TemplateList(items []TemplateItem, cursor int) string {
	if len(items) == 0 {
		return tuistyles.InfoStyle.Render("No templates available")
	}

	nameWidth := 0
	for _, item := range items {
		if len(item.Name) > nameWidth {
			nameWidth = len(item.Name)
		}
	}

	lines := make([]string, len(items))
	for i, item := range items {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if i == cursor {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		box := "[ ]"
		if item.Checked {
			box = "[x]"
		}
		name := lipgloss.NewStyle().Width(nameWidth).Render(item.Name)
		lines[i] = style.Render(prefix+box+" "+name) + "  " + tuistyles.HelpDescStyle.Render(item.Description)
	}
	return strings.Join(lines, "\n")
}
