package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nick-dorsch/ticklist/pkg/models"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Underline(true).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// FilterBar renders one tab per filter with the active one highlighted.
func FilterBar(active models.Filter) string {
	tabs := make([]string, 0, len(models.Filters))
	for i, f := range models.Filters {
		label := string(rune('1'+i)) + " " + f.Label()
		if f == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}
