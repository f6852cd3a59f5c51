package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	completedBoxStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("42")).
				Padding(0, 1)

	incompleteBoxStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")).
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("214")).
				Padding(0, 1)

	summaryHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Padding(0, 1)
)

// Summary shows how many tasks are completed and how many remain.
type Summary struct {
	Completed  int
	Incomplete int
	Width      int
	Title      string
}

func NewSummary(width int) *Summary {
	return &Summary{
		Width: width,
		Title: "Summary",
	}
}

func (s *Summary) Set(completed, incomplete int) {
	s.Completed = completed
	s.Incomplete = incomplete
}

func (s *Summary) View() string {
	boxWidth := s.Width / 2
	if boxWidth < 0 {
		boxWidth = 0
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		s.renderBox("✓", fmt.Sprintf("%d completed", s.Completed), completedBoxStyle, boxWidth),
		s.renderBox("○", fmt.Sprintf("%d incomplete", s.Incomplete), incompleteBoxStyle, s.Width-boxWidth),
	)

	if s.Title == "" {
		return content
	}
	return summaryHeaderStyle.Render(s.Title) + "\n" + content
}

func (s *Summary) renderBox(icon, label string, style lipgloss.Style, width int) string {
	// Border takes two columns.
	inner := width - 2
	if inner < 0 {
		inner = 0
	}
	return style.Width(inner).Render(icon + " " + label)
}
