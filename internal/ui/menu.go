package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	logoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	countsStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingLeft(2)
	entryStyle      = lipgloss.NewStyle().PaddingLeft(2)
	activeStyle     = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("12")).Bold(true)
	descStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	menuFooterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).PaddingLeft(2)
)

const logo = `
  _   _      _    _ _     _   
 | |_(_) ___| | _| (_)___| |_ 
 | __| |/ __| |/ / | / __| __|
 | |_| | (__|   <| | \__ \ |_ 
  \__|_|\___|_|\_\_|_|___/\__|
`

// MenuEntry is one launcher line: the subcommand it runs and what it does.
type MenuEntry struct {
	Command     string
	Description string
}

// MenuEntries are listed in display order; each names a subcommand.
var MenuEntries = []MenuEntry{
	{"open", "edit tasks in the full-screen editor"},
	{"list", "print every task"},
	{"status", "show totals and stored keys"},
	{"export", "write tasks as json to stdout"},
	{"web", "serve the JSON API"},
	{"init", "create .ticklist/ here"},
}

// ListSummary is what the launcher knows about the task list. Loaded is false
// when no list could be opened, typically before init.
type ListSummary struct {
	Loaded     bool
	Completed  int
	Incomplete int
}

type menuKeys struct {
	up, down, pick, quit key.Binding
}

var launcherKeys = menuKeys{
	up:   key.NewBinding(key.WithKeys("up", "k")),
	down: key.NewBinding(key.WithKeys("down", "j")),
	pick: key.NewBinding(key.WithKeys("enter")),
	quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// MenuModel is the launcher shown when ticklist runs without a subcommand.
type MenuModel struct {
	entries  []MenuEntry
	summary  ListSummary
	cursor   int
	selected string
	quitting bool
}

func NewMenuModel(summary ListSummary) MenuModel {
	m := MenuModel{entries: MenuEntries, summary: summary}
	if !summary.Loaded {
		// Nothing to open yet; start on init.
		m.cursor = len(m.entries) - 1
	}
	return m
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, launcherKeys.quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, launcherKeys.up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(keyMsg, launcherKeys.down):
		m.cursor = min(m.cursor+1, len(m.entries)-1)
	case key.Matches(keyMsg, launcherKeys.pick):
		m.selected = m.entries[m.cursor].Command
		return m, tea.Quit
	default:
		// Digits jump straight to an entry.
		if s := keyMsg.String(); len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(m.entries) {
			m.cursor = int(s[0] - '1')
			m.selected = m.entries[m.cursor].Command
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) countsLine() string {
	if !m.summary.Loaded {
		return "No task list yet. Run init to create one."
	}
	total := m.summary.Completed + m.summary.Incomplete
	if total == 0 {
		return "Your list is empty."
	}
	return fmt.Sprintf("%d tasks: %d left to do, %d completed", total, m.summary.Incomplete, m.summary.Completed)
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	width := 0
	for _, e := range m.entries {
		width = max(width, len(e.Command))
	}

	var s strings.Builder
	s.WriteString(logoStyle.Render(logo))
	s.WriteString("\n")
	s.WriteString(countsStyle.Render(m.countsLine()))
	s.WriteString("\n\n")

	for i, e := range m.entries {
		label := fmt.Sprintf("%d %-*s", i+1, width, e.Command)
		if i == m.cursor {
			s.WriteString(activeStyle.Render("> " + label))
		} else {
			s.WriteString(entryStyle.Render("  " + label))
		}
		s.WriteString("  " + descStyle.Render(e.Description))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(menuFooterStyle.Render(fmt.Sprintf("j/k move · enter or 1-%d run · q quit", len(m.entries))))
	s.WriteString("\n")
	return s.String()
}

// Selected is the chosen subcommand, or "" if the user quit.
func (m MenuModel) Selected() string {
	return m.selected
}

func RunMenu(summary ListSummary) (string, error) {
	final, err := tea.NewProgram(NewMenuModel(summary)).Run()
	if err != nil {
		return "", fmt.Errorf("menu: %w", err)
	}
	return final.(MenuModel).Selected(), nil
}
