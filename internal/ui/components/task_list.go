package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	emptyListStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	scrollbarTrackStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("236"))

	scrollbarHandleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))
)

// TaskList renders pre-styled task rows in a scrolling viewport with a
// scrollbar on the right once the rows overflow.
type TaskList struct {
	viewport viewport.Model
	rows     []string
	cursor   int
	empty    string
	ready    bool
	width    int
	height   int
}

// NewTaskList creates a new TaskList.
func NewTaskList(width, height int) *TaskList {
	return &TaskList{
		viewport: viewport.New(width, height),
		empty:    "No tasks",
		width:    width,
		height:   height,
	}
}

func (l *TaskList) SetSize(width, height int) {
	l.width = width
	l.height = height
	vpWidth := width
	if width > 0 {
		vpWidth = width - 1
	}
	if !l.ready {
		l.viewport = viewport.New(vpWidth, height)
		l.ready = true
	} else {
		l.viewport.Width = vpWidth
		l.viewport.Height = height
	}
	l.updateContent()
}

// SetRows replaces the rows and scrolls so that the row at cursor is
// visible. Rows may span several lines.
func (l *TaskList) SetRows(rows []string, cursor int) {
	l.rows = rows
	l.cursor = cursor
	l.updateContent()
}

// SetEmptyText sets the placeholder shown when there are no rows.
func (l *TaskList) SetEmptyText(s string) {
	l.empty = s
	l.updateContent()
}

func (l *TaskList) updateContent() {
	width := l.viewport.Width

	if len(l.rows) == 0 {
		l.viewport.SetContent(emptyListStyle.Render(l.empty))
		l.viewport.GotoTop()
		return
	}

	var sb strings.Builder
	cursorTop, cursorBottom := 0, 0
	line := 0
	for i, row := range l.rows {
		rendered := rowStyle.Render(row)
		if width > 0 {
			rendered = rowStyle.Width(width).Render(row)
		}
		n := strings.Count(rendered, "\n") + 1
		if i == l.cursor {
			cursorTop, cursorBottom = line, line+n-1
		}
		line += n

		sb.WriteString(rendered)
		if i < len(l.rows)-1 {
			sb.WriteString("\n")
		}
	}
	l.viewport.SetContent(sb.String())

	if l.viewport.Height <= 0 {
		return
	}
	if cursorTop < l.viewport.YOffset {
		l.viewport.SetYOffset(cursorTop)
	} else if cursorBottom >= l.viewport.YOffset+l.viewport.Height {
		l.viewport.SetYOffset(cursorBottom - l.viewport.Height + 1)
	}
}

func (l *TaskList) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return cmd
}

func (l *TaskList) View() string {
	if !l.ready {
		return ""
	}

	if l.viewport.TotalLineCount() <= l.viewport.Height {
		return l.viewport.View()
	}

	h := l.viewport.Height
	percent := l.viewport.ScrollPercent()

	handlePos := int(float64(h-1) * percent)

	var sb strings.Builder
	for i := 0; i < h; i++ {
		if i == handlePos {
			sb.WriteString(scrollbarHandleStyle.Render("┃"))
		} else {
			sb.WriteString(scrollbarTrackStyle.Render("│"))
		}
		if i < h-1 {
			sb.WriteString("\n")
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, l.viewport.View(), sb.String())
}

func (l *TaskList) Height() int {
	return l.viewport.Height
}

// YOffset is the index of the first visible line.
func (l *TaskList) YOffset() int {
	return l.viewport.YOffset
}
