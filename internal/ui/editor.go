package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nick-dorsch/ticklist/internal/tasklist"
	"github.com/nick-dorsch/ticklist/internal/ui/components"
	"github.com/nick-dorsch/ticklist/pkg/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Padding(0, 1)

	focusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("12")).
				Padding(0, 1)

	blurredInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)

	cursorRowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	completedRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	statusLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(0, 1)
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// statusMsg is shown under the list until the next key press.
type statusMsg string

// EditorModel is the interactive task list editor.
type EditorModel struct {
	ctrl     *tasklist.Controller
	keys     KeyMap
	help     help.Model
	input    textinput.Model
	edit     textinput.Model
	list     *components.TaskList
	summary  *components.Summary
	focus    focus
	cursor   int
	status   string
	width    int
	height   int
	copyText func(string) error
	quitting bool
}

// NewEditorModel builds an editor over a controller that has already been
// initialised.
func NewEditorModel(ctrl *tasklist.Controller) EditorModel {
	input := textinput.New()
	input.Placeholder = "Add a new task"
	input.Prompt = "+ "
	input.SetValue(ctrl.State().Input)
	input.Focus()

	edit := textinput.New()
	edit.Prompt = "✎ "

	m := EditorModel{
		ctrl:     ctrl,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		edit:     edit,
		list:     components.NewTaskList(80, 10),
		summary:  components.NewSummary(80),
		focus:    focusInput,
		copyText: clipboard.WriteAll,
	}
	m.list.SetSize(80, 10)
	m.refresh()
	return m
}

func (m EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		m.status = ""

		var cmd tea.Cmd
		if _, editing := m.ctrl.Editing(); editing {
			cmd = m.updateEdit(msg)
		} else if m.focus == focusInput {
			cmd = m.updateInput(msg)
		} else {
			cmd = m.updateList(msg)
		}
		m.refresh()
		return m, cmd
	}

	return m, nil
}

func (m *EditorModel) updateEdit(msg tea.KeyMsg) tea.Cmd {
	id, _ := m.ctrl.Editing()

	switch {
	case key.Matches(msg, editKeys.Save):
		m.ctrl.SetDraft(m.edit.Value())
		if !m.ctrl.SaveEdit(id) {
			m.status = "Task text cannot be empty"
			return nil
		}
		m.edit.Blur()
		return nil

	case key.Matches(msg, editKeys.Cancel):
		m.ctrl.CancelEdit()
		m.edit.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	m.ctrl.SetDraft(m.edit.Value())
	return cmd
}

func (m *EditorModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, newTaskKeys.Save):
		if _, ok := m.ctrl.AddTask(m.input.Value()); ok {
			m.input.Reset()
			// New tasks are appended, so keep the end of the list in view.
			m.cursor = len(m.ctrl.VisibleTasks()) - 1
		}
		return nil

	case key.Matches(msg, newTaskKeys.Cancel), key.Matches(msg, newTaskKeys.Focus):
		m.setFocus(focusList)
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetInput(m.input.Value())
	return cmd
}

func (m *EditorModel) updateList(msg tea.KeyMsg) tea.Cmd {
	visible := m.ctrl.VisibleTasks()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(visible); ok {
			m.ctrl.ToggleCompletion(t.ID)
		}

	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(visible); ok {
			m.ctrl.BeginEdit(t.ID, t.Text)
			m.edit.SetValue(t.Text)
			m.edit.CursorEnd()
			return m.edit.Focus()
		}

	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(visible); ok {
			m.ctrl.DeleteTask(t.ID)
		}

	case key.Matches(msg, m.keys.Add), key.Matches(msg, m.keys.Focus):
		return m.setFocus(focusInput)

	case key.Matches(msg, m.keys.Copy):
		if t, ok := m.selected(visible); ok {
			return m.copy(t.Text)
		}

	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(models.FilterAll)
	case key.Matches(msg, m.keys.FilterDone):
		m.setFilter(models.FilterCompleted)
	case key.Matches(msg, m.keys.FilterTodo):
		m.setFilter(models.FilterIncomplete)
	case key.Matches(msg, m.keys.NextFilter):
		m.setFilter(nextFilter(m.ctrl.Filter()))

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
	}

	return nil
}

func (m *EditorModel) copy(text string) tea.Cmd {
	write := m.copyText
	return func() tea.Msg {
		if err := write(text); err != nil {
			return statusMsg("Failed to copy: " + err.Error())
		}
		return statusMsg("Copied: " + text)
	}
}

func (m *EditorModel) setFocus(f focus) tea.Cmd {
	m.focus = f
	if f == focusInput {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *EditorModel) setFilter(f models.Filter) {
	if f == m.ctrl.Filter() {
		return
	}
	if err := m.ctrl.SetFilter(f); err == nil {
		m.cursor = 0
	}
}

func nextFilter(f models.Filter) models.Filter {
	for i, candidate := range models.Filters {
		if candidate == f {
			return models.Filters[(i+1)%len(models.Filters)]
		}
	}
	return models.FilterAll
}

func (m *EditorModel) selected(visible []models.Task) (models.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(visible) {
		return models.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *EditorModel) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width = width
	m.height = height

	m.help.Width = width
	m.input.Width = width - 8
	m.edit.Width = width - 8
	m.summary.Width = width

	// Title, input box, filter bar, summary, status and help.
	chrome := 1 + 3 + 1 + 4 + 1 + lipgloss.Height(m.helpView())
	listHeight := height - chrome
	if listHeight < 1 {
		listHeight = 1
	}
	m.list.SetSize(width, listHeight)
	m.refresh()
}

// refresh clamps the cursor and re-renders the list and summary.
func (m *EditorModel) refresh() {
	visible := m.ctrl.VisibleTasks()
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	editingID, editing := m.ctrl.Editing()
	rows := make([]string, len(visible))
	for i, t := range visible {
		if editing && t.ID == editingID {
			rows[i] = m.edit.View()
			continue
		}
		rows[i] = m.renderRow(t, i == m.cursor && m.focus == focusList)
	}

	if len(visible) == 0 {
		m.list.SetEmptyText(emptyText(m.ctrl.Filter()))
	}
	m.list.SetRows(rows, m.cursor)

	completed, incomplete := m.ctrl.Counts()
	m.summary.Set(completed, incomplete)
}

func (m *EditorModel) renderRow(t models.Task, selected bool) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}

	text := t.Text
	if t.Completed {
		text = completedRowStyle.Render(text)
	}

	if selected {
		return cursorRowStyle.Render("> "+box) + " " + text
	}
	return "  " + box + " " + text
}

func emptyText(f models.Filter) string {
	switch f {
	case models.FilterCompleted:
		return "No completed tasks"
	case models.FilterIncomplete:
		return "Nothing left to do"
	}
	return "No tasks yet. Press a to add one."
}

func (m EditorModel) helpView() string {
	if _, editing := m.ctrl.Editing(); editing {
		return m.help.View(editKeys)
	}
	if m.focus == focusInput {
		return m.help.View(newTaskKeys)
	}
	return m.help.View(m.keys)
}

func (m EditorModel) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("To-Do List"))
	s.WriteString("\n")

	inputStyle := blurredInputStyle
	if m.focus == focusInput {
		inputStyle = focusedInputStyle
	}
	if m.width > 0 {
		inputStyle = inputStyle.Width(m.width - 2)
	}
	s.WriteString(inputStyle.Render(m.input.View()))
	s.WriteString("\n")

	s.WriteString(components.FilterBar(m.ctrl.Filter()))
	s.WriteString("\n")

	s.WriteString(m.list.View())
	s.WriteString("\n")

	s.WriteString(m.summary.View())
	s.WriteString("\n")

	s.WriteString(statusLineStyle.Render(m.status))
	s.WriteString("\n")

	s.WriteString(m.helpView())

	return s.String()
}

// Cursor is the index of the selected row among the visible tasks.
func (m EditorModel) Cursor() int {
	return m.cursor
}

// RunEditor runs the editor full screen until the user quits.
func RunEditor(ctrl *tasklist.Controller) error {
	p := tea.NewProgram(NewEditorModel(ctrl), tea.WithAltScreen())
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}
