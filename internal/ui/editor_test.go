package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nick-dorsch/ticklist/internal/logging"
	"github.com/nick-dorsch/ticklist/internal/store"
	"github.com/nick-dorsch/ticklist/internal/tasklist"
	"github.com/nick-dorsch/ticklist/pkg/models"
)

func newTestEditor(t *testing.T) (EditorModel, *tasklist.Controller) {
	t.Helper()

	database, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.Init(context.Background()); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}

	ctrl := tasklist.New(database, tasklist.WithLogger(logging.Discard()))
	ctrl.Initialize()

	m := NewEditorModel(ctrl)
	m.copyText = func(string) error { return nil }
	return m, ctrl
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m EditorModel, msgs ...tea.Msg) (EditorModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var model tea.Model
		model, cmd = m.Update(msg)
		m = model.(EditorModel)
	}
	return m, cmd
}

func addTasks(m EditorModel, texts ...string) EditorModel {
	if m.focus != focusInput {
		m, _ = press(m, runes("a"))
	}
	for _, text := range texts {
		m, _ = press(m, runes(text), tea.KeyMsg{Type: tea.KeyEnter})
	}
	return m
}

func TestEditorAddTask(t *testing.T) {
	m, ctrl := newTestEditor(t)

	m, _ = press(m, runes("  Buy milk "))
	if got := ctrl.State().Input; got != "  Buy milk " {
		t.Errorf("expected input to track typing, got %q", got)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	tasks := ctrl.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Text != "Buy milk" || tasks[0].Completed {
		t.Errorf("unexpected task %+v", tasks[0])
	}
	if m.input.Value() != "" {
		t.Errorf("expected input to be cleared, got %q", m.input.Value())
	}

	// Blank input adds nothing.
	m, _ = press(m, runes("   "), tea.KeyMsg{Type: tea.KeyEnter})
	if len(ctrl.Tasks()) != 1 {
		t.Errorf("expected blank input to be ignored, got %d tasks", len(ctrl.Tasks()))
	}
}

func TestEditorQuitOnlyFromList(t *testing.T) {
	m, _ := newTestEditor(t)

	m, _ = press(m, runes("q"))
	if m.quitting || m.input.Value() != "q" {
		t.Fatalf("expected q to be typed into the input")
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusList {
		t.Fatalf("expected tab to focus the list")
	}

	m, cmd := press(m, runes("q"))
	if !m.quitting {
		t.Error("expected quitting true after 'q'")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestEditorToggleDeleteAndFilter(t *testing.T) {
	m, ctrl := newTestEditor(t)
	m = addTasks(m, "Buy milk", "Walk dog")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEscape})

	if m.Cursor() != 1 {
		t.Fatalf("expected cursor on the newest task, got %d", m.Cursor())
	}

	m, _ = press(m, runes("k"), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	tasks := ctrl.Tasks()
	if !tasks[0].Completed || tasks[1].Completed {
		t.Fatalf("expected only the first task completed, got %+v", tasks)
	}

	m, _ = press(m, runes("2"))
	if ctrl.Filter() != models.FilterCompleted {
		t.Fatalf("expected completed filter, got %s", ctrl.Filter())
	}
	if visible := ctrl.VisibleTasks(); len(visible) != 1 || visible[0].Text != "Buy milk" {
		t.Errorf("expected only Buy milk visible, got %v", visible)
	}

	m, _ = press(m, runes("f"))
	if ctrl.Filter() != models.FilterIncomplete {
		t.Errorf("expected f to cycle to incomplete, got %s", ctrl.Filter())
	}

	m, _ = press(m, runes("d"))
	tasks = ctrl.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" {
		t.Errorf("expected Walk dog deleted, got %v", tasks)
	}
	if !strings.Contains(m.View(), "Nothing left to do") {
		t.Errorf("expected empty incomplete placeholder in view")
	}

	m, _ = press(m, runes("1"))
	if ctrl.Filter() != models.FilterAll {
		t.Errorf("expected all filter, got %s", ctrl.Filter())
	}

	// Toggling again restores the original state.
	m, _ = press(m, runes("x"))
	if ctrl.Tasks()[0].Completed {
		t.Errorf("expected task to be incomplete after second toggle")
	}
}

func TestEditorEditFlow(t *testing.T) {
	m, ctrl := newTestEditor(t)
	m = addTasks(m, "Buy milk")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = press(m, runes("e"))
	id, editing := ctrl.Editing()
	if !editing {
		t.Fatalf("expected edit mode")
	}
	if m.edit.Value() != "Buy milk" {
		t.Errorf("expected draft to start from task text, got %q", m.edit.Value())
	}

	// An empty draft keeps edit mode open.
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlU}, tea.KeyMsg{Type: tea.KeyEnter})
	if _, editing := ctrl.Editing(); !editing {
		t.Fatalf("expected edit mode to stay open for an empty draft")
	}
	if m.status == "" {
		t.Errorf("expected a status message for an empty draft")
	}

	m, _ = press(m, runes("  Buy oat milk "), tea.KeyMsg{Type: tea.KeyEnter})
	if _, editing := ctrl.Editing(); editing {
		t.Errorf("expected edit mode to close after save")
	}
	if got, _ := ctrl.Task(id); got.Text != "Buy oat milk" {
		t.Errorf("expected saved text, got %q", got.Text)
	}

	// Escape discards the draft.
	m, _ = press(m, runes("e"), runes(" later"), tea.KeyMsg{Type: tea.KeyEscape})
	if _, editing := ctrl.Editing(); editing {
		t.Errorf("expected edit mode to close after cancel")
	}
	if got, _ := ctrl.Task(id); got.Text != "Buy oat milk" {
		t.Errorf("expected text unchanged after cancel, got %q", got.Text)
	}
	if m.focus != focusList {
		t.Errorf("expected focus to stay on the list")
	}
}

func TestEditorCopy(t *testing.T) {
	m, _ := newTestEditor(t)
	m = addTasks(m, "Buy milk")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})

	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}

	m, cmd := press(m, runes("y"))
	if cmd == nil {
		t.Fatalf("expected copy command")
	}
	m, _ = press(m, cmd())
	if copied != "Buy milk" {
		t.Errorf("expected task text copied, got %q", copied)
	}
	if !strings.Contains(m.status, "Copied") {
		t.Errorf("expected copied status, got %q", m.status)
	}

	m.copyText = func(string) error { return errors.New("no clipboard") }
	m, cmd = press(m, runes("y"))
	m, _ = press(m, cmd())
	if !strings.Contains(m.status, "no clipboard") {
		t.Errorf("expected failure status, got %q", m.status)
	}
}

func TestEditorEmptyListKeys(t *testing.T) {
	m, ctrl := newTestEditor(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})

	m, cmd := press(m, runes("x"), runes("d"), runes("e"), runes("y"))
	if cmd != nil {
		t.Errorf("expected no command on an empty list")
	}
	if _, editing := ctrl.Editing(); editing {
		t.Errorf("expected no edit mode on an empty list")
	}
	if m.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", m.Cursor())
	}
}

func TestEditorView(t *testing.T) {
	m, _ := newTestEditor(t)
	m, _ = press(m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m = addTasks(m, "Buy milk", "Walk dog")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab}, runes(" "))

	view := m.View()
	for _, want := range []string{"To-Do List", "Buy milk", "Walk dog", "1 completed", "1 incomplete", "2 Completed"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}

	m, _ = press(m, runes("?"))
	if !m.help.ShowAll {
		t.Errorf("expected ? to toggle full help")
	}
}

func TestNextFilter(t *testing.T) {
	tests := []struct {
		in   models.Filter
		want models.Filter
	}{
		{models.FilterAll, models.FilterCompleted},
		{models.FilterCompleted, models.FilterIncomplete},
		{models.FilterIncomplete, models.FilterAll},
		{models.Filter("bogus"), models.FilterAll},
	}
	for _, tt := range tests {
		if got := nextFilter(tt.in); got != tt.want {
			t.Errorf("nextFilter(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
