package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func menuKey(m MenuModel, msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	model, cmd := m.Update(msg)
	return model.(MenuModel), cmd
}

func TestMenuNavigateAndSelect(t *testing.T) {
	m := NewMenuModel(ListSummary{Loaded: true, Completed: 1, Incomplete: 2})
	if m.cursor != 0 {
		t.Fatalf("expected cursor on open, got %d", m.cursor)
	}

	m, _ = menuKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m, _ = menuKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m, _ = menuKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if m.cursor != 1 {
		t.Errorf("expected cursor 1, got %d", m.cursor)
	}

	m, cmd := menuKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != "list" {
		t.Errorf("expected list, got %q", m.Selected())
	}
	if cmd == nil {
		t.Error("expected quit command after enter")
	}
}

func TestMenuCursorBounds(t *testing.T) {
	m := NewMenuModel(ListSummary{Loaded: true})

	m, _ = menuKey(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", m.cursor)
	}

	for i := 0; i < len(MenuEntries)+2; i++ {
		m, _ = menuKey(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(MenuEntries)-1 {
		t.Errorf("expected cursor on last entry, got %d", m.cursor)
	}
}

func TestMenuDigitShortcut(t *testing.T) {
	m := NewMenuModel(ListSummary{Loaded: true})

	m, _ = menuKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9")})
	if m.Selected() != "" {
		t.Errorf("expected out-of-range digit to be ignored, got %q", m.Selected())
	}

	m, cmd := menuKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	if m.Selected() != "status" || cmd == nil {
		t.Errorf("expected 3 to run status, got %q", m.Selected())
	}
}

func TestMenuQuit(t *testing.T) {
	m := NewMenuModel(ListSummary{Loaded: true})
	m, cmd := menuKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.quitting || cmd == nil {
		t.Error("expected q to quit")
	}
	if m.Selected() != "" || m.View() != "" {
		t.Error("expected no selection and an empty view after quitting")
	}
}

func TestMenuShowsCounts(t *testing.T) {
	view := NewMenuModel(ListSummary{Loaded: true, Completed: 2, Incomplete: 3}).View()
	if !strings.Contains(view, "5 tasks: 3 left to do, 2 completed") {
		t.Errorf("expected counts under the logo, got:\n%s", view)
	}
	if !strings.Contains(view, "edit tasks in the full-screen editor") {
		t.Errorf("expected entry descriptions in the view")
	}

	empty := NewMenuModel(ListSummary{Loaded: true}).View()
	if !strings.Contains(empty, "Your list is empty.") {
		t.Errorf("expected empty-list line, got:\n%s", empty)
	}
}

func TestMenuWithoutList(t *testing.T) {
	m := NewMenuModel(ListSummary{})
	if m.entries[m.cursor].Command != "init" {
		t.Errorf("expected cursor on init when no list exists, got %s", m.entries[m.cursor].Command)
	}
	if !strings.Contains(m.View(), "Run init") {
		t.Errorf("expected init hint in view")
	}
}
