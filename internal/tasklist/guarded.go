package tasklist

import (
	"fmt"
	"strings"
	"sync"

	"github.com/nick-dorsch/ticklist/pkg/models"
)

// Guarded serialises access to a Controller for surfaces that serve
// concurrent callers, and reports no-ops as errors.
type Guarded struct {
	mu sync.Mutex
	c  *Controller
}

func NewGuarded(c *Controller) *Guarded {
	return &Guarded{c: c}
}

// Do runs fn with exclusive access to the controller.
func (g *Guarded) Do(fn func(c *Controller) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.c)
}

func (g *Guarded) Add(text string) (models.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.c.AddTask(text)
	if !ok {
		return models.Task{}, ErrEmptyText
	}
	return t, nil
}

func (g *Guarded) Toggle(id int64) (models.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.c.ToggleCompletion(id) {
		return models.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	t, _ := g.c.Task(id)
	return t, nil
}

// Edit runs the full edit flow for id with text as the draft.
func (g *Guarded) Edit(id int64, text string) (models.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, ok := g.c.Task(id)
	if !ok {
		return models.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	if strings.TrimSpace(text) == "" {
		return models.Task{}, ErrEmptyText
	}

	g.c.BeginEdit(id, current.Text)
	g.c.SetDraft(text)
	g.c.SaveEdit(id)

	t, _ := g.c.Task(id)
	return t, nil
}

func (g *Guarded) Delete(id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.c.DeleteTask(id) {
		return fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	return nil
}

// List returns the tasks matching f without changing the controller filter.
func (g *Guarded) List(f models.Filter) ([]models.Task, error) {
	if !f.Valid() {
		return nil, ErrInvalidFilter
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return FilterTasks(g.c.state.Tasks, f), nil
}

type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Incomplete int `json:"incomplete"`
}

func (g *Guarded) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()

	done, open := g.c.Counts()
	return Stats{Total: done + open, Completed: done, Incomplete: open}
}
