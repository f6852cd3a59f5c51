package tasklist

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nick-dorsch/ticklist/pkg/models"
)

const DefaultKey = "tasks"

var (
	ErrInvalidFilter = errors.New("invalid filter")
	ErrTaskNotFound  = errors.New("task not found")
	ErrEmptyText     = errors.New("task text must not be empty")
)

// Storage is the synchronous key-value store the task list lives in.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// State is everything the editor shows. Only Tasks is persisted.
type State struct {
	Tasks     []models.Task
	Filter    models.Filter
	Input     string
	EditingID *int64
	Draft     string
}

// Controller owns the task list and the transient editing state. It is not
// safe for concurrent use; see Guarded.
type Controller struct {
	storage Storage
	key     string
	logger  *log.Logger
	ids     *IDGenerator
	state   State
}

type Option func(*Controller)

// WithKey overrides the storage key the list is read from and written to.
func WithKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.key = key
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the time source used for task ids.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.ids = NewIDGenerator(now)
	}
}

func New(storage Storage, opts ...Option) *Controller {
	c := &Controller{
		storage: storage,
		key:     DefaultKey,
		logger:  log.Default(),
		ids:     NewIDGenerator(nil),
		state:   State{Filter: models.FilterAll},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Key() string {
	return c.key
}

// Initialize loads the persisted list. A missing entry or one that fails to
// parse leaves the list empty; a malformed value is copied to "<key>.corrupt"
// before anything can overwrite it.
func (c *Controller) Initialize() {
	ctx := context.Background()
	c.state.Tasks = nil

	value, ok, err := c.storage.Get(ctx, c.key)
	if err != nil {
		c.logger.Warn("failed to read task list, starting empty", "key", c.key, "err", err)
		return
	}
	if !ok {
		c.logger.Debug("no stored task list", "key", c.key)
		return
	}

	tasks, err := Decode(value)
	if err != nil {
		c.logger.Warn("stored task list is malformed, starting empty", "key", c.key, "err", err)
		backup := c.key + ".corrupt"
		if err := c.storage.Set(ctx, backup, value); err != nil {
			c.logger.Warn("failed to preserve malformed task list", "key", backup, "err", err)
		}
		return
	}

	for _, t := range tasks {
		c.ids.Observe(t.ID)
	}
	c.state.Tasks = tasks
	c.logger.Debug("loaded task list", "key", c.key, "tasks", len(tasks))
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	s := c.state
	s.Tasks = c.Tasks()
	if c.state.EditingID != nil {
		id := *c.state.EditingID
		s.EditingID = &id
	}
	return s
}

// Tasks returns a copy of the full task list in insertion order.
func (c *Controller) Tasks() []models.Task {
	out := make([]models.Task, len(c.state.Tasks))
	copy(out, c.state.Tasks)
	return out
}

// Task looks up a task by id.
func (c *Controller) Task(id int64) (models.Task, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.state.Tasks[i], true
	}
	return models.Task{}, false
}

func (c *Controller) SetInput(s string) {
	c.state.Input = s
}

// AddTask appends a new incomplete task with the trimmed text. Blank text is
// ignored and reported by the second return value.
func (c *Controller) AddTask(raw string) (models.Task, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return models.Task{}, false
	}

	t := models.Task{ID: c.ids.Next(), Text: text}
	c.state.Tasks = append(c.state.Tasks, t)
	c.state.Input = ""
	c.persist()
	return t, true
}

func (c *Controller) ToggleCompletion(id int64) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.state.Tasks[i].Completed = !c.state.Tasks[i].Completed
	c.persist()
	return true
}

func (c *Controller) DeleteTask(id int64) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	tasks := make([]models.Task, 0, len(c.state.Tasks)-1)
	tasks = append(tasks, c.state.Tasks[:i]...)
	tasks = append(tasks, c.state.Tasks[i+1:]...)
	c.state.Tasks = tasks
	c.persist()
	return true
}

// BeginEdit puts id into edit mode with currentText as the draft. Any draft
// for another task is dropped.
func (c *Controller) BeginEdit(id int64, currentText string) {
	c.state.EditingID = &id
	c.state.Draft = currentText
}

func (c *Controller) SetDraft(s string) {
	c.state.Draft = s
}

// Editing returns the id of the task in edit mode.
func (c *Controller) Editing() (int64, bool) {
	if c.state.EditingID == nil {
		return 0, false
	}
	return *c.state.EditingID, true
}

// SaveEdit writes the trimmed draft into task id and leaves edit mode. A
// blank draft is ignored and edit mode stays open.
func (c *Controller) SaveEdit(id int64) bool {
	text := strings.TrimSpace(c.state.Draft)
	if text == "" {
		return false
	}

	if i := c.indexOf(id); i >= 0 {
		c.state.Tasks[i].Text = text
		c.persist()
	}
	c.CancelEdit()
	return true
}

func (c *Controller) CancelEdit() {
	c.state.EditingID = nil
	c.state.Draft = ""
}

func (c *Controller) SetFilter(f models.Filter) error {
	if !f.Valid() {
		return ErrInvalidFilter
	}
	c.state.Filter = f
	return nil
}

func (c *Controller) Filter() models.Filter {
	return c.state.Filter
}

// VisibleTasks returns the tasks passing the current filter.
func (c *Controller) VisibleTasks() []models.Task {
	return FilterTasks(c.state.Tasks, c.state.Filter)
}

// FilterTasks returns the subset of tasks matching f, in order.
func FilterTasks(tasks []models.Task, f models.Filter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Counts returns the number of completed and incomplete tasks.
func (c *Controller) Counts() (completed, incomplete int) {
	for _, t := range c.state.Tasks {
		if t.Completed {
			completed++
		} else {
			incomplete++
		}
	}
	return completed, incomplete
}

func (c *Controller) indexOf(id int64) int {
	for i, t := range c.state.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the whole list. Failures are logged and otherwise ignored.
func (c *Controller) persist() {
	value, err := Encode(c.state.Tasks)
	if err != nil {
		c.logger.Warn("failed to encode task list", "err", err)
		return
	}
	if err := c.storage.Set(context.Background(), c.key, value); err != nil {
		c.logger.Warn("failed to persist task list", "key", c.key, "err", err)
	}
}
