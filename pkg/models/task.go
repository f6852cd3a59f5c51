package models

import "fmt"

type Filter string

const (
	FilterAll        Filter = "all"
	FilterCompleted  Filter = "completed"
	FilterIncomplete Filter = "incomplete"
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterCompleted, FilterIncomplete}

// ParseFilter converts user input into a Filter. The empty string means all.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCompleted, FilterIncomplete:
		return Filter(s), nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, completed or incomplete)", s)
}

func (f Filter) Valid() bool {
	return f == FilterAll || f == FilterCompleted || f == FilterIncomplete
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterIncomplete:
		return !t.Completed
	}
	return true
}

// Label is the title-cased name shown on filter tabs.
func (f Filter) Label() string {
	switch f {
	case FilterCompleted:
		return "Completed"
	case FilterIncomplete:
		return "Incomplete"
	}
	return "All"
}

// Task is a single to-do item. Field order matches the persisted JSON.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
