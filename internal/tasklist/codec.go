package tasklist

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/nick-dorsch/ticklist/pkg/models"
)

// Encode serializes tasks as a JSON array. An empty list encodes as "[]".
func Encode(tasks []models.Task) (string, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("failed to encode tasks: %w", err)
	}
	return string(data), nil
}

// storedTask holds the raw fields of one persisted record so each can be
// coerced on its own.
type storedTask struct {
	ID        json.RawMessage `json:"id"`
	Text      json.RawMessage `json:"text"`
	Completed json.RawMessage `json:"completed"`
}

// Decode parses a stored task list. Only a value that is not a JSON array
// is an error. Records are not validated: a missing field, or one of the
// wrong type, comes back as its zero value.
func Decode(value string) ([]models.Task, error) {
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	if records == nil {
		return nil, nil
	}

	tasks := make([]models.Task, len(records))
	for i, raw := range records {
		var rec storedTask
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		tasks[i] = models.Task{
			ID:        decodeID(rec.ID),
			Text:      decodeText(rec.Text),
			Completed: decodeCompleted(rec.Completed),
		}
	}
	return tasks, nil
}

func decodeID(raw json.RawMessage) int64 {
	var n json.Number
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return 0
	}
	if id, err := n.Int64(); err == nil {
		return id
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

func decodeText(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func decodeCompleted(raw json.RawMessage) bool {
	var b bool
	if len(raw) == 0 || json.Unmarshal(raw, &b) != nil {
		return false
	}
	return b
}
