package tasklist

import (
	"reflect"
	"testing"
	"testing/quick"

	"github.com/nick-dorsch/ticklist/pkg/models"
)

func TestEncodeFieldOrder(t *testing.T) {
	got, err := Encode([]models.Task{{ID: 1, Text: "a", Completed: true}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got != `[{"id":1,"text":"a","completed":true}]` {
		t.Errorf("unexpected encoding %s", got)
	}

	empty, _ := Encode(nil)
	if empty != "[]" {
		t.Errorf("expected nil list to encode as [], got %s", empty)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []models.Task
		wantErr bool
	}{
		{"empty array", "[]", []models.Task{}, false},
		{"null", "null", nil, false},
		{"records", `[{"id":2,"text":"x","completed":false}]`, []models.Task{{ID: 2, Text: "x"}}, false},
		{"truncated", `[{"id":2`, nil, true},
		{"object", `{"id":2}`, nil, true},
		{"string", `"tasks"`, nil, true},
		{"wrong id type", `[{"id":"two","text":"x"}]`, []models.Task{{Text: "x"}}, false},
		{"numeric string id", `[{"id":"7","text":"x"}]`, []models.Task{{ID: 7, Text: "x"}}, false},
		{"fractional id", `[{"id":1.5,"text":"x"}]`, []models.Task{{Text: "x"}}, false},
		{"exponent id", `[{"id":1.7e12,"text":"x"}]`, []models.Task{{ID: 1700000000000, Text: "x"}}, false},
		{"wrong text type", `[{"id":1,"text":42,"completed":true}]`, []models.Task{{ID: 1, Completed: true}}, false},
		{"wrong completed type", `[{"id":1,"text":"keep me","completed":"no"}]`, []models.Task{{ID: 1, Text: "keep me"}}, false},
		{"non-object record", `[3,null,{"id":2,"text":"x"}]`, []models.Task{{}, {}, {ID: 2, Text: "x"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	roundTrip := func(tasks []models.Task) bool {
		encoded, err := Encode(tasks)
		if err != nil {
			return false
		}
		decoded, err := Decode(encoded)
		if err != nil {
			return false
		}
		if len(decoded) != len(tasks) {
			return false
		}
		for i := range tasks {
			if decoded[i] != tasks[i] {
				return false
			}
		}
		return true
	}

	if err := quick.Check(roundTrip, &quick.Config{MaxCount: 200}); err != nil {
		t.Error(err)
	}

	fixed := []models.Task{
		{ID: 1, Text: "Ünïcødé ✓", Completed: true},
		{ID: 2, Text: "日本語のタスク"},
		{ID: 3, Text: "emoji 🥛🐕"},
		{ID: 4, Text: "quotes \" and \\ backslashes\nnewline"},
	}
	if !roundTrip(fixed) {
		t.Errorf("round trip failed for %v", fixed)
	}
}
