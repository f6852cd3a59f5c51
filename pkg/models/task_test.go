package models

import "testing"

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{"", FilterAll, false},
		{"all", FilterAll, false},
		{"completed", FilterCompleted, false},
		{"incomplete", FilterIncomplete, false},
		{"done", "", true},
		{"ALL", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilterMatch(t *testing.T) {
	done := Task{ID: 1, Text: "a", Completed: true}
	open := Task{ID: 2, Text: "b"}

	if !FilterAll.Match(done) || !FilterAll.Match(open) {
		t.Errorf("expected all to match every task")
	}
	if !FilterCompleted.Match(done) || FilterCompleted.Match(open) {
		t.Errorf("completed filter mismatch")
	}
	if FilterIncomplete.Match(done) || !FilterIncomplete.Match(open) {
		t.Errorf("incomplete filter mismatch")
	}
	if Filter("bogus").Valid() {
		t.Errorf("expected bogus filter to be invalid")
	}
}
