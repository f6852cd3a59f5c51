package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAutoSnapshot(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	snapshotPath := filepath.Join(t.TempDir(), "auto-snapshot.jsonl")

	var exportErr error
	db.EnableAutoSnapshot(snapshotPath, func(err error) { exportErr = err })

	if err := db.Set(ctx, "tasks", `[{"id":7,"text":"Walk dog","completed":false}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if exportErr != nil {
		t.Fatalf("Auto snapshot failed: %v", exportErr)
	}

	content, err := os.ReadFile(snapshotPath)
	if err != nil {
		t.Fatalf("Snapshot file was not created after Set: %v", err)
	}
	if !strings.Contains(string(content), "Walk dog") {
		t.Errorf("Snapshot does not contain the written value")
	}

	if err := db.Set(ctx, "tasks", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	content, _ = os.ReadFile(snapshotPath)
	if strings.Contains(string(content), "Walk dog") {
		t.Errorf("Snapshot was not refreshed after the second write")
	}
}

func TestAutoSnapshotReportsErrors(t *testing.T) {
	db := openTestDB(t)

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	var exportErr error
	db.EnableAutoSnapshot(filepath.Join(blocker, "snapshot.jsonl"), func(err error) { exportErr = err })

	if err := db.Set(context.Background(), "tasks", "[]"); err != nil {
		t.Fatalf("Set should succeed even if the snapshot fails: %v", err)
	}
	if exportErr == nil {
		t.Errorf("Expected snapshot error to be reported")
	}
}
