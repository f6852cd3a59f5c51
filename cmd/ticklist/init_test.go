package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nick-dorsch/ticklist/internal/store"
)

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()

	out, _, err := runCLI(t, "init", tmpDir)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "initialized successfully") {
		t.Errorf("unexpected output: %s", out)
	}

	ticklistDir := filepath.Join(tmpDir, ".ticklist")
	if _, err := os.Stat(ticklistDir); os.IsNotExist(err) {
		t.Errorf(".ticklist directory was not created")
	}

	content, err := os.ReadFile(filepath.Join(ticklistDir, ".gitignore"))
	if err != nil {
		t.Errorf("failed to read .gitignore: %v", err)
	}
	if string(content) != gitignoreContent {
		t.Errorf(".gitignore content mismatch: got %q", string(content))
	}

	if _, err := os.Stat(filepath.Join(ticklistDir, "config.yaml")); err != nil {
		t.Errorf("config file was not created: %v", err)
	}

	if _, err := os.Stat(filepath.Join(ticklistDir, "ticklist.db")); os.IsNotExist(err) {
		t.Errorf("database file was not created")
	}
}

func TestInitKeepsExistingConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".ticklist", "config.yaml")

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	custom := "storage:\n  key: chores\n"
	if err := os.WriteFile(configPath, []byte(custom), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	out, _, err := runCLI(t, "init", tmpDir)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if strings.Contains(out, "Wrote default config") {
		t.Errorf("expected existing config to be kept: %s", out)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if string(data) != custom {
		t.Errorf("config was overwritten: %q", data)
	}
}

func TestInitWithExistingSnapshot(t *testing.T) {
	tmpDir := t.TempDir()
	ticklistDir := filepath.Join(tmpDir, ".ticklist")
	if err := os.MkdirAll(ticklistDir, 0755); err != nil {
		t.Fatalf("failed to create .ticklist dir: %v", err)
	}

	snapshot := `{"record_type":"meta","export_id":"x","entries":1}
{"record_type":"entry","key":"tasks","value":"[{\"id\":1,\"text\":\"From snapshot\",\"completed\":true}]"}
`
	snapshotPath := filepath.Join(ticklistDir, "snapshot.jsonl")
	if err := os.WriteFile(snapshotPath, []byte(snapshot), 0644); err != nil {
		t.Fatalf("failed to create snapshot: %v", err)
	}

	out, _, err := runCLI(t, "init", tmpDir)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "Imported 1 entries") {
		t.Errorf("expected import message: %s", out)
	}

	database, err := store.Open(filepath.Join(ticklistDir, "ticklist.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer database.Close()

	value, ok, err := database.Get(context.Background(), "tasks")
	if err != nil || !ok {
		t.Fatalf("expected imported tasks, ok=%v err=%v", ok, err)
	}
	if !strings.Contains(value, "From snapshot") {
		t.Errorf("unexpected imported value %q", value)
	}
}
