package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	recordTypeMeta  = "meta"
	recordTypeEntry = "entry"
)

type snapshotMeta struct {
	RecordType string    `json:"record_type"`
	ExportID   string    `json:"export_id"`
	ExportedAt time.Time `json:"exported_at"`
	Driver     string    `json:"driver"`
	Entries    int       `json:"entries"`
}

type snapshotEntry struct {
	RecordType string `json:"record_type"`
	Key        string `json:"key"`
	Value      string `json:"value"`
}

// EnableAutoSnapshot sets up a hook that automatically exports a snapshot
// to the given path after every successful write operation. Failures are
// passed to onErr when it is non-nil.
func (db *DB) EnableAutoSnapshot(path string, onErr func(error)) {
	db.SetOnChange(func(ctx context.Context) {
		if err := db.ExportSnapshot(ctx, path); err != nil && onErr != nil {
			onErr(err)
		}
	})
}

// ExportSnapshot writes every entry to the given path as JSONL, atomically
// using a temporary file. The first line is a meta record.
func (db *DB) ExportSnapshot(ctx context.Context, path string) error {
	entries, err := db.entries(ctx)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, "snapshot-*.jsonl")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempFile.Name())
		}
	}()

	enc := json.NewEncoder(tempFile)
	meta := snapshotMeta{
		RecordType: recordTypeMeta,
		ExportID:   uuid.New().String(),
		ExportedAt: time.Now().UTC(),
		Driver:     db.driver,
		Entries:    len(entries),
	}
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("failed to write snapshot meta: %w", err)
	}
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("failed to write snapshot entry %s: %w", e.Key, err)
		}
	}

	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	filename := tempFile.Name()
	tempFile = nil // Prevent defer from removing it

	if err := os.Rename(filename, path); err != nil {
		os.Remove(filename)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

func (db *DB) entries(ctx context.Context) ([]snapshotEntry, error) {
	rows, err := db.QueryContext(ctx, `SELECT entry_key, entry_value FROM kv_entries ORDER BY entry_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot entries: %w", err)
	}
	defer rows.Close()

	var entries []snapshotEntry
	for rows.Next() {
		e := snapshotEntry{RecordType: recordTypeEntry}
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return entries, nil
}

// ImportSnapshot reads a JSONL snapshot and upserts its entries in a single
// transaction. Keys absent from the snapshot are left untouched.
func (db *DB) ImportSnapshot(ctx context.Context, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer file.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	imported := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var base struct {
			RecordType string `json:"record_type"`
		}
		if err := json.Unmarshal(line, &base); err != nil {
			return 0, fmt.Errorf("failed to unmarshal base record: %w", err)
		}

		switch base.RecordType {
		case recordTypeMeta:
			// Skip meta
		case recordTypeEntry:
			var e snapshotEntry
			if err := json.Unmarshal(line, &e); err != nil {
				return 0, fmt.Errorf("failed to unmarshal entry: %w", err)
			}
			if e.Key == "" {
				return 0, fmt.Errorf("snapshot entry without key")
			}
			if err := db.set(ctx, tx, e.Key, e.Value); err != nil {
				return 0, err
			}
			imported++
		}
	}

	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("scanner error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	db.triggerChange(ctx)
	return imported, nil
}
