package samplelog

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/natefinch/lumberjack.v2"
)

// JSONLStore persists samples as JSON lines with size-based rotation.
// It is the backend of choice for long-running deployments where a
// single CSV file would grow without bound.
type JSONLStore struct {
	logger *lumberjack.Logger
	path   string
}

// NewJSONLStore creates a store with rotation options in megabytes and days.
func NewJSONLStore(path string, maxSizeMB, maxBackups, maxAgeDays int) (*JSONLStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   false,
	}
	return &JSONLStore{logger: lj, path: path}, nil
}

// Append writes the record and triggers rotation if needed.
func (s *JSONLStore) Append(ctx context.Context, rec Record) error {
	_ = ctx
	enc := json.NewEncoder(s.logger)
	return enc.Encode(rec)
}

// Snapshot reads the current file and any rotated siblings, skipping
// unparsable lines, and returns samples in ascending time order.
func (s *JSONLStore) Snapshot(ctx context.Context, q Query) (Snapshot, error) {
	_ = ctx
	files, err := filepath.Glob(s.path + "*")
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	for _, fp := range files {
		f, err := os.Open(fp)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			var rec Record
			if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil || rec.Timestamp.IsZero() {
				snap.Dropped++
				continue
			}
			if !q.Since.IsZero() && rec.Timestamp.Before(q.Since) {
				continue
			}
			if !q.Until.IsZero() && rec.Timestamp.After(q.Until) {
				continue
			}
			snap.Samples = append(snap.Samples, rec.Sample())
		}
		_ = f.Close()
	}
	sort.SliceStable(snap.Samples, func(i, j int) bool {
		return snap.Samples[i].Timestamp.Before(snap.Samples[j].Timestamp)
	})
	return snap, nil
}

// Close closes the underlying rotating writer.
func (s *JSONLStore) Close() error { return s.logger.Close() }
