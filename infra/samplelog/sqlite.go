package samplelog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists samples in a SQLite database. Unlike the file
// backends it can serve windowed snapshots without scanning the whole
// log.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS samples (
        timestamp INTEGER NOT NULL,
        percentage REAL NOT NULL,
        power_plugged INTEGER NOT NULL,
        cpu_percent REAL NOT NULL DEFAULT 0,
        ram_percent REAL NOT NULL DEFAULT 0
    );
    CREATE INDEX IF NOT EXISTS idx_samples_timestamp ON samples(timestamp);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Append inserts the record.
func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO samples (timestamp, percentage, power_plugged, cpu_percent, ram_percent)
         VALUES (?, ?, ?, ?, ?)`,
		rec.Timestamp.UnixMilli(), rec.Percentage, boolToInt(rec.PowerPlugged),
		rec.CPUPercent, rec.RAMPercent)
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	return nil
}

// Snapshot returns samples in the window, oldest first. Rows with a
// percentage outside 0 to 100 are skipped and counted as dropped, which
// keeps the backend consistent with the file stores.
func (s *SQLiteStore) Snapshot(ctx context.Context, q Query) (Snapshot, error) {
	query := `SELECT timestamp, percentage, power_plugged FROM samples`
	var args []any
	var where []string
	if !q.Since.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, q.Since.UnixMilli())
	}
	if !q.Until.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, q.Until.UnixMilli())
	}
	for i, w := range where {
		if i == 0 {
			query += " WHERE " + w
		} else {
			query += " AND " + w
		}
	}
	query += " ORDER BY timestamp ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Snapshot{}, fmt.Errorf("query samples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snap Snapshot
	for rows.Next() {
		var ms int64
		var pct float64
		var plugged int
		if err := rows.Scan(&ms, &pct, &plugged); err != nil {
			snap.Dropped++
			continue
		}
		if pct < 0 || pct > 100 {
			snap.Dropped++
			continue
		}
		rec := Record{
			Timestamp:    time.UnixMilli(ms),
			Percentage:   pct,
			PowerPlugged: plugged != 0,
		}
		snap.Samples = append(snap.Samples, rec.Sample())
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
