package samplelog

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"
)

// timeLayout matches the local timestamps written by earlier revisions
// of the log, so old files stay readable.
const timeLayout = "2006-01-02 15:04:05"

var csvHeader = []string{"timestamp", "percentage", "power_plugged", "cpu_percent", "ram_percent"}

// CSVStore persists samples in an append-only CSV file. Rows with an
// unparsable timestamp, percentage or plugged flag are skipped and
// counted when reading; extra trailing columns are ignored.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

// NewCSVStore creates the file with a header row if it does not exist.
func NewCSVStore(path string) (*CSVStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.Size() == 0 {
		w := csv.NewWriter(f)
		if err := w.Write(csvHeader); err != nil {
			_ = f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	return &CSVStore{path: path}, nil
}

// Append writes one row and syncs it to the file.
func (s *CSVStore) Append(ctx context.Context, rec Record) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	w := csv.NewWriter(f)
	row := []string{
		rec.Timestamp.Format(timeLayout),
		strconv.FormatFloat(rec.Percentage, 'f', 2, 64),
		strconv.FormatBool(rec.PowerPlugged),
		strconv.FormatFloat(rec.CPUPercent, 'f', 1, 64),
		strconv.FormatFloat(rec.RAMPercent, 'f', 1, 64),
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Snapshot reads the whole file, skipping the header and any malformed
// rows, and returns samples sorted by ascending timestamp.
func (s *CSVStore) Snapshot(ctx context.Context, q Query) (Snapshot, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return Snapshot{}, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var snap Snapshot
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			snap.Dropped++
			continue
		}
		if len(row) > 0 && row[0] == csvHeader[0] {
			continue
		}
		rec, ok := parseRow(row)
		if !ok {
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
	sort.SliceStable(snap.Samples, func(i, j int) bool {
		return snap.Samples[i].Timestamp.Before(snap.Samples[j].Timestamp)
	})
	return snap, nil
}

func (s *CSVStore) Close() error { return nil }

func parseRow(row []string) (Record, bool) {
	if len(row) < 3 {
		return Record{}, false
	}
	ts, err := time.ParseInLocation(timeLayout, row[0], time.Local)
	if err != nil {
		// Newer rows may carry RFC 3339 timestamps.
		ts, err = time.Parse(time.RFC3339, row[0])
		if err != nil {
			return Record{}, false
		}
	}
	pct, err := strconv.ParseFloat(row[1], 64)
	if err != nil || pct < 0 || pct > 100 {
		return Record{}, false
	}
	plugged, err := strconv.ParseBool(row[2])
	if err != nil {
		return Record{}, false
	}
	rec := Record{Timestamp: ts, Percentage: pct, PowerPlugged: plugged}
	if len(row) > 3 {
		rec.CPUPercent, _ = strconv.ParseFloat(row[3], 64)
	}
	if len(row) > 4 {
		rec.RAMPercent, _ = strconv.ParseFloat(row[4], 64)
	}
	return rec, true
}
