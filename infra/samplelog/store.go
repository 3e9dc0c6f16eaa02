package samplelog

import (
	"context"
	"time"

	"github.com/quentinv/battrace/core/model"
)

// Record is one persisted log row: the power-state fields the estimator
// consumes plus system telemetry it ignores.
type Record struct {
	Timestamp    time.Time `json:"timestamp"`
	Percentage   float64   `json:"percentage"`
	PowerPlugged bool      `json:"power_plugged"`
	CPUPercent   float64   `json:"cpu_percent"`
	RAMPercent   float64   `json:"ram_percent"`
}

// Sample strips the telemetry fields from the record.
func (r Record) Sample() model.Sample {
	return model.Sample{
		Timestamp:    r.Timestamp,
		Percentage:   r.Percentage,
		PowerPlugged: r.PowerPlugged,
	}
}

// Query restricts a snapshot to a time window. Zero bounds are open.
type Query struct {
	Since time.Time
	Until time.Time
}

// Snapshot is a point-in-time, time-ascending view of the log. Dropped
// counts malformed rows that were skipped rather than failing the read.
type Snapshot struct {
	Samples []model.Sample
	Dropped int
}

// Store persists samples append-only and serves immutable snapshots.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Snapshot(ctx context.Context, q Query) (Snapshot, error)
	Close() error
}
