package estimation

import (
	"time"

	"github.com/google/uuid"

	"github.com/quentinv/battrace/core/logger"
	"github.com/quentinv/battrace/core/model"
)

// Engine computes EstimationReports from sample snapshots. It holds no
// state between calls: every estimate re-segments and re-aggregates the
// snapshot it is given, so an unchanged series always produces the same
// result. Callers must hand in a stable, time-ascending snapshot.
type Engine struct {
	cfg   Config
	log   logger.Logger
	now   func() time.Time
	newID func() string
}

// Option tweaks Engine construction, mainly for deterministic tests.
type Option func(*Engine)

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDFunc overrides the report ID generator.
func WithIDFunc(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// NewEngine creates an Engine with the given thresholds. A nil logger
// disables debug output.
func NewEngine(cfg Config, log logger.Logger, opts ...Option) *Engine {
	cfg.SetDefaults()
	if log == nil {
		log = logger.Nop{}
	}
	e := &Engine{cfg: cfg, log: log, now: time.Now, newID: uuid.NewString}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Estimate builds a report from the snapshot. Sparse or malformed input
// yields empty results with zero confidence, never an error: data
// quality problems are part of the domain, not failures.
func (e *Engine) Estimate(samples []model.Sample) model.EstimationReport {
	report := model.EstimationReport{
		ID:          e.newID(),
		GeneratedAt: e.now(),
	}
	if len(samples) > 0 {
		last := samples[len(samples)-1]
		report.CurrentPercentage = last.Percentage
		report.LastSampleTime = last.Timestamp
		report.PowerPlugged = last.PowerPlugged
	}
	if len(samples) < 2 {
		return report
	}

	intervals := Segment(samples, e.cfg.MaxGapMinutes)
	report.Weighted = weightedEstimate(intervals, report.CurrentPercentage, e.cfg)
	report.LastInterval = lastIntervalEstimate(intervals, samples, report.CurrentPercentage, e.cfg)

	e.log.Debugw("estimation computed", map[string]any{
		"samples":        len(samples),
		"intervals":      len(intervals),
		"intervals_used": report.Weighted.IntervalsUsed,
		"confidence":     report.Weighted.Confidence,
	})
	return report
}

// Config returns the thresholds the engine runs with.
func (e *Engine) Config() Config { return e.cfg }
