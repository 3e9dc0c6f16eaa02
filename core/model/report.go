package model

import "time"

// IntervalSummary describes one discharge interval that entered an
// estimate. It is diagnostic output for presentation and debugging
// consumers.
type IntervalSummary struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes float64   `json:"duration_minutes"`
	StartPercentage float64   `json:"start_percentage"`
	EndPercentage   float64   `json:"end_percentage"`
	RatePctPerMin   float64   `json:"rate_pct_per_min"`
	Weight          float64   `json:"weight"`
	// Synthetic marks a non-contiguous fallback interval stitched from
	// sparse on-battery samples.
	Synthetic bool `json:"synthetic,omitempty"`
}

// EstimationResult is the outcome of one estimator. A nil
// DrainRatePctPerMin means "no estimate": the input had too little
// usable discharge data, which is a normal result rather than an error.
type EstimationResult struct {
	DrainRatePctPerMin *float64          `json:"drain_rate_pct_per_min"`
	Confidence         float64           `json:"confidence"`
	IntervalsUsed      int               `json:"intervals_used"`
	TimeLeftMinutes    *float64          `json:"time_left_minutes"`
	FullChargeMinutes  *float64          `json:"full_charge_minutes"`
	Intervals          []IntervalSummary `json:"intervals,omitempty"`
}

// HasEstimate reports whether the estimator produced a usable drain rate.
func (r EstimationResult) HasEstimate() bool { return r.DrainRatePctPerMin != nil }

// EstimationReport aggregates the current power state with both
// estimator outputs. It is assembled fresh on every estimation call.
type EstimationReport struct {
	ID                string           `json:"id"`
	GeneratedAt       time.Time        `json:"generated_at"`
	CurrentPercentage float64          `json:"current_percentage"`
	LastSampleTime    time.Time        `json:"last_sample_time"`
	PowerPlugged      bool             `json:"power_plugged"`
	Weighted          EstimationResult `json:"weighted"`
	LastInterval      EstimationResult `json:"last_interval"`
	// DroppedSamples counts malformed log rows skipped while building
	// the snapshot this report was computed from.
	DroppedSamples int `json:"dropped_samples,omitempty"`
}
