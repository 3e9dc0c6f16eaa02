package estimation

import "fmt"

// Config defines segmentation and admission thresholds for the
// estimators. Zero values are replaced by defaults in SetDefaults so a
// missing config section yields the standard behaviour.
type Config struct {
	// MaxGapMinutes is the largest gap between adjacent samples that
	// still counts as a continuous recording.
	MaxGapMinutes float64 `json:"max_gap_minutes"`
	// MinDurationMinutes is the shortest interval the weighted
	// estimator will accept.
	MinDurationMinutes float64 `json:"min_duration_minutes"`
	// MinDropPercent is the smallest percentage drop the weighted
	// estimator will accept, filtering out sensor jitter.
	MinDropPercent float64 `json:"min_drop_percent"`
	// MaxRecentIntervals bounds how many of the newest qualifying
	// intervals enter the weighted aggregate.
	MaxRecentIntervals int `json:"max_recent_intervals"`
	// DurationCapMinutes caps the duration component of an interval's
	// weight so one long session cannot dominate.
	DurationCapMinutes float64 `json:"duration_cap_minutes"`
	// LastMinDurationMinutes and LastMinDropPercent are the looser
	// thresholds used by the last-interval estimator.
	LastMinDurationMinutes float64 `json:"last_min_duration_minutes"`
	LastMinDropPercent     float64 `json:"last_min_drop_percent"`
	// SyntheticMaxSamples limits how many trailing on-battery samples
	// the degenerate fallback interval is stitched from.
	SyntheticMaxSamples int `json:"synthetic_max_samples"`
}

// SetDefaults applies the standard thresholds for unset fields.
func (c *Config) SetDefaults() {
	if c.MaxGapMinutes == 0 {
		c.MaxGapMinutes = 5
	}
	if c.MinDurationMinutes == 0 {
		c.MinDurationMinutes = 2
	}
	if c.MinDropPercent == 0 {
		c.MinDropPercent = 0.5
	}
	if c.MaxRecentIntervals == 0 {
		c.MaxRecentIntervals = 10
	}
	if c.DurationCapMinutes == 0 {
		c.DurationCapMinutes = 120
	}
	if c.LastMinDurationMinutes == 0 {
		c.LastMinDurationMinutes = 1
	}
	if c.LastMinDropPercent == 0 {
		c.LastMinDropPercent = 0.1
	}
	if c.SyntheticMaxSamples == 0 {
		c.SyntheticMaxSamples = 10
	}
}

// Validate checks that the thresholds are usable.
func (c Config) Validate() error {
	if c.MaxGapMinutes <= 0 {
		return fmt.Errorf("max_gap_minutes must be positive")
	}
	if c.MaxRecentIntervals <= 0 {
		return fmt.Errorf("max_recent_intervals must be positive")
	}
	if c.DurationCapMinutes <= 0 {
		return fmt.Errorf("duration_cap_minutes must be positive")
	}
	if c.MinDropPercent < 0 || c.LastMinDropPercent < 0 {
		return fmt.Errorf("drop thresholds must not be negative")
	}
	if c.SyntheticMaxSamples < 2 {
		return fmt.Errorf("synthetic_max_samples must be at least 2")
	}
	return nil
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	var c Config
	c.SetDefaults()
	return c
}
