package config

import "fmt"

// CollectorConfig defines the sampling loop settings.
type CollectorConfig struct {
	// IntervalSeconds is the sampling cadence.
	IntervalSeconds int `json:"interval_seconds"`
	// Source selects the sample source: "system" or "sim".
	Source string `json:"source"`
	// SimStartPercent and SimDrainPerMin parameterise the simulated
	// battery when source is "sim".
	SimStartPercent float64 `json:"sim_start_percent"`
	SimDrainPerMin  float64 `json:"sim_drain_per_min"`
}

// SetDefaults applies sane defaults.
func (c *CollectorConfig) SetDefaults() {
	if c.IntervalSeconds == 0 {
		c.IntervalSeconds = 60
	}
	if c.Source == "" {
		c.Source = "system"
	}
	if c.SimStartPercent == 0 {
		c.SimStartPercent = 90
	}
	if c.SimDrainPerMin == 0 {
		c.SimDrainPerMin = 0.5
	}
}

// Validate checks mandatory fields.
func (c CollectorConfig) Validate() error {
	if c.IntervalSeconds <= 0 {
		return fmt.Errorf("interval_seconds must be positive")
	}
	if c.Source != "system" && c.Source != "sim" {
		return fmt.Errorf("unknown source %s", c.Source)
	}
	return nil
}

// HTTPConfig defines the API server settings.
type HTTPConfig struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
	// SettingsPath is where the settings endpoints persist their state.
	SettingsPath string `json:"settings_path"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8081"
	}
	if c.SettingsPath == "" {
		c.SettingsPath = "user_settings.json"
	}
}
