package config

import "fmt"

// LogConfig defines settings for sample log storage and rotation.
type LogConfig struct {
	// Backend selects the store type: "csv", "jsonl" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file location of the sample log.
	Path string `json:"path"`
	// MaxSizeMB triggers rotation when the jsonl file exceeds this size in megabytes.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *LogConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "csv"
	}
	if c.Path == "" {
		c.Path = "battery_log.csv"
	}
	if c.MaxSizeMB == 0 {
		c.MaxSizeMB = 50
	}
}

// Validate checks mandatory fields.
func (c LogConfig) Validate() error {
	if c.Backend != "csv" && c.Backend != "jsonl" && c.Backend != "sqlite" {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}
