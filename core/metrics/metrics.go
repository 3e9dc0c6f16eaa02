// Package metrics defines the observability events the service emits
// and the sink interface adapters implement.
package metrics

import (
	"github.com/quentinv/battrace/core/model"
)

// SampleEvent is emitted for every persisted power-state sample.
type SampleEvent struct {
	Sample     model.Sample
	CPUPercent float64
	RAMPercent float64
}

// ReportEvent is emitted after every estimation run.
type ReportEvent struct {
	Report model.EstimationReport
}

// Sink records samples and estimation reports for observability.
type Sink interface {
	RecordSample(ev SampleEvent) error
	RecordReport(ev ReportEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordSample(SampleEvent) error { return nil }
func (NopSink) RecordReport(ReportEvent) error { return nil }

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = ":2112"
	}
}
