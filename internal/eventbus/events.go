package eventbus

import "github.com/quentinv/battrace/core/model"

// SampleRecorded is published after the collector persists a sample.
type SampleRecorded struct {
	Sample     model.Sample
	CPUPercent float64
	RAMPercent float64
}

// ReportUpdated is published after a fresh estimation run.
type ReportUpdated struct {
	Report model.EstimationReport
}
