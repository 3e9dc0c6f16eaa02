// Package power provides sample sources for the collector: the real
// platform battery sensor and a deterministic simulator for tests and
// demos.
package power

import (
	"context"

	"github.com/quentinv/battrace/core/model"
)

// Reading is one sensor poll: the power-state sample plus system
// telemetry recorded alongside it.
type Reading struct {
	Sample     model.Sample
	CPUPercent float64
	RAMPercent float64
}

// Source produces power-state readings on demand.
type Source interface {
	Read(ctx context.Context) (Reading, error)
}
