package power

import (
	"context"
	"sync"
	"time"

	"github.com/quentinv/battrace/core/model"
)

// SimSource models a battery discharging at a fixed rate, switching to
// charging when it hits the low threshold and back once full. It is
// deterministic given a clock, which makes it suitable for tests and
// for exercising the pipeline without hardware.
type SimSource struct {
	mu           sync.Mutex
	percentage   float64
	drainPerMin  float64
	chargePerMin float64
	plugged      bool
	lowThreshold float64
	last         time.Time
	now          func() time.Time
}

// NewSimSource creates a simulator starting at startPct percent on
// battery, draining drainPerMin percentage points per minute.
func NewSimSource(startPct, drainPerMin float64) *SimSource {
	return &SimSource{
		percentage:   startPct,
		drainPerMin:  drainPerMin,
		chargePerMin: 3 * drainPerMin,
		lowThreshold: 10,
		now:          time.Now,
	}
}

// WithClock overrides the time source for deterministic tests.
func (s *SimSource) WithClock(now func() time.Time) *SimSource {
	s.now = now
	return s
}

// Read advances the simulated battery by the elapsed wall time and
// returns the resulting sample.
func (s *SimSource) Read(ctx context.Context) (Reading, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.now()
	if !s.last.IsZero() {
		minutes := t.Sub(s.last).Minutes()
		if s.plugged {
			s.percentage += s.chargePerMin * minutes
			if s.percentage >= 100 {
				s.percentage = 100
				s.plugged = false
			}
		} else {
			s.percentage -= s.drainPerMin * minutes
			if s.percentage <= s.lowThreshold {
				s.percentage = s.lowThreshold
				s.plugged = true
			}
		}
	}
	s.last = t

	return Reading{
		Sample: model.Sample{
			Timestamp:    t,
			Percentage:   s.percentage,
			PowerPlugged: s.plugged,
		},
	}, nil
}
