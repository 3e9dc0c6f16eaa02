package estimation

import (
	"time"

	"github.com/quentinv/battrace/core/model"
)

// Interval is a maximal contiguous run of on-battery samples. Synthetic
// intervals relax the continuity rule and are only used by the
// last-interval fallback path.
type Interval struct {
	StartIndex      int
	EndIndex        int
	StartTime       time.Time
	EndTime         time.Time
	StartPercentage float64
	EndPercentage   float64
	Synthetic       bool
}

// Duration returns the interval length in minutes.
func (iv Interval) Duration() float64 { return iv.EndTime.Sub(iv.StartTime).Minutes() }

// Drop returns the percentage lost over the interval. Negative when the
// reported charge rose, which disqualifies the interval downstream.
func (iv Interval) Drop() float64 { return iv.StartPercentage - iv.EndPercentage }

// Rate returns the drain rate in percentage points per minute, or 0 for
// zero-duration intervals.
func (iv Interval) Rate() float64 {
	d := iv.Duration()
	if d <= 0 {
		return 0
	}
	return iv.Drop() / d
}

func newInterval(samples []model.Sample, start, end int) Interval {
	return Interval{
		StartIndex:      start,
		EndIndex:        end,
		StartTime:       samples[start].Timestamp,
		EndTime:         samples[end].Timestamp,
		StartPercentage: samples[start].Percentage,
		EndPercentage:   samples[end].Percentage,
	}
}

// Segment splits a time-ascending sample series into maximal contiguous
// on-battery intervals. Adjacent samples belong to the same interval
// only when both are on battery and separated by at most maxGapMinutes;
// a larger gap always forces a split. Zero-length intervals are
// discarded.
func Segment(samples []model.Sample, maxGapMinutes float64) []Interval {
	var intervals []Interval
	start := -1
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		if prev.OnBattery() && cur.OnBattery() && cur.GapMinutes(prev) <= maxGapMinutes {
			if start == -1 {
				start = i - 1
			}
			continue
		}
		if start != -1 {
			if i-1 > start {
				intervals = append(intervals, newInterval(samples, start, i-1))
			}
			start = -1
		}
	}
	if start != -1 && start < len(samples)-1 {
		intervals = append(intervals, newInterval(samples, start, len(samples)-1))
	}
	return intervals
}

// SyntheticInterval stitches a degenerate interval from the last
// maxSamples on-battery samples regardless of continuity. It exists so
// the last-interval estimator can still answer on sparse data; the
// result is tagged Synthetic and must never feed the weighted
// aggregate. The second return value is false when fewer than two
// on-battery samples exist.
func SyntheticInterval(samples []model.Sample, maxSamples int) (Interval, bool) {
	var idx []int
	for i, s := range samples {
		if s.OnBattery() {
			idx = append(idx, i)
		}
	}
	if len(idx) < 2 {
		return Interval{}, false
	}
	if len(idx) > maxSamples {
		idx = idx[len(idx)-maxSamples:]
	}
	iv := newInterval(samples, idx[0], idx[len(idx)-1])
	iv.Synthetic = true
	return iv, true
}
