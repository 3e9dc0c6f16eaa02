package estimation

import (
	"math"

	"github.com/quentinv/battrace/core/model"
)

// lastIntervalEstimate derives a low-latency estimate from the single
// most recent interval passing the loose thresholds. When no interval
// qualifies it falls back to a synthetic interval stitched from sparse
// on-battery samples, trading continuity for having any answer at all.
func lastIntervalEstimate(intervals []Interval, samples []model.Sample, currentPct float64, cfg Config) model.EstimationResult {
	var pick Interval
	found := false
	for i := len(intervals) - 1; i >= 0; i-- {
		iv := intervals[i]
		if iv.Duration() >= cfg.LastMinDurationMinutes && iv.Drop() >= cfg.LastMinDropPercent {
			pick = iv
			found = true
			break
		}
	}
	if !found {
		syn, ok := SyntheticInterval(samples, cfg.SyntheticMaxSamples)
		if !ok {
			return model.EstimationResult{}
		}
		pick = syn
	}

	rate := pick.Rate()
	if rate <= 0 {
		// Flat or rising percentage: degenerate, no estimate.
		return model.EstimationResult{}
	}

	durationScore := math.Min(pick.Duration()/15, 1)
	dropScore := math.Min(pick.Drop()/2, 1)

	return model.EstimationResult{
		DrainRatePctPerMin: &rate,
		Confidence:         (durationScore + dropScore) / 2,
		IntervalsUsed:      1,
		TimeLeftMinutes:    ptr(currentPct / rate),
		FullChargeMinutes:  ptr(100 / rate),
		Intervals:          []model.IntervalSummary{summarize(pick, 1)},
	}
}
