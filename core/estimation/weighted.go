package estimation

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/quentinv/battrace/core/model"
)

// nearZeroRate guards the variance normalisation against a vanishing
// mean rate blowing the consistency score up.
const nearZeroRate = 1e-9

// weightedEstimate aggregates the qualifying intervals into one drain
// rate. Each interval is weighted by its capped duration multiplied by
// an exponential recency factor, so the newest intervals dominate.
func weightedEstimate(intervals []Interval, currentPct float64, cfg Config) model.EstimationResult {
	kept := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if admitInterval(iv, cfg.MinDurationMinutes, cfg.MinDropPercent) {
			kept = append(kept, iv)
		}
	}
	if len(kept) > cfg.MaxRecentIntervals {
		kept = kept[len(kept)-cfg.MaxRecentIntervals:]
	}
	if len(kept) == 0 {
		return model.EstimationResult{}
	}

	rates := make([]float64, len(kept))
	weights := make([]float64, len(kept))
	summaries := make([]model.IntervalSummary, len(kept))
	totalDuration := 0.0
	for i, iv := range kept {
		rates[i] = iv.Rate()
		weights[i] = math.Min(iv.Duration(), cfg.DurationCapMinutes) * math.Pow(2, float64(i))
		totalDuration += iv.Duration()
		summaries[i] = summarize(iv, weights[i])
	}

	mean := floats.Dot(rates, weights) / floats.Sum(weights)
	confidence := blendConfidence(rates, mean, totalDuration)

	res := model.EstimationResult{
		Confidence:    confidence,
		IntervalsUsed: len(kept),
		Intervals:     summaries,
	}
	if mean > 0 {
		res.DrainRatePctPerMin = &mean
		res.TimeLeftMinutes = ptr(currentPct / mean)
		res.FullChargeMinutes = ptr(100 / mean)
	}
	return res
}

// admitInterval applies the discharge filter: meaningful duration, a
// strictly falling percentage and a drop above the jitter threshold.
func admitInterval(iv Interval, minDuration, minDrop float64) bool {
	return !iv.Synthetic &&
		iv.Duration() >= minDuration &&
		iv.StartPercentage > iv.EndPercentage &&
		iv.Drop() >= minDrop
}

// blendConfidence scores the estimate from interval count, covered
// duration and rate consistency. Consistency uses the population
// variance of the unweighted rates around the weighted mean; with a
// single interval there is nothing to measure, so it defaults to a
// moderate 0.5.
func blendConfidence(rates []float64, mean, totalDuration float64) float64 {
	intervalScore := math.Min(float64(len(rates))/5, 1)
	durationScore := math.Min(totalDuration/60, 1)

	consistencyScore := 0.5
	if len(rates) > 1 {
		variance := 0.0
		for _, r := range rates {
			variance += (r - mean) * (r - mean)
		}
		variance /= float64(len(rates))
		normalized := 1.0
		if mean > nearZeroRate {
			normalized = math.Min(variance/mean, 1)
		}
		consistencyScore = 1 - normalized
	}
	return 0.4*intervalScore + 0.3*durationScore + 0.3*consistencyScore
}

func summarize(iv Interval, weight float64) model.IntervalSummary {
	return model.IntervalSummary{
		StartTime:       iv.StartTime,
		EndTime:         iv.EndTime,
		DurationMinutes: iv.Duration(),
		StartPercentage: iv.StartPercentage,
		EndPercentage:   iv.EndPercentage,
		RatePctPerMin:   iv.Rate(),
		Weight:          weight,
		Synthetic:       iv.Synthetic,
	}
}

func ptr(v float64) *float64 { return &v }
