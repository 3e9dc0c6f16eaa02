package estimation

import (
	"testing"
	"time"

	"github.com/quentinv/battrace/core/model"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func sampleAt(min float64, pct float64, plugged bool) model.Sample {
	return model.Sample{
		Timestamp:    t0.Add(time.Duration(min * float64(time.Minute))),
		Percentage:   pct,
		PowerPlugged: plugged,
	}
}

func TestSegment_ContinuousRun(t *testing.T) {
	samples := []model.Sample{
		sampleAt(0, 100, false),
		sampleAt(2, 99, false),
		sampleAt(4, 98, false),
	}
	ivs := Segment(samples, 5)
	if len(ivs) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(ivs))
	}
	iv := ivs[0]
	if iv.StartIndex != 0 || iv.EndIndex != 2 {
		t.Errorf("unexpected bounds: %d..%d", iv.StartIndex, iv.EndIndex)
	}
	if iv.StartPercentage != 100 || iv.EndPercentage != 98 {
		t.Errorf("unexpected percentages: %v..%v", iv.StartPercentage, iv.EndPercentage)
	}
}

func TestSegment_GapForcesSplit(t *testing.T) {
	// On battery throughout, but a 6 minute hole in the middle.
	samples := []model.Sample{
		sampleAt(0, 100, false),
		sampleAt(4, 98, false),
		sampleAt(10, 95, false),
		sampleAt(14, 93, false),
	}
	ivs := Segment(samples, 5)
	if len(ivs) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(ivs))
	}
	if ivs[0].EndIndex != 1 || ivs[1].StartIndex != 2 {
		t.Errorf("split at wrong place: %+v", ivs)
	}
}

func TestSegment_PluggedSampleClosesInterval(t *testing.T) {
	samples := []model.Sample{
		sampleAt(0, 100, false),
		sampleAt(4, 98, false),
		sampleAt(8, 98, true),
		sampleAt(12, 98, false),
		sampleAt(16, 96, false),
	}
	ivs := Segment(samples, 5)
	if len(ivs) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(ivs))
	}
	for _, iv := range ivs {
		if iv.StartIndex <= 2 && iv.EndIndex >= 2 {
			t.Errorf("plugged sample included in interval %+v", iv)
		}
	}
}

func TestSegment_DiscardsZeroLength(t *testing.T) {
	// Single on-battery pair surrounded by plugged samples would yield a
	// one-sample interval; the scan must drop it.
	samples := []model.Sample{
		sampleAt(0, 100, true),
		sampleAt(4, 100, false),
		sampleAt(8, 99, true),
	}
	if ivs := Segment(samples, 5); len(ivs) != 0 {
		t.Fatalf("expected no intervals, got %+v", ivs)
	}
}

func TestSegment_TrailingRunClosedAtLastIndex(t *testing.T) {
	samples := []model.Sample{
		sampleAt(0, 100, true),
		sampleAt(4, 100, false),
		sampleAt(8, 99, false),
		sampleAt(12, 98, false),
	}
	ivs := Segment(samples, 5)
	if len(ivs) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(ivs))
	}
	if ivs[0].EndIndex != 3 {
		t.Errorf("trailing interval not closed at final sample: %+v", ivs[0])
	}
}

func TestSegment_FewSamples(t *testing.T) {
	if ivs := Segment(nil, 5); len(ivs) != 0 {
		t.Errorf("nil series: %+v", ivs)
	}
	if ivs := Segment([]model.Sample{sampleAt(0, 50, false)}, 5); len(ivs) != 0 {
		t.Errorf("single sample: %+v", ivs)
	}
}

func TestSyntheticInterval_SparseSeries(t *testing.T) {
	samples := []model.Sample{
		sampleAt(0, 90, false),
		sampleAt(10, 85, false),
		sampleAt(25, 80, false),
	}
	if ivs := Segment(samples, 5); len(ivs) != 0 {
		t.Fatalf("gaps should prevent proper intervals, got %+v", ivs)
	}
	iv, ok := SyntheticInterval(samples, 10)
	if !ok {
		t.Fatal("expected synthetic interval")
	}
	if !iv.Synthetic {
		t.Error("interval not tagged synthetic")
	}
	if iv.StartIndex != 0 || iv.EndIndex != 2 {
		t.Errorf("unexpected bounds: %d..%d", iv.StartIndex, iv.EndIndex)
	}
}

func TestSyntheticInterval_LimitsSampleCount(t *testing.T) {
	var samples []model.Sample
	for i := 0; i < 15; i++ {
		samples = append(samples, sampleAt(float64(i*10), 100-float64(i), false))
	}
	iv, ok := SyntheticInterval(samples, 10)
	if !ok {
		t.Fatal("expected synthetic interval")
	}
	if iv.StartIndex != 5 {
		t.Errorf("expected start at index 5 (last 10 samples), got %d", iv.StartIndex)
	}
}

func TestSyntheticInterval_NeedsTwoOnBatterySamples(t *testing.T) {
	samples := []model.Sample{
		sampleAt(0, 90, true),
		sampleAt(10, 85, false),
	}
	if _, ok := SyntheticInterval(samples, 10); ok {
		t.Fatal("one on-battery sample must not yield an interval")
	}
}
