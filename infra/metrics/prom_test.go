package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/quentinv/battrace/core/metrics"
	"github.com/quentinv/battrace/core/model"
)

func TestPromSink_RecordSample(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordSample(coremetrics.SampleEvent{
		Sample: model.Sample{
			Timestamp:    time.Now(),
			Percentage:   64.5,
			PowerPlugged: true,
		},
		CPUPercent: 20,
		RAMPercent: 55,
	}))

	require.Equal(t, 64.5, testutil.ToFloat64(sink.percentage))
	require.Equal(t, 1.0, testutil.ToFloat64(sink.plugged))
	require.Equal(t, 1.0, testutil.ToFloat64(sink.samples))
}

func TestPromSink_RecordReport(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	rate := 0.5
	left := 120.0
	rep := model.EstimationReport{
		Weighted: model.EstimationResult{
			DrainRatePctPerMin: &rate,
			TimeLeftMinutes:    &left,
			Confidence:         0.8,
		},
	}
	require.NoError(t, sink.RecordReport(coremetrics.ReportEvent{Report: rep}))

	require.Equal(t, 0.5, testutil.ToFloat64(sink.drainRate.WithLabelValues("weighted")))
	require.Equal(t, 120.0, testutil.ToFloat64(sink.timeLeft.WithLabelValues("weighted")))
	require.Equal(t, 0.8, testutil.ToFloat64(sink.confidence.WithLabelValues("weighted")))
	// Estimator without data reports zeros, not stale values.
	require.Equal(t, 0.0, testutil.ToFloat64(sink.drainRate.WithLabelValues("last_interval")))
}

func TestPromSink_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	_, err = NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
}
