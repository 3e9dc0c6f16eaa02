package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quentinv/battrace/config"
	"github.com/quentinv/battrace/core/model"
	"github.com/quentinv/battrace/infra/samplelog"
	"github.com/quentinv/battrace/internal/eventbus"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Log.Path = filepath.Join(dir, "battery_log.csv")
	cfg.Collector.Source = "sim"
	cfg.HTTP.SettingsPath = filepath.Join(dir, "user_settings.json")
	cfg.Log.SetDefaults()
	cfg.Collector.SetDefaults()
	cfg.Estimator.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.HTTP.SetDefaults()
	return cfg
}

func TestNew_WiresSimSource(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg)
	require.NoError(t, err)
	defer svc.Close()

	require.NotNil(t, svc.collector)
	require.NotNil(t, svc.engine)
	require.NotNil(t, svc.store)
}

func TestReport_EmptyLog(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg)
	require.NoError(t, err)
	defer svc.Close()

	rep, err := svc.Report(context.Background())
	require.NoError(t, err)
	require.False(t, rep.Weighted.HasEstimate())
	require.False(t, rep.LastInterval.HasEstimate())
}

func TestReport_FromRecordedSamples(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg)
	require.NoError(t, err)
	defer svc.Close()

	// Write a discharge run through a second handle on the same file.
	store, err := samplelog.NewCSVStore(cfg.Log.Path)
	require.NoError(t, err)
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	for i := 0; i <= 10; i++ {
		rec := samplelog.Record{
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
			Percentage: 90 - float64(i),
		}
		require.NoError(t, store.Append(context.Background(), rec))
	}
	require.NoError(t, store.Close())

	rep, err := svc.Report(context.Background())
	require.NoError(t, err)
	require.True(t, rep.Weighted.HasEstimate())
	require.InDelta(t, 1.0, *rep.Weighted.DrainRatePctPerMin, 1e-9)
	require.InDelta(t, 80.0, *rep.Weighted.TimeLeftMinutes, 1e-6)
}

func TestOnSample_PublishesReport(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg)
	require.NoError(t, err)
	defer svc.Close()

	store, err := samplelog.NewCSVStore(cfg.Log.Path)
	require.NoError(t, err)
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	for i := 0; i <= 4; i++ {
		rec := samplelog.Record{
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
			Percentage: 80 - 2*float64(i),
		}
		require.NoError(t, store.Append(context.Background(), rec))
	}
	require.NoError(t, store.Close())

	reports := svc.Reports()
	svc.onSample(context.Background(), eventSample(base.Add(4*time.Minute), 72))

	select {
	case ev := <-reports:
		require.True(t, ev.Report.Weighted.HasEstimate())
		require.InDelta(t, 2.0, *ev.Report.Weighted.DrainRatePctPerMin, 1e-9)
	case <-time.After(time.Second):
		t.Fatal("no report published")
	}
}

func eventSample(ts time.Time, pct float64) eventbus.SampleRecorded {
	return eventbus.SampleRecorded{
		Sample: model.Sample{Timestamp: ts, Percentage: pct},
	}
}
