package metrics

import (
	"context"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/quentinv/battrace/core/metrics"
	"github.com/quentinv/battrace/infra/logger"
)

// InfluxSink writes samples and estimation reports to an InfluxDB
// instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	client := influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails, so a missing database never
// breaks the monitoring loop.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSample writes the sample as a battery_sample point.
func (s *InfluxSink) RecordSample(ev coremetrics.SampleEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("battery_sample").
		AddTag("power_plugged", strconv.FormatBool(ev.Sample.PowerPlugged)).
		AddField("percentage", ev.Sample.Percentage).
		AddField("cpu_percent", ev.CPUPercent).
		AddField("ram_percent", ev.RAMPercent).
		SetTime(ev.Sample.Timestamp)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordReport writes one point per estimator.
func (s *InfluxSink) RecordReport(ev coremetrics.ReportEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rep := ev.Report
	for name, res := range map[string]struct {
		rate, left *float64
		confidence float64
	}{
		"weighted":      {rep.Weighted.DrainRatePctPerMin, rep.Weighted.TimeLeftMinutes, rep.Weighted.Confidence},
		"last_interval": {rep.LastInterval.DrainRatePctPerMin, rep.LastInterval.TimeLeftMinutes, rep.LastInterval.Confidence},
	} {
		p := write.NewPointWithMeasurement("battery_estimate").
			AddTag("estimator", name).
			AddTag("report_id", rep.ID).
			AddField("confidence", res.confidence).
			SetTime(rep.GeneratedAt)
		if res.rate != nil {
			p.AddField("drain_rate_pct_per_min", *res.rate)
		}
		if res.left != nil {
			p.AddField("time_left_minutes", *res.left)
		}
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close shuts the underlying client down.
func (s *InfluxSink) Close() { s.client.Close() }
