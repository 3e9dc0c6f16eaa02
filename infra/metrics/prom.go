package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/quentinv/battrace/core/metrics"
	"github.com/quentinv/battrace/core/model"
)

// PromSink exposes battery state and estimation quality as Prometheus
// metrics. The Prometheus server is started separately via
// StartPromServer.
type PromSink struct {
	percentage   prometheus.Gauge
	plugged      prometheus.Gauge
	samples      prometheus.Counter
	drainRate    *prometheus.GaugeVec
	timeLeft     *prometheus.GaugeVec
	confidence   *prometheus.GaugeVec
	droppedRows  prometheus.Gauge
	cpuPercent   prometheus.Gauge
	ramPercent   prometheus.Gauge
}

// NewPromSink registers the metrics on the default registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		percentage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "battery_percentage",
			Help: "Current battery charge in percent",
		}),
		plugged: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "battery_power_plugged",
			Help: "1 when external power is connected",
		}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "battery_samples_recorded_total",
			Help: "Total number of samples written to the log",
		}),
		drainRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "battery_drain_rate_pct_per_min",
			Help: "Estimated drain rate in percentage points per minute",
		}, []string{"estimator"}),
		timeLeft: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "battery_time_left_minutes",
			Help: "Estimated minutes of discharge remaining",
		}, []string{"estimator"}),
		confidence: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "battery_estimate_confidence",
			Help: "Reliability score of the estimate between 0 and 1",
		}, []string{"estimator"}),
		droppedRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "battery_log_dropped_rows",
			Help: "Malformed log rows skipped in the latest snapshot",
		}),
		cpuPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "system_cpu_percent",
			Help: "CPU utilisation recorded with the latest sample",
		}),
		ramPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "system_ram_percent",
			Help: "RAM utilisation recorded with the latest sample",
		}),
	}
	collectors := []prometheus.Collector{
		s.percentage, s.plugged, s.samples, s.drainRate,
		s.timeLeft, s.confidence, s.droppedRows, s.cpuPercent, s.ramPercent,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordSample updates the live battery gauges.
func (s *PromSink) RecordSample(ev coremetrics.SampleEvent) error {
	s.percentage.Set(ev.Sample.Percentage)
	s.plugged.Set(boolToFloat(ev.Sample.PowerPlugged))
	s.cpuPercent.Set(ev.CPUPercent)
	s.ramPercent.Set(ev.RAMPercent)
	s.samples.Inc()
	return nil
}

// RecordReport updates the estimation gauges for both estimators.
func (s *PromSink) RecordReport(ev coremetrics.ReportEvent) error {
	rep := ev.Report
	s.droppedRows.Set(float64(rep.DroppedSamples))
	s.setEstimator("weighted", rep.Weighted)
	s.setEstimator("last_interval", rep.LastInterval)
	return nil
}

func (s *PromSink) setEstimator(name string, res model.EstimationResult) {
	s.confidence.WithLabelValues(name).Set(res.Confidence)
	if res.DrainRatePctPerMin != nil {
		s.drainRate.WithLabelValues(name).Set(*res.DrainRatePctPerMin)
	} else {
		s.drainRate.WithLabelValues(name).Set(0)
	}
	if res.TimeLeftMinutes != nil {
		s.timeLeft.WithLabelValues(name).Set(*res.TimeLeftMinutes)
	} else {
		s.timeLeft.WithLabelValues(name).Set(0)
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
