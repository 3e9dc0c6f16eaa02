// Package app wires the collector, sample log, estimation engine and
// delivery surfaces into one runnable service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apiestimation "github.com/quentinv/battrace/api/estimation"
	apisettings "github.com/quentinv/battrace/api/settings"
	"github.com/quentinv/battrace/config"
	"github.com/quentinv/battrace/core/estimation"
	coremetrics "github.com/quentinv/battrace/core/metrics"
	"github.com/quentinv/battrace/core/model"
	"github.com/quentinv/battrace/core/monitoring"
	"github.com/quentinv/battrace/infra/collector"
	"github.com/quentinv/battrace/infra/logger"
	"github.com/quentinv/battrace/infra/metrics"
	inframon "github.com/quentinv/battrace/infra/monitoring"
	"github.com/quentinv/battrace/infra/mqtt"
	"github.com/quentinv/battrace/infra/power"
	"github.com/quentinv/battrace/infra/samplelog"
	"github.com/quentinv/battrace/internal/eventbus"
)

// Service owns the sampling loop and answers estimation requests from
// the delivery surfaces.
type Service struct {
	cfg       *config.Config
	store     samplelog.Store
	engine    *estimation.Engine
	collector *collector.Collector
	sink      coremetrics.Sink
	sampleBus *eventbus.TypedBus[eventbus.SampleRecorded]
	reportBus *eventbus.TypedBus[eventbus.ReportUpdated]
	publisher *mqtt.Publisher
	log       logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	mon, err := inframon.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}
	monitoring.Init(mon)

	store, err := newStore(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("sample store: %w", err)
	}

	var src power.Source
	switch cfg.Collector.Source {
	case "sim":
		src = power.NewSimSource(cfg.Collector.SimStartPercent, cfg.Collector.SimDrainPerMin)
	default:
		src = power.NewSystemSource()
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var pub *mqtt.Publisher
	if cfg.MQTT.Enabled {
		pub, err = mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
	}

	sampleBus := eventbus.NewTyped[eventbus.SampleRecorded]()
	interval := time.Duration(cfg.Collector.IntervalSeconds) * time.Second
	col := collector.New(src, store, sampleBus, interval, logger.New("collector"))

	return &Service{
		cfg:       cfg,
		store:     store,
		engine:    estimation.NewEngine(cfg.Estimator, logger.New("estimation")),
		collector: col,
		sink:      sink,
		sampleBus: sampleBus,
		reportBus: eventbus.NewTyped[eventbus.ReportUpdated](),
		publisher: pub,
		log:       logg,
	}, nil
}

func newStore(cfg config.LogConfig) (samplelog.Store, error) {
	switch cfg.Backend {
	case "jsonl":
		return samplelog.NewJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	case "sqlite":
		return samplelog.NewSQLiteStore(cfg.Path)
	default:
		return samplelog.NewCSVStore(cfg.Path)
	}
}

// Report snapshots the log and runs both estimators over it.
func (s *Service) Report(ctx context.Context) (model.EstimationReport, error) {
	snap, err := s.store.Snapshot(ctx, samplelog.Query{})
	if err != nil {
		return model.EstimationReport{}, fmt.Errorf("snapshot: %w", err)
	}
	rep := s.engine.Estimate(snap.Samples)
	rep.DroppedSamples = snap.Dropped
	return rep, nil
}

// Reports streams estimation results produced by the sampling loop.
func (s *Service) Reports() <-chan eventbus.ReportUpdated {
	return s.reportBus.Subscribe()
}

// Run starts the collector and delivery surfaces and blocks until the
// context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	go func() {
		defer monitoring.Recover()
		if err := s.collector.Run(ctx); err != nil && ctx.Err() == nil {
			s.log.Errorf("collector stopped: %v", err)
			monitoring.CaptureException(err, map[string]string{"component": "collector"})
		}
	}()
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.cfg.HTTP.Enabled {
		go func() {
			if err := s.serveAPI(ctx); err != nil {
				s.log.Errorf("api server: %v", err)
			}
		}()
	}

	sub := s.sampleBus.Subscribe()
	defer s.sampleBus.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-sub:
			if !ok {
				return nil
			}
			s.onSample(ctx, ev)
		}
	}
}

// onSample refreshes the estimate after every recorded sample and fans
// the result out to sinks and subscribers.
func (s *Service) onSample(ctx context.Context, ev eventbus.SampleRecorded) {
	if err := s.sink.RecordSample(coremetrics.SampleEvent{
		Sample:     ev.Sample,
		CPUPercent: ev.CPUPercent,
		RAMPercent: ev.RAMPercent,
	}); err != nil {
		s.log.Warnf("record sample: %v", err)
	}

	rep, err := s.Report(ctx)
	if err != nil {
		s.log.Errorf("estimation failed: %v", err)
		monitoring.CaptureException(err, map[string]string{"component": "estimation"})
		return
	}
	if err := s.sink.RecordReport(coremetrics.ReportEvent{Report: rep}); err != nil {
		s.log.Warnf("record report: %v", err)
	}
	if s.publisher != nil {
		if err := s.publisher.PublishReport(rep); err != nil {
			s.log.Warnf("publish report: %v", err)
		}
	}
	s.reportBus.Publish(eventbus.ReportUpdated{Report: rep})
}

func (s *Service) serveAPI(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/api/estimate", apiestimation.NewReportHandler(s))
	mux.Handle("/api/samples", apiestimation.NewSamplesHandler(s.store))
	settings := apisettings.NewHandler(s.cfg.HTTP.SettingsPath)
	mux.Handle("/get_settings", settings)
	mux.Handle("/update_settings", settings)

	srv := &http.Server{Addr: s.cfg.HTTP.Address, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api server shutdown: %v", err)
		}
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.sampleBus.Close()
	s.reportBus.Close()
	if s.publisher != nil {
		s.publisher.Close()
	}
	monitoring.Flush(2 * time.Second)
	return s.store.Close()
}
