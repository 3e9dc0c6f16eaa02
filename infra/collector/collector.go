// Package collector runs the periodic sampling loop: poll the power
// source, persist the reading, announce it on the event bus.
package collector

import (
	"context"
	"time"

	"github.com/quentinv/battrace/core/logger"
	"github.com/quentinv/battrace/infra/power"
	"github.com/quentinv/battrace/infra/samplelog"
	"github.com/quentinv/battrace/internal/eventbus"
)

// Collector polls a power source at a fixed cadence and appends each
// reading to the sample log. Individual poll or write failures are
// logged and skipped so a flaky sensor does not kill the loop.
type Collector struct {
	src      power.Source
	store    samplelog.Store
	bus      *eventbus.TypedBus[eventbus.SampleRecorded]
	interval time.Duration
	log      logger.Logger
}

// New creates a Collector. The bus may be nil when nobody listens.
func New(src power.Source, store samplelog.Store, bus *eventbus.TypedBus[eventbus.SampleRecorded], interval time.Duration, log logger.Logger) *Collector {
	if log == nil {
		log = logger.Nop{}
	}
	return &Collector{src: src, store: store, bus: bus, interval: interval, log: log}
}

// Run polls immediately, then on every tick until the context ends.
func (c *Collector) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.poll(ctx)
		}
	}
}

func (c *Collector) poll(ctx context.Context) {
	r, err := c.src.Read(ctx)
	if err != nil {
		c.log.Warnf("sample read failed: %v", err)
		return
	}
	rec := samplelog.Record{
		Timestamp:    r.Sample.Timestamp,
		Percentage:   r.Sample.Percentage,
		PowerPlugged: r.Sample.PowerPlugged,
		CPUPercent:   r.CPUPercent,
		RAMPercent:   r.RAMPercent,
	}
	if err := c.store.Append(ctx, rec); err != nil {
		c.log.Errorf("sample append failed: %v", err)
		return
	}
	c.log.Debugw("sample recorded", map[string]any{
		"percentage": r.Sample.Percentage,
		"plugged":    r.Sample.PowerPlugged,
	})
	if c.bus != nil {
		c.bus.Publish(eventbus.SampleRecorded{
			Sample:     r.Sample,
			CPUPercent: r.CPUPercent,
			RAMPercent: r.RAMPercent,
		})
	}
}
