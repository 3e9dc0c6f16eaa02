package metrics

import (
	"errors"
	"testing"

	coremetrics "github.com/quentinv/battrace/core/metrics"
	"github.com/quentinv/battrace/core/model"
)

type countingSink struct {
	samples int
	reports int
	err     error
}

func (c *countingSink) RecordSample(coremetrics.SampleEvent) error {
	c.samples++
	return c.err
}

func (c *countingSink) RecordReport(coremetrics.ReportEvent) error {
	c.reports++
	return c.err
}

func TestMultiSink_FansOut(t *testing.T) {
	a, b := &countingSink{}, &countingSink{}
	m := NewMultiSink(a, b)

	if err := m.RecordSample(coremetrics.SampleEvent{Sample: model.Sample{}}); err != nil {
		t.Fatal(err)
	}
	if err := m.RecordReport(coremetrics.ReportEvent{}); err != nil {
		t.Fatal(err)
	}
	if a.samples != 1 || b.samples != 1 || a.reports != 1 || b.reports != 1 {
		t.Errorf("events not fanned out: %+v %+v", a, b)
	}
}

func TestMultiSink_ReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	a := &countingSink{err: boom}
	b := &countingSink{}
	m := NewMultiSink(a, b)

	if err := m.RecordSample(coremetrics.SampleEvent{}); !errors.Is(err, boom) {
		t.Fatalf("expected error, got %v", err)
	}
	if b.samples != 0 {
		t.Error("later sink called after error")
	}
}
