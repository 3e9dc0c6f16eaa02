package metrics

import coremetrics "github.com/quentinv/battrace/core/metrics"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSample forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordSample(ev coremetrics.SampleEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSample(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordReport forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordReport(ev coremetrics.ReportEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordReport(ev); err != nil {
			return err
		}
	}
	return nil
}
