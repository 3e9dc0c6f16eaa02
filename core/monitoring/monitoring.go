// Package monitoring provides a process-wide error reporting hook.
package monitoring

import "time"

// Monitor receives errors and panics for out-of-band reporting.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	Recover()
	Flush(timeout time.Duration)
}

// NopMonitor discards everything.
type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) Recover()                                  {}
func (NopMonitor) Flush(time.Duration)                       {}

var current Monitor = NopMonitor{}

// Init sets the global monitor implementation.
func Init(m Monitor) {
	if m != nil {
		current = m
	}
}

// CaptureException records the error with optional tags.
func CaptureException(err error, tags map[string]string) {
	current.CaptureException(err, tags)
}

// Recover captures panics in goroutines. Call it deferred.
func Recover() {
	current.Recover()
}

// Flush flushes buffered events before shutdown.
func Flush(d time.Duration) {
	current.Flush(d)
}
