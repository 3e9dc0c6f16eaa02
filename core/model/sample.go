package model

import "time"

// Sample is one power-state observation taken from the platform battery
// sensor. Series handed to the estimator must be ordered by ascending
// timestamp; the log store guarantees this for snapshots it returns.
type Sample struct {
	Timestamp    time.Time `json:"timestamp"`
	Percentage   float64   `json:"percentage"` // 0-100
	PowerPlugged bool      `json:"power_plugged"`
}

// OnBattery reports whether the machine was discharging when the sample
// was taken.
func (s Sample) OnBattery() bool { return !s.PowerPlugged }

// GapMinutes returns the time elapsed since prev in minutes.
func (s Sample) GapMinutes(prev Sample) float64 {
	return s.Timestamp.Sub(prev.Timestamp).Minutes()
}
