// Package estimation turns an irregular series of power-state samples
// into a remaining-discharge-time estimate with a reliability score.
// The series is segmented into contiguous on-battery intervals which
// feed two estimators: a recency-weighted aggregate over recent
// intervals and a low-latency estimate from the single most recent one.
package estimation
