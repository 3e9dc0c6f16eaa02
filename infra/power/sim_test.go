package power

import (
	"context"
	"testing"
	"time"
)

func TestSimSource_Discharges(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := base
	src := NewSimSource(80, 1).WithClock(func() time.Time { return clock })

	r, err := src.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if r.Sample.Percentage != 80 || r.Sample.PowerPlugged {
		t.Fatalf("initial reading: %+v", r.Sample)
	}

	clock = base.Add(10 * time.Minute)
	r, err = src.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if r.Sample.Percentage != 70 {
		t.Errorf("after 10 min at 1%%/min: %v", r.Sample.Percentage)
	}
}

func TestSimSource_PlugsInWhenLow(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := base
	src := NewSimSource(12, 1).WithClock(func() time.Time { return clock })

	if _, err := src.Read(context.Background()); err != nil {
		t.Fatal(err)
	}
	clock = base.Add(30 * time.Minute)
	r, err := src.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !r.Sample.PowerPlugged {
		t.Fatalf("expected simulator to plug in at the low threshold: %+v", r.Sample)
	}
	if r.Sample.Percentage != 10 {
		t.Errorf("percentage clamped wrong: %v", r.Sample.Percentage)
	}
}
