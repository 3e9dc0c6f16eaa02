package power

import (
	"context"
	"fmt"
	"time"

	"github.com/distatus/battery"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/quentinv/battrace/core/model"
)

// SystemSource reads the first platform battery. Telemetry comes from
// gopsutil; failures there degrade to zero values rather than failing
// the whole reading.
type SystemSource struct {
	now func() time.Time
}

// NewSystemSource creates a source backed by the platform sensors.
func NewSystemSource() *SystemSource {
	return &SystemSource{now: time.Now}
}

// Read polls the battery sensor once.
func (s *SystemSource) Read(ctx context.Context) (Reading, error) {
	_ = ctx
	bats, err := battery.GetAll()
	if err != nil {
		return Reading{}, fmt.Errorf("read battery: %w", err)
	}
	if len(bats) == 0 {
		return Reading{}, fmt.Errorf("no battery present")
	}
	b := bats[0]
	pct := 0.0
	if b.Full > 0 {
		pct = b.Current / b.Full * 100
	}
	r := Reading{
		Sample: model.Sample{
			Timestamp:    s.now(),
			Percentage:   pct,
			PowerPlugged: b.State != battery.Discharging,
		},
	}
	if cpus, err := cpu.Percent(0, false); err == nil && len(cpus) > 0 {
		r.CPUPercent = cpus[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		r.RAMPercent = vm.UsedPercent
	}
	return r, nil
}
