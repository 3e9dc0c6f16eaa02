package eventbus

import (
	"testing"
	"time"

	"github.com/quentinv/battrace/core/model"
)

func TestTypedBus_PublishSubscribe(t *testing.T) {
	bus := NewTyped[SampleRecorded]()
	defer bus.Close()

	sub := bus.Subscribe()
	ev := SampleRecorded{Sample: model.Sample{Percentage: 74}}
	bus.Publish(ev)

	select {
	case got := <-sub:
		if got.Sample.Percentage != 74 {
			t.Errorf("unexpected event: %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestTypedBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewTyped[ReportUpdated]()
	sub := bus.Subscribe()
	bus.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed")
	}
	bus.Close()
}

func TestTypedBus_PublishAfterCloseIsNoop(t *testing.T) {
	bus := NewTyped[ReportUpdated]()
	sub := bus.Subscribe()
	bus.Close()
	bus.Publish(ReportUpdated{})
	if _, ok := <-sub; ok {
		t.Fatal("subscriber should see closed channel")
	}
}
