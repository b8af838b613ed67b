package websocket

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_RunsOnlyLastCall(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var last atomic.Int32
	var runs atomic.Int32
	for i := int32(1); i <= 5; i++ {
		i := i
		d.Trigger(func() {
			runs.Add(1)
			last.Store(i)
		})
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	if runs.Load() != 1 {
		t.Errorf("expected 1 run, got %d", runs.Load())
	}
	if last.Load() != 5 {
		t.Errorf("expected the last call to run, got %d", last.Load())
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var runs atomic.Int32
	d.Trigger(func() { runs.Add(1) })
	d.Stop()
	time.Sleep(60 * time.Millisecond)
	if runs.Load() != 0 {
		t.Errorf("expected no run after Stop, got %d", runs.Load())
	}
}
