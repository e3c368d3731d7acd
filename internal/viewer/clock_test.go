package viewer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	c := NewClock(2)
	if c.Advance(t0.Add(time.Second)) != 0 {
		t.Fatal("paused clock advanced")
	}
	c.Play(t0)
	if got := c.Advance(t0.Add(1500 * time.Millisecond)); got != 3 {
		t.Errorf("position = %v, want 3", got)
	}
	c.Toggle(t0)
	if c.Playing() {
		t.Error("Toggle should pause")
	}
	c.Seek(-4)
	if c.Position() != 0 {
		t.Errorf("Seek clamps at zero, got %v", c.Position())
	}
}

func TestDebouncer_Coalesces(t *testing.T) {
	var calls atomic.Int32
	fired := make(chan struct{}, 4)
	d := NewDebouncer(20*time.Millisecond, func() {
		calls.Add(1)
		fired <- struct{}{}
	})
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Trigger()
	}
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced func never ran")
	}
	time.Sleep(60 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(10*time.Millisecond, func() { calls.Add(1) })
	d.Trigger()
	d.Stop()
	d.Trigger()
	time.Sleep(50 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Errorf("calls = %d after Stop", n)
	}
}
