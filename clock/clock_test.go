package clock

import "testing"

func TestManualClock(t *testing.T) {
	c := NewManual(100)

	if got := c.Now(); got != 100 {
		t.Errorf("Now: got %d, want 100", got)
	}

	c.Advance(50)
	if got := c.Now(); got != 150 {
		t.Errorf("after Advance(50): got %d, want 150", got)
	}

	c.Set(1000)
	if got := c.Now(); got != 1000 {
		t.Errorf("after Set(1000): got %d, want 1000", got)
	}
}

func TestManualHeight(t *testing.T) {
	c := NewManual(0)

	if got := c.Height(); got != 0 {
		t.Errorf("initial height: got %d, want 0", got)
	}

	c.Tick()
	c.Tick()
	if got := c.Height(); got != 2 {
		t.Errorf("after two ticks: got %d, want 2", got)
	}

	c.SetHeight(500)
	if got := c.Height(); got != 500 {
		t.Errorf("after SetHeight(500): got %d, want 500", got)
	}
}

func TestSystemHeight(t *testing.T) {
	plain := NewSystem()
	if got := plain.Height(); got != 0 {
		t.Errorf("system clock without height source: got %d, want 0", got)
	}

	withSource := NewSystemWithHeight(func() uint64 { return 42 })
	if got := withSource.Height(); got != 42 {
		t.Errorf("system clock with height source: got %d, want 42", got)
	}
}
