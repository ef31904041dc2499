package mvreg

import "testing"

func TestClockTickDoesNotAdvance(t *testing.T) {
	c := NewClock("a")
	first := c.Tick()
	second := c.Tick()
	if first != second {
		t.Fatalf("Tick is supposed to be a side-effect-free peek: got %v then %v", first, second)
	}
	if first.Counter != 1 {
		t.Fatalf("first Tick: got counter %d, want 1", first.Counter)
	}
}

func TestClockSyncAdvancesMonotonically(t *testing.T) {
	c := NewClock("a")
	c.Sync(5)
	if c.Value() != 5 {
		t.Fatalf("Sync(5) from 0: got %d, want 5", c.Value())
	}
	c.Sync(3) // lower than current: must not regress
	if c.Value() != 5 {
		t.Fatalf("Sync(3) from 5: got %d, want 5 (monotonic)", c.Value())
	}
	c.Sync(9)
	if c.Value() != 9 {
		t.Fatalf("Sync(9) from 5: got %d, want 9", c.Value())
	}
}

func TestClockTickObservesPriorSync(t *testing.T) {
	c := NewClock("a")
	c.Sync(10)
	next := c.Tick()
	if next.Counter != 11 {
		t.Fatalf("Tick after Sync(10): got counter %d, want 11", next.Counter)
	}
}
