package debounce

import (
	"testing"
	"time"
)

const testInterval = 30 * time.Millisecond

func recv(t *testing.T, d *Debouncer) string {
	t.Helper()
	select {
	case v := <-d.C():
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a debounced value")
		return ""
	}
}

func expectQuiet(t *testing.T, d *Debouncer) {
	t.Helper()
	select {
	case v := <-d.C():
		t.Fatalf("unexpected emission %q", v)
	case <-time.After(4 * testInterval):
	}
}

func TestBurstEmitsOnlyLastValue(t *testing.T) {
	d := New(testInterval)
	defer d.Close()

	d.Send("j")
	d.Send("ja")
	d.Send("jan")
	d.Send("jane")

	if got := recv(t, d); got != "jane" {
		t.Fatalf("got %q, want the last value of the burst", got)
	}
	expectQuiet(t, d)
}

func TestDuplicateSuppressed(t *testing.T) {
	d := New(testInterval)
	defer d.Close()

	d.Send("jane")
	if got := recv(t, d); got != "jane" {
		t.Fatalf("got %q", got)
	}

	// Same value again after the quiet period: no second emission.
	d.Send("jane")
	expectQuiet(t, d)

	// A different value still goes through.
	d.Send("doe")
	if got := recv(t, d); got != "doe" {
		t.Fatalf("got %q", got)
	}
}

func TestEmptyValueEmitted(t *testing.T) {
	d := New(testInterval)
	defer d.Close()

	d.Send("x")
	if got := recv(t, d); got != "x" {
		t.Fatalf("got %q", got)
	}

	// Clearing the input is a real change and must be delivered.
	d.Send("")
	if got := recv(t, d); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestCloseClosesOutput(t *testing.T) {
	d := New(testInterval)
	d.Close()

	select {
	case _, ok := <-d.C():
		if ok {
			t.Fatal("expected closed channel, got a value")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("output channel never closed")
	}
}

func TestZeroIntervalUsesDefault(t *testing.T) {
	d := New(0)
	defer d.Close()
	if d.interval != DefaultInterval {
		t.Fatalf("interval = %v, want %v", d.interval, DefaultInterval)
	}
}
