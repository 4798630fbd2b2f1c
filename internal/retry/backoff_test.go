package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBackoff_Grows(t *testing.T) {
	b := &Backoff{Initial: 10 * time.Millisecond, Max: 50 * time.Millisecond, Multiplier: 2}

	want := []time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		40 * time.Millisecond,
		50 * time.Millisecond,
		50 * time.Millisecond,
	}
	for i, w := range want {
		if got := b.Next(); got != w {
			t.Errorf("delay %d = %s, want %s", i+1, got, w)
		}
	}
	if b.Failures() != len(want) {
		t.Errorf("failures = %d, want %d", b.Failures(), len(want))
	}
}

func TestBackoff_Defaults(t *testing.T) {
	var b Backoff
	if got := b.Next(); got != time.Second {
		t.Errorf("first delay = %s, want 1s", got)
	}
	if got := b.Next(); got != 2*time.Second {
		t.Errorf("second delay = %s, want 2s", got)
	}
}

func TestBackoff_Reset(t *testing.T) {
	b := &Backoff{Initial: time.Millisecond}
	b.Next()
	b.Next()
	b.Reset()

	if b.Failures() != 0 {
		t.Errorf("failures after reset = %d", b.Failures())
	}
	if got := b.Next(); got != time.Millisecond {
		t.Errorf("delay after reset = %s, want 1ms", got)
	}
}

func TestBackoff_Jitter(t *testing.T) {
	base := 100 * time.Millisecond
	for i := 0; i < 100; i++ {
		b := &Backoff{Initial: base, Jitter: true}
		d := b.Next()
		if d < 75*time.Millisecond || d > 125*time.Millisecond {
			t.Fatalf("jittered delay %s outside ±25%% of %s", d, base)
		}
	}
}

func TestBackoff_WaitRespectsLimit(t *testing.T) {
	b := &Backoff{Initial: time.Minute}

	start := time.Now()
	if err := b.Wait(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Wait ignored its limit: %s", elapsed)
	}
}

func TestBackoff_WaitCancelled(t *testing.T) {
	b := &Backoff{Initial: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := b.Wait(ctx, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestBackoff_WaitNoTimeLeft(t *testing.T) {
	b := &Backoff{Initial: time.Second}
	if err := b.Wait(context.Background(), 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
