// Package retry paces repeated attempts at an operation that keeps
// failing, such as accept on a listener that has run out of file
// descriptors.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Backoff hands out exponentially growing delays.  The zero value is
// usable and starts at one second.  A Backoff is not safe for
// concurrent use.
type Backoff struct {
	// Initial is the first delay (default 1s).
	Initial time.Duration
	// Max caps the delay (default 60s).
	Max time.Duration
	// Multiplier grows the delay after each failure (default 2.0).
	Multiplier float64
	// Jitter adds ±25% randomisation.
	Jitter bool

	next     time.Duration
	failures int
}

// Next returns the delay to wait after the current failure and advances
// the schedule.
func (b *Backoff) Next() time.Duration {
	if b.next == 0 {
		b.next = b.initial()
	}
	d := b.next
	b.failures++

	mult := b.Multiplier
	if mult <= 0 {
		mult = 2.0
	}
	b.next = time.Duration(float64(b.next) * mult)
	if max := b.max(); b.next > max {
		b.next = max
	}

	if b.Jitter {
		d = addJitter(d)
	}
	return d
}

// Failures is the number of delays handed out since the last Reset.
func (b *Backoff) Failures() int { return b.failures }

// Reset starts the schedule over after a success.
func (b *Backoff) Reset() {
	b.next = 0
	b.failures = 0
}

// Wait sleeps for Next(), but never longer than limit.  It returns
// ctx.Err() if the context ends first.
func (b *Backoff) Wait(ctx context.Context, limit time.Duration) error {
	d := b.Next()
	if limit < d {
		d = limit
	}
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (b *Backoff) initial() time.Duration {
	if b.Initial > 0 {
		return b.Initial
	}
	return time.Second
}

func (b *Backoff) max() time.Duration {
	if b.Max > 0 {
		return b.Max
	}
	return 60 * time.Second
}

// addJitter adds ±25% randomisation to a duration.
func addJitter(d time.Duration) time.Duration {
	quarter := float64(d) * 0.25
	delta := (rand.Float64() * 2 * quarter) - quarter
	result := float64(d) + delta
	return time.Duration(math.Max(result, float64(time.Millisecond)))
}
