package retry

import (
	"testing"
	"time"
)

// BenchmarkBackoff_Next measures schedule bookkeeping per failure.
func BenchmarkBackoff_Next(b *testing.B) {
	bo := &Backoff{Initial: time.Millisecond, Max: time.Second}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if bo.Failures() > 32 {
			bo.Reset()
		}
		bo.Next()
	}
}

// BenchmarkBackoff_NextJitter includes the jitter computation.
func BenchmarkBackoff_NextJitter(b *testing.B) {
	bo := &Backoff{Initial: time.Millisecond, Max: time.Second, Jitter: true}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if bo.Failures() > 32 {
			bo.Reset()
		}
		bo.Next()
	}
}
