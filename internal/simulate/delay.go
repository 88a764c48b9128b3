// Package simulate provides the artificial processing latency of the
// sandbox: real processors take time, so the simulator sleeps before
// answering.
package simulate

import (
	"math/rand"
	"time"
)

// Sleep blocks for a duration sampled uniformly from
// [delay-tolerance, delay+tolerance]. Tolerance is clamped to delay so
// the sample is never negative.
func Sleep(delay, tolerance time.Duration) {
	if tolerance > delay {
		tolerance = delay
	}
	low := delay - tolerance
	span := 2 * tolerance
	effective := low
	if span > 0 {
		effective += time.Duration(rand.Int63n(int64(span) + 1))
	}
	time.Sleep(effective)
}
