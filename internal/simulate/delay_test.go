package simulate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSleep_WithinBounds(t *testing.T) {
	delay := 20 * time.Millisecond
	tolerance := 10 * time.Millisecond

	start := time.Now()
	Sleep(delay, tolerance)
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, delay-tolerance)
	// generous upper bound: scheduler overhead on top of delay+tolerance
	assert.Less(t, elapsed, delay+tolerance+50*time.Millisecond)
}

func TestSleep_ZeroIsInstant(t *testing.T) {
	start := time.Now()
	Sleep(0, 0)
	assert.Less(t, time.Since(start), 10*time.Millisecond)
}

func TestSleep_ToleranceLargerThanDelay(t *testing.T) {
	// must not panic or sleep a negative duration
	start := time.Now()
	Sleep(5*time.Millisecond, time.Minute)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
