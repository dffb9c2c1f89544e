package simulation

import (
	"context"
	"time"

	"k8s.io/utils/clock"
)

// Clock supplies model time and cancellable sleeps
type Clock interface {
	Now() time.Time
	// Sleep blocks for d of model time or until ctx is done, in which case it
	// returns ctx.Err().
	Sleep(ctx context.Context, d time.Duration) error
}

// ScaledClock runs model time scale times faster than its base clock
type ScaledClock struct {
	base   clock.Clock
	origin time.Time
	scale  float64
}

// NewScaledClock creates a clock anchored at the base clock's current time.
// A scale of 1 (or any non-positive value) follows the base clock exactly.
func NewScaledClock(base clock.Clock, scale float64) *ScaledClock {
	if scale <= 0 {
		scale = 1
	}
	return &ScaledClock{base: base, origin: base.Now(), scale: scale}
}

func wallClock(scale float64) *ScaledClock {
	return NewScaledClock(clock.RealClock{}, scale)
}

// Now returns the current model time
func (c *ScaledClock) Now() time.Time {
	elapsed := c.base.Since(c.origin)
	return c.origin.Add(time.Duration(float64(elapsed) * c.scale))
}

// Sleep waits d of model time
func (c *ScaledClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	wall := time.Duration(float64(d) / c.scale)
	if wall <= 0 {
		return nil
	}

	timer := c.base.NewTimer(wall)
	defer timer.Stop()

	select {
	case <-timer.C():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
