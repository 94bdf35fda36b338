package loop

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// SystemClock measures wall time since it was created.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Elapsed returns seconds since start. time.Since uses the monotonic reading.
func (c *SystemClock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}

// StepClock advances by a fixed step each time it is read.
// Used for headless runs and tests.
type StepClock struct {
	Step float64
	t    float64
}

// NewStepClock creates a clock advancing by step seconds per read.
func NewStepClock(step float64) *StepClock {
	return &StepClock{Step: step}
}

// Elapsed returns the current time and advances it.
func (c *StepClock) Elapsed() float64 {
	t := c.t
	c.t += c.Step
	return t
}

// FixedPointer is a pointer source that always reports the same position.
type FixedPointer mgl64.Vec2

// Pointer returns the fixed position.
func (p FixedPointer) Pointer() mgl64.Vec2 {
	return mgl64.Vec2(p)
}
