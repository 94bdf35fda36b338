package telemetry

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/helix/animation"
	"github.com/pthm-cable/helix/loop"
)

// Collector accumulates per-frame motion within windows and produces WindowStats.
type Collector struct {
	windowFrames int64

	// Current window tracking
	windowStart int64
	frames      int
	updates     int
	paused      int
	skipped     int
	velocities  []float64
	travel      float64
	lastMouse   mgl64.Vec2
	haveMouse   bool
	last        animation.Uniforms
}

// NewCollector creates a collector that flushes every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{
		windowFrames: int64(windowFrames),
		velocities:   make([]float64, 0, windowFrames),
	}
}

// Record accounts for one frame. u is only read for updated frames.
func (c *Collector) Record(outcome loop.Outcome, u animation.Uniforms) {
	c.frames++
	switch outcome {
	case loop.Paused:
		c.paused++
		return
	case loop.Skipped:
		c.skipped++
		return
	}

	c.updates++
	c.velocities = append(c.velocities, u.Velocity)
	if c.haveMouse {
		c.travel += u.Mouse.Sub(c.lastMouse).Len()
	}
	c.lastMouse = u.Mouse
	c.haveMouse = true
	c.last = u
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(currentFrame int64) bool {
	return currentFrame-c.windowStart >= c.windowFrames
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentFrame int64) WindowStats {
	mean, std, p10, p50, p90 := ComputeDistribution(c.velocities)
	var vmax float64
	if len(c.velocities) > 0 {
		vmax = floats.Max(c.velocities)
	}

	stats := WindowStats{
		WindowStartFrame: c.windowStart,
		WindowEndFrame:   currentFrame,
		ElapsedSec:       c.last.Time,

		Frames:  c.frames,
		Updates: c.updates,
		Paused:  c.paused,
		Skipped: c.skipped,

		VelocityMean: mean,
		VelocityStd:  std,
		VelocityP10:  p10,
		VelocityP50:  p50,
		VelocityP90:  p90,
		VelocityMax:  vmax,

		PointerTravel: c.travel,
		RotationY:     c.last.RotationY,
	}

	// Reset for next window; pointer continuity is kept across windows
	c.windowStart = currentFrame
	c.frames = 0
	c.updates = 0
	c.paused = 0
	c.skipped = 0
	c.velocities = c.velocities[:0]
	c.travel = 0

	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() int64 {
	return c.windowFrames
}
