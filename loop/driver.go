// Package loop drives the animation pipeline from an external frame callback.
//
// The driver never schedules itself: the host (the raylib window loop or a
// headless runner) calls Frame once per display refresh. Pausing only stops
// Frame from invoking the pipeline; resuming restores it on the next call.
package loop

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/helix/animation"
	"github.com/pthm-cable/helix/field"
	"github.com/pthm-cable/helix/settings"
)

// Renderer consumes the field once and the uniforms every frame.
type Renderer interface {
	Upload(buf *field.Buffer)
	Apply(u animation.Uniforms)
	Draw()
	Resize(width, height int)
}

// PointerSource delivers the latest normalized pointer position.
type PointerSource interface {
	Pointer() mgl64.Vec2
}

// SettingsSource delivers the current tunable parameters.
type SettingsSource interface {
	Settings() settings.Settings
}

// Clock reports monotonic seconds since start.
type Clock interface {
	Elapsed() float64
}

// Outcome reports what a Frame call did.
type Outcome uint8

const (
	Updated Outcome = iota // pipeline ran, uniforms applied and drawn
	Paused                 // driver paused, nothing happened
	Skipped                // input rejected, last good state kept
)

func (o Outcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case Paused:
		return "paused"
	case Skipped:
		return "skipped"
	}
	return "unknown"
}

// Driver owns the animation state and forwards each frame to the renderer.
type Driver struct {
	pipeline *animation.Pipeline
	renderer Renderer
	pointer  PointerSource
	settings SettingsSource
	clock    Clock

	params field.Params
	rng    *rand.Rand
	buffer *field.Buffer

	state    animation.State
	uniforms animation.Uniforms
	paused   bool

	frames   int64 // callbacks received
	updates  int64 // pipeline updates applied
	rejected int64 // frames skipped on invalid input
}

// Options configures a Driver.
type Options struct {
	Pipeline *animation.Pipeline
	Renderer Renderer
	Pointer  PointerSource
	Settings SettingsSource
	Clock    Clock
	Params   field.Params
	Rng      *rand.Rand
}

// NewDriver creates a driver in the running state.
func NewDriver(opts Options) (*Driver, error) {
	if opts.Pipeline == nil || opts.Renderer == nil || opts.Pointer == nil || opts.Settings == nil || opts.Clock == nil {
		return nil, errors.New("loop: pipeline, renderer, pointer, settings and clock are required")
	}
	return &Driver{
		pipeline: opts.Pipeline,
		renderer: opts.Renderer,
		pointer:  opts.Pointer,
		settings: opts.Settings,
		clock:    opts.Clock,
		params:   opts.Params,
		rng:      opts.Rng,
	}, nil
}

// Initialize generates the particle field and uploads it to the renderer.
func (d *Driver) Initialize(count, rowWidth int) (*field.Buffer, error) {
	buf, err := field.Generate(count, rowWidth, d.params, d.rng)
	if err != nil {
		return nil, fmt.Errorf("generating field: %w", err)
	}
	d.buffer = buf
	d.renderer.Upload(buf)
	return buf, nil
}

// Frame is the per-refresh callback. While running it samples input, updates
// the animation state and hands the uniforms to the renderer before drawing.
// While paused it does nothing.
func (d *Driver) Frame() Outcome {
	d.frames++
	if d.paused {
		return Paused
	}

	elapsed := d.clock.Elapsed()
	raw := d.pointer.Pointer()
	set := d.settings.Settings()

	u, next, err := d.pipeline.Update(d.state, elapsed, raw, set)
	if err != nil {
		// keep the last good state; the clock is expected to resync
		d.rejected++
		slog.Warn("frame skipped", "error", err, "frame", d.frames)
		return Skipped
	}

	d.state = next
	d.uniforms = u
	d.updates++

	d.renderer.Apply(u)
	d.renderer.Draw()
	return Updated
}

// Pause stops per-frame updates.
func (d *Driver) Pause() {
	d.paused = true
}

// Resume restarts per-frame updates from the next Frame call.
func (d *Driver) Resume() {
	d.paused = false
}

// Toggle switches between running and paused and reports the new running state.
func (d *Driver) Toggle() bool {
	d.paused = !d.paused
	return !d.paused
}

// Running reports whether Frame invokes the pipeline.
func (d *Driver) Running() bool {
	return !d.paused
}

// Resize forwards a viewport change to the renderer. Animation state is unaffected.
func (d *Driver) Resize(width, height int) {
	d.renderer.Resize(width, height)
}

// State returns the current animation state.
func (d *Driver) State() animation.State {
	return d.state
}

// Uniforms returns the uniforms of the last accepted frame.
func (d *Driver) Uniforms() animation.Uniforms {
	return d.uniforms
}

// Buffer returns the generated field, or nil before Initialize.
func (d *Driver) Buffer() *field.Buffer {
	return d.buffer
}

// Stats returns frame counters: callbacks, applied updates and rejected frames.
func (d *Driver) Stats() (frames, updates, rejected int64) {
	return d.frames, d.updates, d.rejected
}
