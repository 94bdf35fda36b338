// Package animation turns raw per-frame input into smoothed uniform values.
//
// The pipeline is a pure function of (previous state, elapsed time, raw
// pointer, settings). State is passed in and returned by value so frames can
// be replayed and tested without a rendering context.
package animation

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/helix/settings"
)

// ErrInvalidInput is returned when a frame's clock value cannot be trusted.
var ErrInvalidInput = errors.New("invalid animation input")

// Config holds the smoothing constants.
type Config struct {
	PointerSmoothing float64 // weight of the raw pointer in the follow filter
	SpeedSmoothing   float64 // weight of the instant speed in the target speed filter
	SpeedDecay       float64 // per-frame multiplier applied to target speed
	RotationPeriod   float64 // seconds per radian of Y rotation
}

// DefaultConfig returns the standard smoothing constants.
func DefaultConfig() Config {
	return Config{
		PointerSmoothing: 0.1,
		SpeedSmoothing:   0.1,
		SpeedDecay:       0.999,
		RotationPeriod:   35,
	}
}

// State is the per-frame animation state carried between updates.
type State struct {
	Follow      mgl64.Vec2 // smoothed pointer
	Prev        mgl64.Vec2 // raw pointer of the previous frame
	Speed       float64    // instant pointer speed of the last frame
	TargetSpeed float64    // smoothed, decaying pointer speed
	Elapsed     float64    // elapsed time of the last accepted frame
	Started     bool       // at least one frame accepted
}

// Pipeline computes uniforms from input. It holds only immutable config.
type Pipeline struct {
	cfg Config
}

// NewPipeline validates cfg and creates a pipeline.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if cfg.RotationPeriod <= 0 {
		return nil, fmt.Errorf("rotation period must be positive, got %f", cfg.RotationPeriod)
	}
	if cfg.PointerSmoothing < 0 || cfg.PointerSmoothing > 1 {
		return nil, fmt.Errorf("pointer smoothing must be in [0,1], got %f", cfg.PointerSmoothing)
	}
	if cfg.SpeedSmoothing < 0 || cfg.SpeedSmoothing > 1 {
		return nil, fmt.Errorf("speed smoothing must be in [0,1], got %f", cfg.SpeedSmoothing)
	}
	if cfg.SpeedDecay < 0 || cfg.SpeedDecay > 1 {
		return nil, fmt.Errorf("speed decay must be in [0,1], got %f", cfg.SpeedDecay)
	}
	return &Pipeline{cfg: cfg}, nil
}

// Config returns the pipeline constants.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Update advances the state by one frame.
//
// elapsed is the monotonic time in seconds since start, raw the latest
// normalized pointer position. On error the input state is returned unchanged.
func (p *Pipeline) Update(s State, elapsed float64, raw mgl64.Vec2, set settings.Settings) (Uniforms, State, error) {
	if math.IsNaN(elapsed) || math.IsInf(elapsed, 0) || elapsed < 0 {
		return Uniforms{}, s, fmt.Errorf("%w: elapsed time %f", ErrInvalidInput, elapsed)
	}
	if s.Started && elapsed < s.Elapsed {
		return Uniforms{}, s, fmt.Errorf("%w: elapsed time went backwards (%f < %f)", ErrInvalidInput, elapsed, s.Elapsed)
	}

	next := s
	next.Speed = s.Prev.Sub(raw).Len()
	next.TargetSpeed -= p.cfg.SpeedSmoothing * (next.TargetSpeed - next.Speed)
	next.Follow[0] -= p.cfg.PointerSmoothing * (next.Follow[0] - raw[0])
	next.Follow[1] -= p.cfg.PointerSmoothing * (next.Follow[1] - raw[1])
	next.Prev = raw

	u := Uniforms{
		Progress:             set.Progress,
		Time:                 elapsed,
		Mouse:                next.Follow,
		RotationY:            elapsed / p.cfg.RotationPeriod,
		Velocity:             next.TargetSpeed,
		BloomThreshold:       set.BloomThreshold,
		BloomStrength:        set.BloomStrength,
		BloomRadius:          set.BloomRadius,
		AberrationMaxDistort: set.AberrationMaxDistort,
	}

	// decay is applied after the value has been published
	next.TargetSpeed *= p.cfg.SpeedDecay
	next.Elapsed = elapsed
	next.Started = true

	return u, next, nil
}
