package animation

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// Uniform names as seen by the shaders and post-processing passes.
const (
	UniformProgress      = "uProgress"
	UniformTime          = "uTime"
	UniformMouse         = "uMouse"
	UniformRotationY     = "rotationY"
	UniformVelocity      = "uVelo"
	UniformBloomThresh   = "bloomThreshold"
	UniformBloomStrength = "bloomStrength"
	UniformBloomRadius   = "bloomRadius"
	UniformMaxDistort    = "uMaxDistort"
)

// Uniforms is the set of values handed to the renderer each frame.
type Uniforms struct {
	Progress  float64
	Time      float64
	Mouse     mgl64.Vec2
	RotationY float64
	Velocity  float64

	BloomThreshold       float64
	BloomStrength        float64
	BloomRadius          float64
	AberrationMaxDistort float64
}

// Named returns the uniforms keyed by name. Scalars have one component,
// the pointer has two.
func (u Uniforms) Named() map[string][]float32 {
	return map[string][]float32{
		UniformProgress:      {float32(u.Progress)},
		UniformTime:          {float32(u.Time)},
		UniformMouse:         {float32(u.Mouse[0]), float32(u.Mouse[1])},
		UniformRotationY:     {float32(u.RotationY)},
		UniformVelocity:      {float32(u.Velocity)},
		UniformBloomThresh:   {float32(u.BloomThreshold)},
		UniformBloomStrength: {float32(u.BloomStrength)},
		UniformBloomRadius:   {float32(u.BloomRadius)},
		UniformMaxDistort:    {float32(u.AberrationMaxDistort)},
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (u Uniforms) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("time", u.Time),
		slog.Float64("progress", u.Progress),
		slog.Float64("mouse_x", u.Mouse[0]),
		slog.Float64("mouse_y", u.Mouse[1]),
		slog.Float64("rotation_y", u.RotationY),
		slog.Float64("velocity", u.Velocity),
	)
}
