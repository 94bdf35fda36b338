// Package input provides pointer sources for the frame driver.
package input

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/helix/camera"
)

// Mouse reads the raylib cursor and normalizes it against the camera viewport.
// While the cursor is over a UI region the last position is held, so dragging
// a slider does not steer the helix.
type Mouse struct {
	cam     *camera.Camera
	blocked func(x, y float32) bool
	last    mgl64.Vec2
}

// NewMouse creates a mouse pointer source. blocked may be nil.
func NewMouse(cam *camera.Camera, blocked func(x, y float32) bool) *Mouse {
	return &Mouse{cam: cam, blocked: blocked}
}

// Pointer returns the latest normalized cursor position, y up.
func (m *Mouse) Pointer() mgl64.Vec2 {
	pos := rl.GetMousePosition()
	return m.sample(pos.X, pos.Y)
}

func (m *Mouse) sample(x, y float32) mgl64.Vec2 {
	if m.blocked != nil && m.blocked(x, y) {
		return m.last
	}
	m.last = m.cam.Normalize(x, y)
	return m.last
}

// Orbit is a scripted pointer circling the viewport center, used for
// headless runs. Each read advances the angle by Step radians.
type Orbit struct {
	Center mgl64.Vec2
	Radius float64
	Step   float64
	angle  float64
}

// NewOrbit creates an orbit around the viewport center.
func NewOrbit(radius, step float64) *Orbit {
	return &Orbit{Center: mgl64.Vec2{0.5, 0.5}, Radius: radius, Step: step}
}

// Pointer returns the current position on the circle and advances it.
func (o *Orbit) Pointer() mgl64.Vec2 {
	p := o.Center.Add(mgl64.Vec2{math.Cos(o.angle), math.Sin(o.angle)}.Mul(o.Radius))
	o.angle += o.Step
	return p
}
