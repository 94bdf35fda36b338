// Package camera provides the perspective camera that frames the helix.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Camera holds the projection parameters and the viewport it maps to.
// It looks at the origin from a fixed distance along +Z.
type Camera struct {
	// Vertical field of view in degrees
	Fovy float32

	// Clip planes
	Near, Far float32

	// Distance from the origin along +Z
	Distance float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32
}

// New creates a camera for the given viewport.
func New(viewportW, viewportH, fovy, near, far, distance float32) *Camera {
	return &Camera{
		Fovy:      fovy,
		Near:      near,
		Far:       far,
		Distance:  distance,
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
}

// Aspect returns the viewport aspect ratio (width / height).
func (c *Camera) Aspect() float32 {
	if c.ViewportH == 0 {
		return 1
	}
	return c.ViewportW / c.ViewportH
}

// Resize updates viewport dimensions. The aspect ratio follows.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW <= 0 || viewportH <= 0 {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Position returns the camera position in world coordinates.
func (c *Camera) Position() mgl32.Vec3 {
	return mgl32.Vec3{0, 0, c.Distance}
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fovy), c.Aspect(), c.Near, c.Far)
}

// View returns the view matrix looking at the origin with +Y up.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
}

// Normalize converts a screen position to [0,1] viewport coordinates with
// y pointing up, the convention used for pointer uniforms.
func (c *Camera) Normalize(sx, sy float32) mgl64.Vec2 {
	if c.ViewportW == 0 || c.ViewportH == 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{
		float64(sx / c.ViewportW),
		1 - float64(sy/c.ViewportH),
	}
}

// WorldToScreen projects a world position to screen pixels.
// The second result is false when the point is behind the camera.
func (c *Camera) WorldToScreen(p mgl32.Vec3) (mgl32.Vec2, bool) {
	clip := c.Projection().Mul4(c.View()).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl32.Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl32.Vec2{
		(ndc.X() + 1) / 2 * c.ViewportW,
		(1 - ndc.Y()) / 2 * c.ViewportH,
	}, true
}
