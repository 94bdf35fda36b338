// Package renderer draws the helix scene with raylib and runs the
// post-processing chain over it.
package renderer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/helix/animation"
	"github.com/pthm-cable/helix/camera"
	"github.com/pthm-cable/helix/field"
	"github.com/pthm-cable/helix/scene"
)

// Renderer draws every point cloud of a scene through the post chain.
type Renderer struct {
	cam    *camera.Camera
	scene  *scene.Scene
	points *PointRenderer
	post   *PostFX

	uniforms animation.Uniforms

	// OnPhase, if set, is called when drawing enters the scene or post pass.
	OnPhase func(phase string)
}

// Draw phases reported through OnPhase.
const (
	PhaseScene  = "scene"
	PhasePostFX = "postfx"
)

// New creates a renderer. Init must be called once the window exists.
func New(cam *camera.Camera, sc *scene.Scene, colors [3][3]float32, pointSize float32) *Renderer {
	return &Renderer{
		cam:    cam,
		scene:  sc,
		points: NewPointRenderer(colors, pointSize),
		post:   NewPostFX(int(cam.ViewportW), int(cam.ViewportH)),
	}
}

// Init compiles shaders and allocates render targets.
func (r *Renderer) Init() error {
	if err := r.points.Init(); err != nil {
		return err
	}
	return r.post.Init()
}

// Upload adds a particle buffer to the scene as a point cloud.
func (r *Renderer) Upload(buf *field.Buffer) {
	r.scene.AddPoints(buf)
}

// Apply stores the frame's uniforms in the scene.
func (r *Renderer) Apply(u animation.Uniforms) {
	r.uniforms = u
	r.scene.Apply(u)
}

// Draw renders the scene and post-processes it to the current framebuffer.
// Call between BeginDrawing and EndDrawing.
func (r *Renderer) Draw() {
	r.DrawScene()
	r.Present()
}

// DrawScene renders all point clouds into the scene target.
func (r *Renderer) DrawScene() {
	r.phase(PhaseScene)
	r.post.BeginScene()

	rl.DrawRenderBatchActive()
	rl.SetMatrixProjection(toMatrix(r.cam.Projection()))
	rl.SetMatrixModelview(toMatrix(r.cam.View()))

	r.scene.Each(func(tr *scene.Transform, pc *scene.PointCloud, mat *scene.Material) {
		if err := r.points.Draw(tr, pc, mat); err != nil {
			slog.Error("drawing point cloud", "error", err)
		}
	})

	r.post.EndScene()
}

// Present runs bloom and aberration over the scene target.
func (r *Renderer) Present() {
	r.phase(PhasePostFX)
	r.post.Present(r.uniforms)
}

func (r *Renderer) phase(name string) {
	if r.OnPhase != nil {
		r.OnPhase(name)
	}
}

// Resize updates the camera aspect and reallocates render targets.
func (r *Renderer) Resize(width, height int) {
	r.cam.Resize(float32(width), float32(height))
	r.post.Resize(width, height)
}

// Unload frees resources.
func (r *Renderer) Unload() {
	r.points.Unload()
	r.post.Unload()
}
