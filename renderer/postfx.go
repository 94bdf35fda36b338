package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/helix/animation"
)

// PostFX runs the scene image through bloom and chromatic aberration.
//
// The scene is drawn into sceneTarget, the bloom pass composites it into
// bloomTarget, and the aberration pass draws bloomTarget to the screen.
type PostFX struct {
	bloom      *program
	aberration *program

	resolutionLoc int32

	sceneTarget rl.RenderTexture2D
	bloomTarget rl.RenderTexture2D

	width, height int
	initialized   bool
}

// NewPostFX creates the post-processing chain for a viewport.
func NewPostFX(width, height int) *PostFX {
	return &PostFX{width: width, height: height}
}

// Init compiles the pass shaders and allocates the render targets
// (must be called after raylib window is created).
func (p *PostFX) Init() error {
	if p.initialized {
		return nil
	}

	bloom, err := loadProgram("bloom")
	if err != nil {
		return err
	}
	aberration, err := loadProgram("aberration")
	if err != nil {
		bloom.unload()
		return err
	}
	p.bloom = bloom
	p.aberration = aberration
	p.resolutionLoc = bloom.location("resolution")

	p.allocate()
	p.initialized = true
	return nil
}

func (p *PostFX) allocate() {
	p.sceneTarget = rl.LoadRenderTexture(int32(p.width), int32(p.height))
	p.bloomTarget = rl.LoadRenderTexture(int32(p.width), int32(p.height))
	rl.SetTextureFilter(p.sceneTarget.Texture, rl.FilterBilinear)
	rl.SetTextureFilter(p.bloomTarget.Texture, rl.FilterBilinear)
	rl.SetShaderValue(p.bloom.shader, p.resolutionLoc, []float32{float32(p.width), float32(p.height)}, rl.ShaderUniformVec2)
}

func (p *PostFX) release() {
	rl.UnloadRenderTexture(p.sceneTarget)
	rl.UnloadRenderTexture(p.bloomTarget)
}

// Resize reallocates the render targets. Non-positive sizes are ignored.
func (p *PostFX) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == p.width && height == p.height) {
		return
	}
	p.width = width
	p.height = height
	if p.initialized {
		p.release()
		p.allocate()
	}
}

// BeginScene redirects drawing into the scene target.
func (p *PostFX) BeginScene() {
	rl.BeginTextureMode(p.sceneTarget)
	rl.ClearBackground(rl.Black)
}

// EndScene stops drawing into the scene target.
func (p *PostFX) EndScene() {
	rl.EndTextureMode()
}

// Present runs bloom then aberration and draws the result to the current framebuffer.
func (p *PostFX) Present(u animation.Uniforms) {
	p.bloom.apply(u)
	p.aberration.apply(u)

	src := flippedSource(p.width, p.height)

	rl.BeginTextureMode(p.bloomTarget)
	rl.ClearBackground(rl.Black)
	rl.BeginShaderMode(p.bloom.shader)
	rl.DrawTextureRec(p.sceneTarget.Texture, src, rl.Vector2{}, rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()

	rl.BeginShaderMode(p.aberration.shader)
	rl.DrawTextureRec(p.bloomTarget.Texture, src, rl.Vector2{}, rl.White)
	rl.EndShaderMode()
}

// Unload frees resources.
func (p *PostFX) Unload() {
	if p.initialized {
		p.release()
		p.bloom.unload()
		p.aberration.unload()
		p.initialized = false
	}
}
