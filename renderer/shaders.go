package renderer

import (
	"embed"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/helix/animation"
)

//go:embed shaders/*.vs shaders/*.fs
var shaderFS embed.FS

// ShaderNames lists the embedded shader programs.
var ShaderNames = []string{"points", "bloom", "aberration"}

// ShaderSource returns the vertex and fragment source of an embedded program.
// Programs without a vertex stage return an empty vertex source so raylib
// falls back to its default.
func ShaderSource(name string) (vs, fs string, err error) {
	data, err := shaderFS.ReadFile("shaders/" + name + ".fs")
	if err != nil {
		return "", "", fmt.Errorf("unknown shader %q: %w", name, err)
	}
	fs = string(data)
	if data, err := shaderFS.ReadFile("shaders/" + name + ".vs"); err == nil {
		vs = string(data)
	}
	return vs, fs, nil
}

// program is a loaded shader with the locations of the frame uniforms it declares.
type program struct {
	shader rl.Shader
	locs   map[string]int32
}

// loadProgram compiles an embedded shader. Must be called after the window exists.
func loadProgram(name string) (*program, error) {
	vs, fs, err := ShaderSource(name)
	if err != nil {
		return nil, err
	}
	shader := rl.LoadShaderFromMemory(vs, fs)
	if !rl.IsShaderValid(shader) {
		return nil, fmt.Errorf("compiling shader %q", name)
	}

	p := &program{shader: shader, locs: make(map[string]int32)}
	for uniform := range (animation.Uniforms{}).Named() {
		if loc := rl.GetShaderLocation(shader, uniform); loc >= 0 {
			p.locs[uniform] = loc
		}
	}
	return p, nil
}

// location returns a uniform location, -1 when the program does not use it.
func (p *program) location(name string) int32 {
	return rl.GetShaderLocation(p.shader, name)
}

// apply uploads every frame uniform this program declares.
func (p *program) apply(u animation.Uniforms) {
	for name, value := range u.Named() {
		loc, ok := p.locs[name]
		if !ok {
			continue
		}
		rl.SetShaderValue(p.shader, loc, value, uniformType(len(value)))
	}
}

func (p *program) unload() {
	rl.UnloadShader(p.shader)
}

// uniformType maps a component count to the raylib uniform type.
func uniformType(components int) rl.ShaderUniformDataType {
	switch components {
	case 2:
		return rl.ShaderUniformVec2
	case 3:
		return rl.ShaderUniformVec3
	case 4:
		return rl.ShaderUniformVec4
	default:
		return rl.ShaderUniformFloat
	}
}
