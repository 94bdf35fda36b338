package renderer

import (
	"runtime"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/helix/field"
	"github.com/pthm-cable/helix/scene"
)

// Half extent of a sprite in view units at point_size 1.
const baseSpriteSize = 0.004

// Corner texcoords of the two triangles forming one sprite.
var spriteCorners = [6][2]float32{
	{0, 0}, {1, 0}, {1, 1},
	{0, 0}, {1, 1}, {0, 1},
}

// spriteData is the CPU side of a point cloud mesh.
type spriteData struct {
	vertices  []float32 // xyz, six per particle
	texcoords []float32 // uv corner, six per particle
	colors    []uint8   // rgba packed attributes, six per particle
}

// parallelThreshold is the minimum particle count to split sprite
// building across workers.
const parallelThreshold = 4096

// buildSprites expands a particle buffer into sprite vertices.
func buildSprites(buf *field.Buffer) spriteData {
	n := buf.Len()
	d := spriteData{
		vertices:  make([]float32, n*6*3),
		texcoords: make([]float32, n*6*2),
		colors:    make([]uint8, n*6*4),
	}

	workers := runtime.GOMAXPROCS(0)
	if n < parallelThreshold || workers < 2 {
		d.fill(buf, 0, n)
		return d
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			d.fill(buf, start, end)
		}(start, end)
	}
	wg.Wait()
	return d
}

// fill writes the sprites of particles [start, end). Ranges never overlap.
func (d spriteData) fill(buf *field.Buffer, start, end int) {
	for i := start; i < end; i++ {
		p := buf.Position(i)
		r, g, b := packAttributes(buf.ColorRandoms[i], buf.Randoms[i], buf.Offsets[i])
		for k, c := range spriteCorners {
			v := i*6 + k
			copy(d.vertices[v*3:], p[:])
			d.texcoords[v*2], d.texcoords[v*2+1] = c[0], c[1]
			d.colors[v*4], d.colors[v*4+1], d.colors[v*4+2], d.colors[v*4+3] = r, g, b, 255
		}
	}
}

// packAttributes quantizes three [0,1) attributes into color channels.
func packAttributes(colorRandom, random, offset float32) (r, g, b uint8) {
	return quantize(colorRandom), quantize(random), quantize(offset)
}

func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// PointRenderer draws particle clouds as additive camera-facing sprites.
type PointRenderer struct {
	prog      *program
	material  rl.Material
	colorLocs [3]int32
	sizeLoc   int32

	colors    [3][3]float32
	pointSize float32

	meshes map[*field.Buffer]*rl.Mesh

	initialized bool
}

// NewPointRenderer creates a point renderer with the three palette colors.
func NewPointRenderer(colors [3][3]float32, pointSize float32) *PointRenderer {
	return &PointRenderer{
		colors:    colors,
		pointSize: pointSize,
		meshes:    make(map[*field.Buffer]*rl.Mesh),
	}
}

// Init compiles the sprite shader (must be called after raylib window is created).
func (r *PointRenderer) Init() error {
	if r.initialized {
		return nil
	}

	prog, err := loadProgram("points")
	if err != nil {
		return err
	}
	r.prog = prog
	r.material = rl.LoadMaterialDefault()
	r.material.Shader = prog.shader

	for i, name := range []string{"uColor1", "uColor2", "uColor3"} {
		r.colorLocs[i] = prog.location(name)
		rl.SetShaderValue(prog.shader, r.colorLocs[i], r.colors[i][:], rl.ShaderUniformVec3)
	}
	r.sizeLoc = prog.location("uPointSize")
	rl.SetShaderValue(prog.shader, r.sizeLoc, []float32{baseSpriteSize * r.pointSize}, rl.ShaderUniformFloat)

	r.initialized = true
	return nil
}

// upload builds and uploads the GPU mesh for a buffer once.
func (r *PointRenderer) upload(buf *field.Buffer) *rl.Mesh {
	if mesh, ok := r.meshes[buf]; ok {
		return mesh
	}

	d := buildSprites(buf)
	mesh := &rl.Mesh{
		VertexCount:   int32(buf.Len() * 6),
		TriangleCount: int32(buf.Len() * 2),
		Vertices:      &d.vertices[0],
		Texcoords:     &d.texcoords[0],
		Colors:        &d.colors[0],
	}
	rl.UploadMesh(mesh, false)
	r.meshes[buf] = mesh
	return mesh
}

// Draw renders one point cloud. View and projection must already be set.
func (r *PointRenderer) Draw(tr *scene.Transform, pc *scene.PointCloud, mat *scene.Material) error {
	if !r.initialized {
		if err := r.Init(); err != nil {
			return err
		}
	}
	if pc.Buffer == nil || pc.Buffer.Len() == 0 {
		return nil
	}

	mesh := r.upload(pc.Buffer)
	r.prog.apply(mat.Uniforms)

	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DrawMesh(*mesh, r.material, toMatrix(tr.Model()))
	rl.EndBlendMode()
	return nil
}

// Unload frees resources.
func (r *PointRenderer) Unload() {
	for buf, mesh := range r.meshes {
		rl.UnloadMesh(mesh)
		delete(r.meshes, buf)
	}
	if r.initialized {
		r.prog.unload()
		r.initialized = false
	}
}
