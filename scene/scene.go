// Package scene holds the drawable objects of the sketch in an ECS world.
//
// The renderer queries point clouds from the scene each frame; the frame
// driver writes per-frame uniforms into their materials.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/helix/animation"
	"github.com/pthm-cable/helix/field"
)

// Transform places an object in the world.
type Transform struct {
	Position  mgl32.Vec3
	RotationY float32 // radians around the vertical axis
}

// Model returns the object's model matrix.
func (t Transform) Model() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).Mul4(mgl32.HomogRotate3DY(t.RotationY))
}

// PointCloud references an immutable particle buffer.
type PointCloud struct {
	Buffer *field.Buffer
}

// Material holds the uniform values last applied to an object.
type Material struct {
	Uniforms animation.Uniforms
	Frame    int64 // number of uniform updates received
}

// Scene wraps the ECS world and the mappers used to access point clouds.
type Scene struct {
	world *ecs.World

	pointsMapper *ecs.Map3[Transform, PointCloud, Material]
	pointsFilter *ecs.Filter3[Transform, PointCloud, Material]

	count int
}

// New creates an empty scene.
func New() *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:        world,
		pointsMapper: ecs.NewMap3[Transform, PointCloud, Material](world),
		pointsFilter: ecs.NewFilter3[Transform, PointCloud, Material](world),
	}
}

// AddPoints adds a point cloud at the origin and returns its entity.
func (s *Scene) AddPoints(buf *field.Buffer) ecs.Entity {
	tr := Transform{}
	pc := PointCloud{Buffer: buf}
	mat := Material{}
	s.count++
	return s.pointsMapper.NewEntity(&tr, &pc, &mat)
}

// Len returns the number of point clouds in the scene.
func (s *Scene) Len() int {
	return s.count
}

// Apply writes the frame's uniforms into every point cloud.
// Rotation is carried on the transform, everything else on the material.
func (s *Scene) Apply(u animation.Uniforms) {
	query := s.pointsFilter.Query()
	for query.Next() {
		tr, _, mat := query.Get()
		tr.RotationY = float32(u.RotationY)
		mat.Uniforms = u
		mat.Frame++
	}
}

// Each calls fn for every point cloud.
func (s *Scene) Each(fn func(tr *Transform, pc *PointCloud, mat *Material)) {
	query := s.pointsFilter.Query()
	for query.Next() {
		tr, pc, mat := query.Get()
		fn(tr, pc, mat)
	}
}

// Get returns the components of a point cloud entity.
func (s *Scene) Get(e ecs.Entity) (*Transform, *PointCloud, *Material) {
	return s.pointsMapper.Get(e)
}
