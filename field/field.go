// Package field generates the static particle field of the helix.
//
// The field is computed once at startup and never changes afterwards. Each
// particle has a position on a double helix plus three uniform random values
// that the point shader uses for per-particle variation.
package field

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidConfiguration is returned when the requested field shape cannot be built.
var ErrInvalidConfiguration = errors.New("invalid field configuration")

// Default field shape.
const (
	DefaultCount    = 180000 // flat position floats, 60000 particles
	DefaultRowWidth = 100
)

// Params holds the step constants of the helix formula.
type Params struct {
	ColumnAngleStep float64 // turns per column
	RadiusStep      float64 // distance between neighbours on a rung
	HeightStep      float64 // vertical distance between rungs
	VerticalOffset  float64 // shift applied so the helix is centred
}

// DefaultParams returns the "dna" preset.
func DefaultParams() Params {
	return Params{
		ColumnAngleStep: 0.002,
		RadiusStep:      0.06,
		HeightStep:      0.01,
		VerticalOffset:  2.5,
	}
}

// Buffer holds per-particle attributes as parallel arrays, ready for upload.
// Its length is fixed at generation time.
type Buffer struct {
	Positions    []float32 // x, y, z per particle
	Randoms      []float32
	ColorRandoms []float32
	Offsets      []float32 // animation offset

	rowWidth int
}

// Particle is a single particle record read back from a Buffer.
type Particle struct {
	Index       int
	Row, Column int
	Position    mgl32.Vec3
	Random      float32
	ColorRandom float32
	Offset      float32
}

// Generate builds a field of count/3 particles laid out in rows of rowWidth.
// count is the number of flat position floats and must be a positive
// multiple of 3. The rng supplies the auxiliary attributes; a seeded source
// makes the result reproducible.
func Generate(count, rowWidth int, p Params, rng *rand.Rand) (*Buffer, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidConfiguration, count)
	}
	if count%3 != 0 {
		return nil, fmt.Errorf("%w: count %d is not a multiple of 3", ErrInvalidConfiguration, count)
	}
	if rowWidth <= 0 {
		return nil, fmt.Errorf("%w: row width must be positive, got %d", ErrInvalidConfiguration, rowWidth)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfiguration)
	}

	n := count / 3
	b := &Buffer{
		Positions:    make([]float32, count),
		Randoms:      make([]float32, n),
		ColorRandoms: make([]float32, n),
		Offsets:      make([]float32, n),
		rowWidth:     rowWidth,
	}

	center := float64(rowWidth) / 2
	for i := 0; i < n; i++ {
		b.Randoms[i] = rng.Float32()
		b.ColorRandoms[i] = rng.Float32()
		b.Offsets[i] = rng.Float32()

		row := i % rowWidth
		column := i / rowWidth

		theta := p.ColumnAngleStep * 2 * math.Pi * float64(column)
		radius := p.RadiusStep * (float64(row) - center)

		b.Positions[i*3] = float32(radius * math.Cos(theta))
		b.Positions[i*3+1] = float32(p.HeightStep*float64(column) - p.VerticalOffset)
		b.Positions[i*3+2] = float32(radius * math.Sin(theta))
	}

	return b, nil
}

// Len returns the number of particles.
func (b *Buffer) Len() int {
	return len(b.Randoms)
}

// RowWidth returns the rung width the buffer was generated with.
func (b *Buffer) RowWidth() int {
	return b.rowWidth
}

// Position returns the position of particle i.
func (b *Buffer) Position(i int) mgl32.Vec3 {
	return mgl32.Vec3{b.Positions[i*3], b.Positions[i*3+1], b.Positions[i*3+2]}
}

// Particle returns the full record of particle i.
func (b *Buffer) Particle(i int) Particle {
	return Particle{
		Index:       i,
		Row:         i % b.rowWidth,
		Column:      i / b.rowWidth,
		Position:    b.Position(i),
		Random:      b.Randoms[i],
		ColorRandom: b.ColorRandoms[i],
		Offset:      b.Offsets[i],
	}
}
