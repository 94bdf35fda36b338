package field

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Determinism(t *testing.T) {
	a, err := Generate(3000, 100, DefaultParams(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := Generate(3000, 100, DefaultParams(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Equal(t, a.Positions, b.Positions)
	assert.Equal(t, a.Randoms, b.Randoms)
	assert.Equal(t, a.ColorRandoms, b.ColorRandoms)
	assert.Equal(t, a.Offsets, b.Offsets)
}

func TestGenerate_SeedOnlyAffectsAttributes(t *testing.T) {
	a, err := Generate(600, 100, DefaultParams(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	b, err := Generate(600, 100, DefaultParams(), rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	assert.Equal(t, a.Positions, b.Positions, "positions must not depend on the random source")
	assert.NotEqual(t, a.Randoms, b.Randoms)
}

func TestGenerate_ParticleCount(t *testing.T) {
	cases := []struct {
		count, row int
	}{
		{300, 100},
		{3, 1},
		{180000, 100},
		{999, 7},
	}
	for _, tc := range cases {
		b, err := Generate(tc.count, tc.row, DefaultParams(), rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		n := tc.count / 3
		assert.Equal(t, n, b.Len())
		assert.Len(t, b.Positions, tc.count)
		assert.Len(t, b.Randoms, n)
		assert.Len(t, b.ColorRandoms, n)
		assert.Len(t, b.Offsets, n)
	}
}

func TestGenerate_InvalidConfiguration(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cases := []struct {
		name       string
		count, row int
		rng        *rand.Rand
	}{
		{"zero count", 0, 100, rng},
		{"negative count", -3, 100, rng},
		{"not multiple of 3", 301, 100, rng},
		{"zero row width", 300, 0, rng},
		{"nil rng", 300, 100, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Generate(tc.count, tc.row, DefaultParams(), tc.rng)
			assert.Nil(t, b)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration), "got %v", err)
		})
	}
}

func TestGenerate_ExampleScenario(t *testing.T) {
	b, err := Generate(300, 100, DefaultParams(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Equal(t, 100, b.Len())

	first := b.Particle(0)
	assert.Equal(t, 0, first.Row)
	assert.Equal(t, 0, first.Column)
	assert.InDelta(t, -3.0, first.Position.X(), 1e-6)
	assert.InDelta(t, -2.5, first.Position.Y(), 1e-6)
	assert.InDelta(t, 0.0, first.Position.Z(), 1e-6)

	// theta is 0 on column 0, so x equals the radius
	last := b.Particle(99)
	assert.Equal(t, 99, last.Row)
	assert.Equal(t, 0, last.Column)
	assert.InDelta(t, 2.94, last.Position.X(), 1e-5)
	assert.InDelta(t, 0.0, last.Position.Z(), 1e-6)
}

func TestGenerate_FirstColumnAtBottom(t *testing.T) {
	p := DefaultParams()
	b, err := Generate(3000, 100, p, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		assert.InDelta(t, -p.VerticalOffset, b.Position(i).Y(), 1e-6, "particle %d", i)
	}
	for i := 100; i < b.Len(); i++ {
		assert.Greater(t, b.Position(i).Y(), float32(-p.VerticalOffset))
	}
}

func TestGenerate_HelixGeometry(t *testing.T) {
	p := DefaultParams()
	b, err := Generate(3*1000, 100, p, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	for _, i := range []int{0, 42, 137, 555, 999} {
		part := b.Particle(i)
		theta := p.ColumnAngleStep * 2 * math.Pi * float64(part.Column)
		radius := p.RadiusStep * (float64(part.Row) - 50)

		// distance from the vertical axis equals |radius|
		xz := math.Hypot(float64(part.Position.X()), float64(part.Position.Z()))
		assert.InDelta(t, math.Abs(radius), xz, 1e-5)
		assert.InDelta(t, radius*math.Cos(theta), float64(part.Position.X()), 1e-5)
		assert.InDelta(t, radius*math.Sin(theta), float64(part.Position.Z()), 1e-5)
		assert.InDelta(t, p.HeightStep*float64(part.Column)-p.VerticalOffset, float64(part.Position.Y()), 1e-5)
	}
}

func TestGenerate_OddRowWidthCentered(t *testing.T) {
	b, err := Generate(3*5, 5, DefaultParams(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// rung of 5 spans -2.5..1.5 radius steps
	assert.InDelta(t, -2.5*0.06, b.Position(0).X(), 1e-6)
	assert.InDelta(t, 1.5*0.06, b.Position(4).X(), 1e-6)
}

func TestGenerate_AttributesInUnitRange(t *testing.T) {
	b, err := Generate(30000, 100, DefaultParams(), rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	for i := 0; i < b.Len(); i++ {
		for _, v := range []float32{b.Randoms[i], b.ColorRandoms[i], b.Offsets[i]} {
			assert.GreaterOrEqual(t, v, float32(0))
			assert.Less(t, v, float32(1))
		}
	}
}

func TestPresetByName(t *testing.T) {
	p, err := PresetByName("")
	require.NoError(t, err)
	assert.Equal(t, DefaultParams(), p)

	p, err = PresetByName(PresetMolecule)
	require.NoError(t, err)
	assert.Equal(t, 0.1, p.ColumnAngleStep)
	assert.Equal(t, 0.3, p.RadiusStep)
	assert.Equal(t, DefaultParams().HeightStep, p.HeightStep)

	_, err = PresetByName("triple-helix")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	assert.Equal(t, []string{PresetDNA, PresetDNAOriginal, PresetEscalator, PresetMolecule}, PresetNames())
}

func TestParamsWithOverrides(t *testing.T) {
	radius := 0.03
	p := DefaultParams().WithOverrides(nil, &radius, nil, nil)
	assert.Equal(t, 0.002, p.ColumnAngleStep)
	assert.Equal(t, 0.03, p.RadiusStep)
	assert.Equal(t, 0.01, p.HeightStep)
	assert.Equal(t, 2.5, p.VerticalOffset)
}

func TestParamsWithOverridesKeepsZero(t *testing.T) {
	zero := 0.0
	p := DefaultParams().WithOverrides(nil, nil, nil, &zero)
	assert.Equal(t, 0.0, p.VerticalOffset)

	b, err := Generate(300, 100, p, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, float32(0), b.Position(0)[1])
}

func TestSummarize(t *testing.T) {
	b, err := Generate(30000, 100, DefaultParams(), rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	s := Summarize(b)
	assert.Equal(t, 10000, s.Particles)
	assert.Equal(t, 100, s.Columns)

	assert.InDelta(t, -2.5, s.Bounds.Min[1], 1e-6)
	assert.InDelta(t, 0.01*99-2.5, s.Bounds.Max[1], 1e-5)
	assert.InDelta(t, -3.0, s.Bounds.Min[0], 1e-5)

	// uniform [0,1): mean 0.5, stddev 1/sqrt(12)
	for _, a := range []AttrStats{s.Random, s.ColorRandom, s.Offset} {
		assert.InDelta(t, 0.5, a.Mean, 0.02)
		assert.InDelta(t, 1/math.Sqrt(12), a.StdDev, 0.02)
	}
}
