package animation

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/helix/settings"
)

func newPipeline(t *testing.T, cfg Config) *Pipeline {
	t.Helper()
	p, err := NewPipeline(cfg)
	require.NoError(t, err)
	return p
}

func TestUpdate_FirstFrame(t *testing.T) {
	p := newPipeline(t, DefaultConfig())

	u, s, err := p.Update(State{}, 0.5, mgl64.Vec2{1, 0}, settings.Defaults())
	require.NoError(t, err)

	assert.InDelta(t, 1.0, s.Speed, 1e-12)
	assert.InDelta(t, 0.1, u.Velocity, 1e-12, "published speed is taken before decay")
	assert.InDelta(t, 0.1*0.999, s.TargetSpeed, 1e-12)
	assert.InDelta(t, 0.1, u.Mouse[0], 1e-12)
	assert.InDelta(t, 0.0, u.Mouse[1], 1e-12)
	assert.Equal(t, mgl64.Vec2{1, 0}, s.Prev)
	assert.Equal(t, 0.5, s.Elapsed)
	assert.True(t, s.Started)
}

func TestUpdate_FollowConverges(t *testing.T) {
	p := newPipeline(t, DefaultConfig())
	target := mgl64.Vec2{0.8, 0.3}

	var s State
	var err error
	prevDist := s.Follow.Sub(target).Len()
	for i := 0; i < 200; i++ {
		_, s, err = p.Update(s, float64(i)/60, target, settings.Defaults())
		require.NoError(t, err)

		dist := s.Follow.Sub(target).Len()
		assert.Less(t, dist, prevDist, "follow must approach the pointer monotonically (frame %d)", i)
		prevDist = dist
	}

	assert.InDelta(t, target[0], s.Follow[0], 1e-6)
	assert.InDelta(t, target[1], s.Follow[1], 1e-6)
	assert.InDelta(t, 0.0, s.TargetSpeed, 1e-6)
}

func TestUpdate_SpeedDecayLaw(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpeedSmoothing = 0
	p := newPipeline(t, cfg)

	still := mgl64.Vec2{0.5, 0.5}
	s := State{Prev: still, Follow: still, TargetSpeed: 0.4}
	for k := 1; k <= 500; k++ {
		var err error
		_, s, err = p.Update(s, float64(k), still, settings.Defaults())
		require.NoError(t, err)
		assert.InDelta(t, 0.4*math.Pow(0.999, float64(k)), s.TargetSpeed, 1e-12, "frame %d", k)
	}
}

func TestUpdate_SpeedDecayWithSmoothing(t *testing.T) {
	p := newPipeline(t, DefaultConfig())

	still := mgl64.Vec2{0.2, 0.7}
	s := State{Prev: still, Follow: still, TargetSpeed: 0.4}
	for k := 1; k <= 50; k++ {
		var err error
		_, s, err = p.Update(s, float64(k), still, settings.Defaults())
		require.NoError(t, err)
		assert.InDelta(t, 0.4*math.Pow(0.9*0.999, float64(k)), s.TargetSpeed, 1e-12)
	}
}

func TestUpdate_RotationAndPassThrough(t *testing.T) {
	p := newPipeline(t, DefaultConfig())
	set := settings.Settings{
		Progress:             0.3,
		BloomThreshold:       1.2,
		BloomStrength:        0.4,
		BloomRadius:          1.9,
		AberrationMaxDistort: 42,
	}

	u, _, err := p.Update(State{}, 70, mgl64.Vec2{}, set)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, u.RotationY, 1e-12)
	assert.Equal(t, 70.0, u.Time)
	assert.Equal(t, set.Progress, u.Progress)
	assert.Equal(t, set.BloomThreshold, u.BloomThreshold)
	assert.Equal(t, set.BloomStrength, u.BloomStrength)
	assert.Equal(t, set.BloomRadius, u.BloomRadius)
	assert.Equal(t, set.AberrationMaxDistort, u.AberrationMaxDistort)
}

func TestUpdate_OutOfRangeSettingsPassUnchanged(t *testing.T) {
	p := newPipeline(t, DefaultConfig())
	set := settings.Settings{Progress: 7, AberrationMaxDistort: -3}

	u, _, err := p.Update(State{}, 1, mgl64.Vec2{}, set)
	require.NoError(t, err)
	assert.Equal(t, 7.0, u.Progress)
	assert.Equal(t, -3.0, u.AberrationMaxDistort)
}

func TestUpdate_InvalidElapsed(t *testing.T) {
	p := newPipeline(t, DefaultConfig())

	_, s, err := p.Update(State{}, 2, mgl64.Vec2{0.5, 0.5}, settings.Defaults())
	require.NoError(t, err)

	cases := []struct {
		name    string
		elapsed float64
	}{
		{"negative", -1},
		{"backwards", 1.5},
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, got, err := p.Update(s, tc.elapsed, mgl64.Vec2{0.1, 0.1}, settings.Defaults())
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
			assert.Equal(t, s, got, "state must be unchanged on error")
		})
	}

	// equal timestamps are not a regression
	_, _, err = p.Update(s, 2, mgl64.Vec2{0.1, 0.1}, settings.Defaults())
	assert.NoError(t, err)
}

func TestUpdate_FirstFrameAcceptsAnyNonNegativeTime(t *testing.T) {
	p := newPipeline(t, DefaultConfig())
	_, _, err := p.Update(State{Elapsed: 99}, 0, mgl64.Vec2{}, settings.Defaults())
	assert.NoError(t, err, "an unstarted state has no previous timestamp")
}

func TestNewPipeline_RejectsBadConfig(t *testing.T) {
	bad := []Config{
		{PointerSmoothing: 0.1, SpeedSmoothing: 0.1, SpeedDecay: 0.999, RotationPeriod: 0},
		{PointerSmoothing: 1.5, SpeedSmoothing: 0.1, SpeedDecay: 0.999, RotationPeriod: 35},
		{PointerSmoothing: 0.1, SpeedSmoothing: -0.1, SpeedDecay: 0.999, RotationPeriod: 35},
		{PointerSmoothing: 0.1, SpeedSmoothing: 0.1, SpeedDecay: -0.5, RotationPeriod: 35},
		{PointerSmoothing: 0.1, SpeedSmoothing: 0.1, SpeedDecay: 1.01, RotationPeriod: 35},
	}
	for _, cfg := range bad {
		_, err := NewPipeline(cfg)
		assert.Error(t, err, "%+v", cfg)
	}
}

func TestNewPipeline_SpeedDecayBounds(t *testing.T) {
	for _, decay := range []float64{0, 0.999, 1} {
		cfg := DefaultConfig()
		cfg.SpeedDecay = decay
		_, err := NewPipeline(cfg)
		assert.NoError(t, err, "decay %v", decay)
	}
}

func TestUniformsNamed(t *testing.T) {
	u := Uniforms{Progress: 0.5, Time: 3, Mouse: mgl64.Vec2{0.25, 0.75}, RotationY: 0.1, AberrationMaxDistort: 1.4}
	named := u.Named()

	assert.Len(t, named, 9)
	assert.Equal(t, []float32{0.5}, named[UniformProgress])
	assert.Equal(t, []float32{3}, named[UniformTime])
	assert.Equal(t, []float32{0.25, 0.75}, named[UniformMouse])
	assert.Equal(t, []float32{1.4}, named[UniformMaxDistort])
}
