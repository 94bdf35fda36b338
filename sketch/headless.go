package sketch

import (
	"github.com/pthm-cable/helix/animation"
	"github.com/pthm-cable/helix/field"
	"github.com/pthm-cable/helix/loop"
	"github.com/pthm-cable/helix/scene"
	"github.com/pthm-cable/helix/telemetry"
)

// sceneRenderer keeps the scene current without touching the GPU.
type sceneRenderer struct {
	scene *scene.Scene
	draws int64
}

func (r *sceneRenderer) Upload(buf *field.Buffer)   { r.scene.AddPoints(buf) }
func (r *sceneRenderer) Apply(u animation.Uniforms) { r.scene.Apply(u) }
func (r *sceneRenderer) Draw()                      { r.draws++ }
func (r *sceneRenderer) Resize(width, height int)   {}

// Step runs one headless frame and reports its outcome.
func (s *Sketch) Step() loop.Outcome {
	s.perf.StartFrame()
	s.perf.StartPhase(telemetry.PhaseUpdate)
	outcome := s.driver.Frame()

	s.perf.StartPhase(telemetry.PhaseTrace)
	s.record(outcome)
	s.perf.EndFrame()
	return outcome
}

// Run steps the sketch until maxFrames callbacks have been processed.
// maxFrames <= 0 runs forever.
func (s *Sketch) Run(maxFrames int64) {
	for maxFrames <= 0 || s.frame < maxFrames {
		s.Step()
	}
}
