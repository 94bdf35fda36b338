package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one frame.
const (
	PhaseInput  = "input"
	PhaseUpdate = "update"
	PhaseScene  = "scene"
	PhaseRender = "render"
	PhasePostFX = "postfx"
	PhaseUI     = "ui"
	PhaseTrace  = "trace"
)

// phases lists the known phases in frame order.
var phases = []string{PhaseInput, PhaseUpdate, PhaseScene, PhaseRender, PhasePostFX, PhaseUI, PhaseTrace}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Time one frame may take at the target frame rate (0 = unbounded)
	budget time.Duration

	// Wall time between presented frames (graphics mode)
	lastPresent     time.Time
	presentInterval time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// SetBudget sets the per-frame time budget from a target frame rate.
// A non-positive fps clears the budget.
func (p *PerfCollector) SetBudget(fps int) {
	if fps <= 0 {
		p.budget = 0
		return
	}
	p.budget = time.Second / time.Duration(fps)
}

// Budget returns the per-frame time budget, zero when unset.
func (p *PerfCollector) Budget() time.Duration {
	return p.budget
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordPresent records the interval between presented frames.
func (p *PerfCollector) RecordPresent() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.presentInterval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// Samples returns the number of frames in the current window.
func (p *PerfCollector) Samples() int {
	return p.sampleCount
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Frame work timing
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame time
	PhasePct map[string]float64

	// Frames per second the work alone would allow
	FramesPerSecond float64

	// Frame budget and how much of it each phase spends on average.
	// OverBudget counts frames in the window whose work exceeded Budget.
	Budget         time.Duration
	BudgetPct      float64
	PhaseBudgetPct map[string]float64
	OverBudget     int

	// Presented frame interval (graphics mode)
	PresentInterval time.Duration
	FPS             float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.presentInterval > 0 {
		fps = float64(time.Second) / float64(p.presentInterval)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:        make(map[string]time.Duration),
			PhasePct:        make(map[string]float64),
			PhaseBudgetPct:  make(map[string]float64),
			Budget:          p.budget,
			PresentInterval: p.presentInterval,
			FPS:             fps,
		}
	}

	var total time.Duration
	var minFrame, maxFrame time.Duration
	var over int
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration

		if i == 0 || s.FrameDuration < minFrame {
			minFrame = s.FrameDuration
		}
		if s.FrameDuration > maxFrame {
			maxFrame = s.FrameDuration
		}
		if p.budget > 0 && s.FrameDuration > p.budget {
			over++
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	phaseBudget := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
		if p.budget > 0 {
			phaseBudget[phase] = float64(phaseAvg[phase]) / float64(p.budget) * 100
		}
	}

	var budgetPct float64
	if p.budget > 0 {
		budgetPct = float64(avg) / float64(p.budget) * 100
	}

	var framesPerSec float64
	if avg > 0 {
		framesPerSec = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgFrameDuration: avg,
		MinFrameDuration: minFrame,
		MaxFrameDuration: maxFrame,
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		FramesPerSecond:  framesPerSec,
		Budget:           p.budget,
		BudgetPct:        budgetPct,
		PhaseBudgetPct:   phaseBudget,
		OverBudget:       over,
		PresentInterval:  p.presentInterval,
		FPS:              fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrameDuration.Microseconds(),
		"min_frame_us", s.MinFrameDuration.Microseconds(),
		"max_frame_us", s.MaxFrameDuration.Microseconds(),
		"frames_per_sec", int(s.FramesPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	if s.Budget > 0 {
		attrs = append(attrs, "budget_pct", int(s.BudgetPct*10)/10.0, "over_budget", s.OverBudget)
	}

	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrameDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameDuration.Microseconds()),
		slog.Float64("frames_per_sec", s.FramesPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	if s.Budget > 0 {
		attrs = append(attrs,
			slog.Int64("budget_us", s.Budget.Microseconds()),
			slog.Float64("budget_pct", s.BudgetPct),
			slog.Int("over_budget", s.OverBudget),
		)
	}

	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}
	for phase, pct := range s.PhaseBudgetPct {
		attrs = append(attrs, slog.Float64(phase+"_budget_pct", pct))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	MinFrameUS   int64   `csv:"min_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	FramesPerSec float64 `csv:"frames_per_sec"`
	FPS          float64 `csv:"fps"`
	BudgetUS     int64   `csv:"budget_us"`
	BudgetPct    float64 `csv:"budget_pct"`
	OverBudget   int     `csv:"over_budget"`
	UpdateBudget float64 `csv:"update_budget_pct"`
	RenderBudget float64 `csv:"render_budget_pct"`
	PostFXBudget float64 `csv:"postfx_budget_pct"`
	InputPct     float64 `csv:"input_pct"`
	UpdatePct    float64 `csv:"update_pct"`
	ScenePct     float64 `csv:"scene_pct"`
	RenderPct    float64 `csv:"render_pct"`
	PostFXPct    float64 `csv:"postfx_pct"`
	UIPct        float64 `csv:"ui_pct"`
	TracePct     float64 `csv:"trace_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgFrameUS:   s.AvgFrameDuration.Microseconds(),
		MinFrameUS:   s.MinFrameDuration.Microseconds(),
		MaxFrameUS:   s.MaxFrameDuration.Microseconds(),
		FramesPerSec: s.FramesPerSecond,
		FPS:          s.FPS,
		BudgetUS:     s.Budget.Microseconds(),
		BudgetPct:    s.BudgetPct,
		OverBudget:   s.OverBudget,
		UpdateBudget: s.PhaseBudgetPct[PhaseUpdate],
		RenderBudget: s.PhaseBudgetPct[PhaseRender],
		PostFXBudget: s.PhaseBudgetPct[PhasePostFX],
		InputPct:     s.PhasePct[PhaseInput],
		UpdatePct:    s.PhasePct[PhaseUpdate],
		ScenePct:     s.PhasePct[PhaseScene],
		RenderPct:    s.PhasePct[PhaseRender],
		PostFXPct:    s.PhasePct[PhasePostFX],
		UIPct:        s.PhasePct[PhaseUI],
		TracePct:     s.PhasePct[PhaseTrace],
	}
}
