package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseUpdate)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration")
	}

	if _, ok := stats.PhaseAvg[PhaseUpdate]; !ok {
		t.Error("expected update phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseRender]; !ok {
		t.Error("expected render phase to be tracked")
	}

	if pc.Samples() != 5 {
		t.Errorf("expected 5 samples, got %d", pc.Samples())
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseUpdate)
		pc.EndFrame()
	}

	if pc.Samples() != 5 {
		t.Errorf("expected window capped at 5 samples, got %d", pc.Samples())
	}

	stats := pc.Stats()
	if stats.MaxFrameDuration < stats.MinFrameDuration {
		t.Error("expected max frame duration >= min")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate with uneven phase durations
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(2 * time.Millisecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	fastPct := stats.PhasePct["fast"]
	slowPct := stats.PhasePct["slow"]

	if slowPct <= fastPct {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", slowPct, fastPct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgFrameDuration != 0 {
		t.Error("expected zero avg frame duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_PresentTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// First call establishes baseline
	pc.RecordPresent()
	time.Sleep(16 * time.Millisecond)
	pc.RecordPresent()

	stats := pc.Stats()

	if stats.PresentInterval < 15*time.Millisecond {
		t.Errorf("expected present interval >= 15ms, got %v", stats.PresentInterval)
	}

	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms frames, got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgFrameDuration: 2 * time.Millisecond,
		PhasePct:         map[string]float64{PhaseUpdate: 10, PhasePostFX: 55},
	}

	rec := stats.ToCSV(120)
	if rec.WindowEnd != 120 || rec.AvgFrameUS != 2000 {
		t.Errorf("unexpected csv record: %+v", rec)
	}
	if rec.UpdatePct != 10 || rec.PostFXPct != 55 || rec.RenderPct != 0 {
		t.Errorf("unexpected phase columns: %+v", rec)
	}
}

func TestPerfCollector_Budget(t *testing.T) {
	pc := NewPerfCollector(4)
	pc.SetBudget(60)
	if pc.Budget() != time.Second/60 {
		t.Fatalf("expected 60fps budget, got %v", pc.Budget())
	}
	pc.SetBudget(0)
	if pc.Budget() != 0 {
		t.Fatalf("expected cleared budget, got %v", pc.Budget())
	}

	// 1ns budget: every sleeping frame runs over
	pc.SetBudget(int(time.Second))
	for i := 0; i < 3; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseRender)
		time.Sleep(100 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.OverBudget != 3 {
		t.Errorf("expected 3 frames over budget, got %d", stats.OverBudget)
	}
	if stats.BudgetPct <= 100 {
		t.Errorf("expected budget pct above 100, got %v", stats.BudgetPct)
	}
	if stats.PhaseBudgetPct[PhaseRender] <= 100 {
		t.Errorf("expected render phase over budget, got %v", stats.PhaseBudgetPct[PhaseRender])
	}

	rec := stats.ToCSV(3)
	if rec.BudgetUS != 0 || rec.OverBudget != 3 || rec.RenderBudget != stats.PhaseBudgetPct[PhaseRender] {
		t.Errorf("unexpected budget columns: %+v", rec)
	}
}

func TestPerfCollector_NoBudget(t *testing.T) {
	pc := NewPerfCollector(4)
	pc.StartFrame()
	pc.StartPhase(PhaseUpdate)
	pc.EndFrame()

	stats := pc.Stats()
	if stats.OverBudget != 0 || stats.BudgetPct != 0 {
		t.Errorf("expected no budget accounting, got %+v", stats)
	}
	if len(stats.PhaseBudgetPct) != 0 {
		t.Errorf("expected empty phase budget map, got %v", stats.PhaseBudgetPct)
	}
}
