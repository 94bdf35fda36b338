// Package telemetry provides frame timing, motion statistics and run output.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated motion statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	ElapsedSec       float64 `csv:"elapsed"`

	// Frame accounting during window
	Frames  int `csv:"frames"`
	Updates int `csv:"updates"`
	Paused  int `csv:"paused"`
	Skipped int `csv:"skipped"`

	// Velocity distribution
	VelocityMean float64 `csv:"velocity_mean"`
	VelocityStd  float64 `csv:"velocity_std"`
	VelocityP10  float64 `csv:"velocity_p10"`
	VelocityP50  float64 `csv:"velocity_p50"`
	VelocityP90  float64 `csv:"velocity_p90"`
	VelocityMax  float64 `csv:"velocity_max"`

	// Distance the smoothed pointer covered
	PointerTravel float64 `csv:"pointer_travel"`

	// Rotation at window end, radians
	RotationY float64 `csv:"rotation_y"`
}

// Percentile returns the p-th quantile of a sorted slice, linearly
// interpolating the empirical distribution. p is clamped to [0, 1].
// Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(1, p))
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// ComputeDistribution calculates mean, population std, and percentiles of values.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("elapsed", s.ElapsedSec),
		slog.Int("frames", s.Frames),
		slog.Int("updates", s.Updates),
		slog.Int("paused", s.Paused),
		slog.Int("skipped", s.Skipped),
		slog.Float64("velocity_mean", s.VelocityMean),
		slog.Float64("velocity_std", s.VelocityStd),
		slog.Float64("velocity_p10", s.VelocityP10),
		slog.Float64("velocity_p50", s.VelocityP50),
		slog.Float64("velocity_p90", s.VelocityP90),
		slog.Float64("velocity_max", s.VelocityMax),
		slog.Float64("pointer_travel", s.PointerTravel),
		slog.Float64("rotation_y", s.RotationY),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"elapsed", s.ElapsedSec,
		"frames", s.Frames,
		"updates", s.Updates,
		"paused", s.Paused,
		"skipped", s.Skipped,
		"velocity_mean", s.VelocityMean,
		"velocity_p50", s.VelocityP50,
		"velocity_p90", s.VelocityP90,
		"velocity_max", s.VelocityMax,
		"pointer_travel", s.PointerTravel,
		"rotation_y", s.RotationY,
	)
}
