package field

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bounds is the axis-aligned extent of the field.
type Bounds struct {
	Min, Max [3]float64
}

// AttrStats describes the distribution of one auxiliary attribute.
type AttrStats struct {
	Mean, StdDev float64
}

// Summary describes a generated field for logging and sanity checks.
type Summary struct {
	Particles   int
	Columns     int
	Bounds      Bounds
	Random      AttrStats
	ColorRandom AttrStats
	Offset      AttrStats
}

// Summarize computes bounds and attribute statistics for the buffer.
func Summarize(b *Buffer) Summary {
	n := b.Len()
	s := Summary{Particles: n}
	if n == 0 {
		return s
	}
	s.Columns = (n + b.rowWidth - 1) / b.rowWidth

	axis := make([]float64, n)
	for a := 0; a < 3; a++ {
		for i := 0; i < n; i++ {
			axis[i] = float64(b.Positions[i*3+a])
		}
		s.Bounds.Min[a] = floats.Min(axis)
		s.Bounds.Max[a] = floats.Max(axis)
	}

	s.Random = attrStats(b.Randoms, axis)
	s.ColorRandom = attrStats(b.ColorRandoms, axis)
	s.Offset = attrStats(b.Offsets, axis)
	return s
}

// attrStats computes mean and standard deviation, reusing scratch for the float64 copy.
func attrStats(values []float32, scratch []float64) AttrStats {
	scratch = scratch[:len(values)]
	for i, v := range values {
		scratch[i] = float64(v)
	}
	mean, std := stat.MeanStdDev(scratch, nil)
	return AttrStats{Mean: mean, StdDev: std}
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("particles", s.Particles),
		slog.Int("columns", s.Columns),
		slog.Any("min", s.Bounds.Min),
		slog.Any("max", s.Bounds.Max),
		slog.Float64("random_mean", s.Random.Mean),
		slog.Float64("color_random_mean", s.ColorRandom.Mean),
		slog.Float64("offset_mean", s.Offset.Mean),
	)
}
