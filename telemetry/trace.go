package telemetry

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/helix/animation"
	"github.com/pthm-cable/helix/field"
)

// FrameRecord is one row of the per-frame uniform trace.
type FrameRecord struct {
	Frame          int64   `csv:"frame"`
	Time           float64 `csv:"time"`
	Progress       float64 `csv:"progress"`
	MouseX         float64 `csv:"mouse_x"`
	MouseY         float64 `csv:"mouse_y"`
	RotationY      float64 `csv:"rotation_y"`
	Velocity       float64 `csv:"velocity"`
	BloomThreshold float64 `csv:"bloom_threshold"`
	BloomStrength  float64 `csv:"bloom_strength"`
	BloomRadius    float64 `csv:"bloom_radius"`
	MaxDistort     float64 `csv:"max_distort"`
}

// NewFrameRecord flattens a frame's uniforms.
func NewFrameRecord(frame int64, u animation.Uniforms) FrameRecord {
	return FrameRecord{
		Frame:          frame,
		Time:           u.Time,
		Progress:       u.Progress,
		MouseX:         u.Mouse[0],
		MouseY:         u.Mouse[1],
		RotationY:      u.RotationY,
		Velocity:       u.Velocity,
		BloomThreshold: u.BloomThreshold,
		BloomStrength:  u.BloomStrength,
		BloomRadius:    u.BloomRadius,
		MaxDistort:     u.AberrationMaxDistort,
	}
}

// ParticleRecord is one row of a particle field export.
type ParticleRecord struct {
	Index       int     `csv:"index"`
	Row         int     `csv:"row"`
	Column      int     `csv:"column"`
	X           float32 `csv:"x"`
	Y           float32 `csv:"y"`
	Z           float32 `csv:"z"`
	Random      float32 `csv:"random"`
	ColorRandom float32 `csv:"color_random"`
	Offset      float32 `csv:"offset"`
}

// WriteParticles writes every particle of buf as CSV, header included.
func WriteParticles(w io.Writer, buf *field.Buffer) error {
	records := make([]ParticleRecord, buf.Len())
	for i := range records {
		p := buf.Particle(i)
		records[i] = ParticleRecord{
			Index:       p.Index,
			Row:         p.Row,
			Column:      p.Column,
			X:           p.Position.X(),
			Y:           p.Position.Y(),
			Z:           p.Position.Z(),
			Random:      p.Random,
			ColorRandom: p.ColorRandom,
			Offset:      p.Offset,
		}
	}
	return gocsv.Marshal(records, w)
}
