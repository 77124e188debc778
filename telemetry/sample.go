package telemetry

import (
	"github.com/pthm-cable/dolly/animator"
)

// SampleRow is a flat record of the evaluated camera state for CSV export.
type SampleRow struct {
	Tick  int32   `csv:"tick"`
	Time  float64 `csv:"time"` // simulation seconds
	Path  string  `csv:"path"`
	State string  `csv:"state"`
	T     float64 `csv:"t"` // playback cursor
	P     float64 `csv:"p"` // evaluated curve parameter
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	Z     float64 `csv:"z"`
	FOV   float64 `csv:"fov"`
	QW    float64 `csv:"qw"`
	QX    float64 `csv:"qx"`
	QY    float64 `csv:"qy"`
	QZ    float64 `csv:"qz"`
}

// NewSampleRow flattens an animator sample.
func NewSampleRow(tick int32, simTime float64, path string, state animator.State, cursor float64, s animator.Sample) SampleRow {
	return SampleRow{
		Tick:  tick,
		Time:  simTime,
		Path:  path,
		State: state.String(),
		T:     cursor,
		P:     s.T,
		X:     s.Position.X,
		Y:     s.Position.Y,
		Z:     s.Position.Z,
		FOV:   s.FOV,
		QW:    s.Rotation.Real,
		QX:    s.Rotation.Imag,
		QY:    s.Rotation.Jmag,
		QZ:    s.Rotation.Kmag,
	}
}
