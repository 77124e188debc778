package animator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/dolly/geom"
	"github.com/pthm-cable/dolly/spline"
)

// recorder is a Target that remembers every write.
type recorder struct {
	positions []r3.Vec
	fovs      []float64
	rotations []r3.Rotation
	lookAts   []r3.Vec
}

func (r *recorder) SetPosition(p r3.Vec) { r.positions = append(r.positions, p) }
func (r *recorder) SetFieldOfView(f float64) { r.fovs = append(r.fovs, f) }
func (r *recorder) SetOrientation(q r3.Rotation) { r.rotations = append(r.rotations, q) }
func (r *recorder) LookAt(p r3.Vec) { r.lookAts = append(r.lookAts, p) }
func (r *recorder) writes() int { return len(r.positions) + len(r.fovs) + len(r.rotations) + len(r.lookAts) }
func (r *recorder) lastPosition() r3.Vec { return r.positions[len(r.positions)-1] }

// line builds a straight path along +X with the given number of points.
func line(t *testing.T, n int) *spline.Curve {
	t.Helper()
	c := &spline.Curve{}
	for i := 0; i < n; i++ {
		p := spline.NewControlPoint(r3.Vec{X: float64(i) * 10})
		p.Offset = r3.Vec{X: 10.0 / 3}
		p.FOV = 40 + 20*float64(i)
		require.NoError(t, c.Add(p))
	}
	return c
}

func TestNewInitialState(t *testing.T) {
	a := New(line(t, 2), &recorder{}, Options{})
	assert.Equal(t, Stopped, a.State())
	assert.Equal(t, 0.0, a.Time())
	assert.True(t, a.Forward())

	b := New(line(t, 2), &recorder{}, Options{AutoPlay: true})
	assert.Equal(t, Playing, b.State())
	assert.True(t, b.Playing())
}

func TestTransitions(t *testing.T) {
	a := New(line(t, 2), &recorder{}, Options{Duration: 1})
	a.Pause()
	assert.Equal(t, Stopped, a.State(), "pause only applies while playing")

	a.Play()
	require.NoError(t, a.Tick(0.25))
	a.Pause()
	assert.Equal(t, Paused, a.State())
	require.NoError(t, a.Tick(0.25))
	assert.InDelta(t, 0.25, a.Time(), 1e-12, "paused animators do not advance")

	a.Seek(0.6)
	assert.Equal(t, Paused, a.State())
	assert.Equal(t, 0.6, a.Time())
	a.Seek(4)
	assert.Equal(t, 1.0, a.Time())
	a.Seek(-1)
	assert.Equal(t, 0.0, a.Time())

	a.Seek(0.4)
	a.Play()
	assert.Equal(t, 0.4, a.Time(), "play keeps the cursor")

	a.Stop()
	assert.Equal(t, Stopped, a.State())
	assert.Equal(t, 0.0, a.Time())
}

func TestOnceFinishes(t *testing.T) {
	tests := []struct {
		name  string
		steps []float64
	}{
		{"single", []float64{2}},
		{"halves", []float64{1, 1}},
		{"frames", repeat(1.0/60, 120)},
		{"uneven", []float64{0.3, 0.7, 0.25, 0.75}},
		{"overshoot", []float64{1.5, 1.5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := New(line(t, 3), &recorder{}, Options{Mode: Once, Duration: 2, AutoPlay: true})
			for _, dt := range tc.steps {
				require.NoError(t, a.Tick(dt))
			}
			assert.Equal(t, 1.0, a.Time())
			assert.False(t, a.Playing())
			assert.Equal(t, Finished, a.State())
		})
	}
}

func TestOnceWritesFinalPose(t *testing.T) {
	rec := &recorder{}
	c := line(t, 3)
	a := New(c, rec, Options{Mode: Once, Duration: 1, AutoPlay: true})
	require.NoError(t, a.Tick(5))
	assert.Equal(t, c.Point(2).Position, rec.lastPosition())
	assert.Equal(t, 80.0, rec.fovs[len(rec.fovs)-1])

	n := rec.writes()
	require.NoError(t, a.Tick(1))
	assert.Equal(t, n, rec.writes(), "finished animators stop writing")
}

func TestLoopWraps(t *testing.T) {
	a := New(line(t, 2), &recorder{}, Options{Mode: Loop, Duration: 1, AutoPlay: true})
	for range 3 {
		require.NoError(t, a.Tick(0.5))
		assert.GreaterOrEqual(t, a.Time(), 0.0)
		assert.Less(t, a.Time(), 1.0)
	}
	assert.InDelta(t, 0.5, a.Time(), 1e-12)

	require.NoError(t, a.Tick(3.25))
	assert.InDelta(t, 0.75, a.Time(), 1e-12)
	assert.True(t, a.Playing())
}

func TestLoopNeverLeavesRange(t *testing.T) {
	a := New(line(t, 4), &recorder{}, Options{Mode: Loop, Duration: 0.7, AutoPlay: true})
	for _, dt := range []float64{0.1, 0.33, 1.9, 0.7, 0.0001, 2.1, 0.05} {
		require.NoError(t, a.Tick(dt))
		assert.GreaterOrEqual(t, a.Time(), 0.0)
		assert.Less(t, a.Time(), 1.0)
	}
}

func TestPingPongFlipsAtEnds(t *testing.T) {
	a := New(line(t, 2), &recorder{}, Options{Mode: PingPong, Duration: 1, AutoPlay: true})
	want := []struct {
		time    float64
		forward bool
	}{
		{0.25, true},
		{0.5, true},
		{0.75, true},
		{1, false},
		{0.75, false},
		{0.5, false},
		{0.25, false},
		{0, true},
		{0.25, true},
	}
	var got []float64
	for i, w := range want {
		require.NoError(t, a.Tick(0.25))
		assert.InDelta(t, w.time, a.Time(), 1e-12, "step %d", i)
		assert.Equal(t, w.forward, a.Forward(), "step %d", i)
		got = append(got, a.Time())
	}

	// The outbound and return legs mirror each other.
	for i := 0; i < 3; i++ {
		assert.InDelta(t, got[i], got[6-i], 1e-12)
	}
	assert.True(t, a.Playing())
}

func TestPingPongClampsOvershoot(t *testing.T) {
	a := New(line(t, 2), &recorder{}, Options{Mode: PingPong, Duration: 1, AutoPlay: true})
	require.NoError(t, a.Tick(1.7))
	assert.Equal(t, 1.0, a.Time())
	assert.False(t, a.Forward())

	a.Stop()
	assert.True(t, a.Forward(), "stop resets the direction")
}

func TestTickWritesUserRotation(t *testing.T) {
	c := line(t, 2)
	c.Point(1).Rotation = geom.Euler(0, 90, 0)
	rec := &recorder{}
	a := New(c, rec, Options{Duration: 2, AutoPlay: true})

	require.NoError(t, a.Tick(1))
	require.Len(t, rec.rotations, 1)
	assert.Empty(t, rec.lookAts)
	assert.True(t, geom.ApproxEqualRotation(geom.Euler(0, 45, 0), rec.rotations[0], 1e-9))
	assert.InDelta(t, 5.0, rec.positions[0].X, 1e-9)
	assert.InDelta(t, 50.0, rec.fovs[0], 1e-9)
}

func TestTickWritesLookAt(t *testing.T) {
	c := line(t, 2)
	target := spline.Point{X: 5, Z: 10}
	c.View = spline.View{Mode: spline.LookAtTarget, Target: target}
	rec := &recorder{}
	a := New(c, rec, Options{Duration: 2, AutoPlay: true})

	require.NoError(t, a.Tick(0.5))
	require.Len(t, rec.lookAts, 1)
	assert.Empty(t, rec.rotations)
	assert.Equal(t, r3.Vec(target), rec.lookAts[0])
}

func TestTickWritesFollowPath(t *testing.T) {
	c := line(t, 3)
	c.View = spline.View{Mode: spline.FollowPath}
	rec := &recorder{}
	a := New(c, rec, Options{Duration: 2, AutoPlay: true})

	require.NoError(t, a.Tick(0.5))
	require.Len(t, rec.lookAts, 1)
	ahead := r3.Sub(rec.lookAts[0], rec.positions[0])
	assert.Greater(t, ahead.X, 0.0)
	assert.InDelta(t, 0.0, ahead.Y, 1e-9)
	assert.InDelta(t, 0.0, ahead.Z, 1e-9)
}

func TestTickMissingCollaborators(t *testing.T) {
	rec := &recorder{}
	a := New(nil, rec, Options{Duration: 1, AutoPlay: true})
	assert.ErrorIs(t, a.Tick(0.5), ErrMissingCurve)
	assert.Zero(t, rec.writes())
	assert.InDelta(t, 0.5, a.Time(), 1e-12, "time still advances")

	b := New(line(t, 2), nil, Options{Duration: 1, AutoPlay: true})
	assert.ErrorIs(t, b.Tick(0.5), ErrMissingTarget)
	assert.NotPanics(t, func() { _ = b.Tick(0.5) })
}

func TestTickEmptyPathHoldsPose(t *testing.T) {
	rec := &recorder{}
	a := New(&spline.Curve{}, rec, Options{Duration: 1, AutoPlay: true})
	assert.NoError(t, a.Tick(0.25))
	assert.Zero(t, rec.writes())
}

func TestTickHoldsPoseAfterPointsRemoved(t *testing.T) {
	rec := &recorder{}
	c := line(t, 2)
	a := New(c, rec, Options{Duration: 4, AutoPlay: true})
	require.NoError(t, a.Tick(1))
	held := rec.lastPosition()
	writes := rec.writes()

	for c.Len() > 0 {
		require.NoError(t, c.DeletePoint(c.Point(0), false))
	}
	assert.NoError(t, a.Tick(1))
	assert.Equal(t, writes, rec.writes(), "target keeps its last pose")
	assert.Equal(t, held, rec.lastPosition())
	assert.Equal(t, 0.5, a.Time(), "playback keeps advancing")

	_, err := a.Preview(0.5)
	assert.ErrorIs(t, err, spline.ErrEmptyPath, "direct sampling still reports the empty path")
}

func TestTickOrientationErrorsSkipOnlyOrientation(t *testing.T) {
	tests := []struct {
		name  string
		curve func(t *testing.T) *spline.Curve
		want  error
	}{
		{
			name: "missing target",
			curve: func(t *testing.T) *spline.Curve {
				c := line(t, 2)
				c.View = spline.View{Mode: spline.LookAtTarget}
				return c
			},
			want: spline.ErrMissingLookAtTarget,
		},
		{
			name: "single point follow",
			curve: func(t *testing.T) *spline.Curve {
				c, err := spline.NewCurve(spline.NewControlPoint(r3.Vec{Y: 2}))
				require.NoError(t, err)
				c.View = spline.View{Mode: spline.FollowPath}
				return c
			},
			want: spline.ErrDegenerateTangent,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			a := New(tc.curve(t), rec, Options{Duration: 1, AutoPlay: true})
			assert.ErrorIs(t, a.Tick(0.25), tc.want)
			assert.Len(t, rec.positions, 1)
			assert.Len(t, rec.fovs, 1)
			assert.Empty(t, rec.rotations)
			assert.Empty(t, rec.lookAts)
		})
	}
}

func TestChainFiresOnce(t *testing.T) {
	first := New(line(t, 2), &recorder{}, Options{Duration: 1, AutoPlay: true})
	second := New(line(t, 2), &recorder{}, Options{Duration: 1})
	first.Next = second

	require.NoError(t, first.Tick(0.5))
	assert.False(t, second.Playing())
	assert.Same(t, second, first.Next)

	require.NoError(t, first.Tick(0.5))
	assert.True(t, second.Playing())
	assert.Nil(t, first.Next)

	second.Stop()
	require.NoError(t, first.Tick(0.5))
	assert.False(t, second.Playing(), "successor is only started once")
}

func TestChainIgnoresStopAndPause(t *testing.T) {
	first := New(line(t, 2), &recorder{}, Options{Duration: 1, AutoPlay: true})
	second := New(line(t, 2), &recorder{}, Options{Duration: 1})
	first.Next = second

	require.NoError(t, first.Tick(0.5))
	first.Pause()
	require.NoError(t, first.Tick(0.5))
	first.Stop()
	require.NoError(t, first.Tick(0.5))
	assert.False(t, second.Playing())

	// Seeking to the end is not playback reaching it.
	first.Play()
	first.Pause()
	first.Seek(1)
	require.NoError(t, first.Tick(0))
	assert.False(t, second.Playing())

	// Resuming from the end finishes on the next tick and starts the successor.
	first.Play()
	require.NoError(t, first.Tick(0))
	assert.Equal(t, Finished, first.State())
	assert.True(t, second.Playing())
}

func TestChainIgnoresSeekWithoutPlayback(t *testing.T) {
	first := New(line(t, 2), &recorder{}, Options{Duration: 1})
	second := New(line(t, 2), &recorder{}, Options{Duration: 1})
	first.Next = second

	first.Seek(1)
	require.NoError(t, first.Tick(0.5))
	assert.Equal(t, Stopped, first.State())
	assert.False(t, second.Playing())
	assert.Same(t, second, first.Next)
}

func TestPingPongPausedAtEndNeverChains(t *testing.T) {
	first := New(line(t, 2), &recorder{}, Options{Mode: PingPong, Duration: 1, AutoPlay: true})
	second := New(line(t, 2), &recorder{}, Options{Duration: 1})
	first.Next = second

	require.NoError(t, first.Tick(1))
	require.Equal(t, 1.0, first.Time())
	first.Pause()
	for range 3 {
		require.NoError(t, first.Tick(0.25))
	}
	assert.False(t, second.Playing())
	assert.Same(t, second, first.Next)
}

func TestLoopNeverChains(t *testing.T) {
	first := New(line(t, 2), &recorder{}, Options{Mode: Loop, Duration: 1, AutoPlay: true})
	second := New(line(t, 2), &recorder{}, Options{Duration: 1})
	first.Next = second
	for range 10 {
		require.NoError(t, first.Tick(0.3))
	}
	assert.False(t, second.Playing())
}

func TestRemap(t *testing.T) {
	c := line(t, 3)
	ease, err := spline.Preset("in-quad")
	require.NoError(t, err)
	c.Point(0).Easing = ease

	a := New(c, &recorder{}, Options{})
	assert.Equal(t, 0.25, a.Remap(0.25), "no remapping by default")

	a.Normalized = true
	assert.InDelta(t, 0.125, a.Remap(0.25), 1e-6)
	assert.InDelta(t, 0.75, a.Remap(0.75), 1e-12)

	var none Animator
	assert.Equal(t, 0.3, none.Remap(0.3))
}

func TestConstantSpeed(t *testing.T) {
	// Zero offsets make the raw parameter slow down at every point.
	c := &spline.Curve{}
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Add(spline.NewControlPoint(r3.Vec{X: float64(i) * 10})))
	}
	a := New(c, &recorder{}, Options{ConstantSpeed: true})

	s, err := a.Preview(0.25)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, s.Position.X, 0.05)

	a.ConstantSpeed = false
	s, err = a.Preview(0.25)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, s.Position.X, 1e-9, "the midpoint of a symmetric segment")
	s, err = a.Preview(0.125)
	require.NoError(t, err)
	assert.Less(t, s.Position.X, 2.0)
}

func TestPreviewDoesNotMutate(t *testing.T) {
	rec := &recorder{}
	a := New(line(t, 3), rec, Options{Duration: 1})
	a.Seek(0.3)

	s, err := a.Preview(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, s.Position.X, 1e-9)
	assert.InDelta(t, 60.0, s.FOV, 1e-9)
	assert.Equal(t, 0.3, a.Time())
	assert.Equal(t, Stopped, a.State())
	assert.Zero(t, rec.writes())

	lines := a.PreviewGizmos(2, spline.DefaultGizmoOptions())
	require.NotEmpty(t, lines)
	assert.InDelta(t, 20.0, lines[0].From.X, 1e-9, "preview time is clamped")
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{Once, Loop, PingPong} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, Once, m)

	_, err = ParseMode("bounce")
	assert.Error(t, err)
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
