// Package animator plays a spline.Curve back onto a camera-like target.
//
// An Animator owns a normalized time cursor in [0,1]. The host advances it
// with Tick once per frame; every tick the cursor is remapped through the
// curve's arc-length table and per-segment easing, evaluated, and written to
// the Target.
package animator

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/dolly/geom"
	"github.com/pthm-cable/dolly/spline"
)

// DefaultDuration is the playback length, in seconds, used when Options.Duration is unset.
const DefaultDuration = 10.0

// finishTolerance absorbs accumulated float error in Once mode so a run of
// ticks summing to the duration always finishes.
const finishTolerance = 1e-9

var (
	ErrMissingCurve  = errors.New("animator: no curve")
	ErrMissingTarget = errors.New("animator: no target")
)

// Target receives the evaluated camera state. Orientation arrives either as
// an explicit rotation or as a world point to face, depending on the curve's
// view mode.
type Target interface {
	SetPosition(pos r3.Vec)
	SetFieldOfView(fov float64)
	SetOrientation(rot r3.Rotation)
	LookAt(point r3.Vec)
}

// Options configure a new Animator.
type Options struct {
	Mode     Mode
	Duration float64 // seconds for one pass over the path
	AutoPlay bool    // start in Playing instead of Stopped

	// Normalized applies the per-point easing before evaluation.
	Normalized bool
	// ConstantSpeed reparametrizes time by arc length before easing.
	ConstantSpeed bool
}

// Animator drives a Target along a Curve.
type Animator struct {
	Curve  *spline.Curve
	Target Target

	Mode          Mode
	Duration      float64
	Normalized    bool
	ConstantSpeed bool

	// Next is started once when this animator reaches its end, then cleared.
	Next *Animator

	time      float64
	state     State
	direction float64
	ended     bool // reached Finished during the current Tick
}

// New creates an animator at time 0.
func New(curve *spline.Curve, target Target, opts Options) *Animator {
	a := &Animator{
		Curve:         curve,
		Target:        target,
		Mode:          opts.Mode,
		Duration:      opts.Duration,
		Normalized:    opts.Normalized,
		ConstantSpeed: opts.ConstantSpeed,
		direction:     1,
	}
	if opts.AutoPlay {
		a.state = Playing
	}
	return a
}

// Play resumes or starts playback from the current time.
func (a *Animator) Play() {
	a.state = Playing
}

// Stop halts playback and rewinds to the start.
func (a *Animator) Stop() {
	a.state = Stopped
	a.time = 0
	a.direction = 1
}

// Pause halts playback, keeping the current time.
func (a *Animator) Pause() {
	if a.state == Playing {
		a.state = Paused
	}
}

// Seek moves the cursor to v, clamped to [0,1]. The state is unchanged.
func (a *Animator) Seek(v float64) {
	a.time = geom.Clamp01(v)
}

// Time returns the raw playback cursor.
func (a *Animator) Time() float64 { return a.time }

// State returns the playback state.
func (a *Animator) State() State { return a.state }

// Playing reports whether the animator advances on Tick.
func (a *Animator) Playing() bool { return a.state == Playing }

// Forward reports whether a PingPong animator is travelling towards the end.
func (a *Animator) Forward() bool { return a.direction >= 0 }

// Tick advances the cursor by dt seconds and writes the evaluated pose to
// the target. The cursor advances even when the write fails.
//
// A curve without points is not an error: the target keeps its last pose.
// Orientation errors skip only the orientation write.
func (a *Animator) Tick(dt float64) error {
	var err error
	a.ended = false
	if a.state == Playing {
		a.advance(dt)
		err = a.apply()
	}
	a.chain()
	return err
}

func (a *Animator) advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	step := dt / a.duration()

	switch a.Mode {
	case Loop:
		a.time += step
		if a.time >= 1 {
			a.time = math.Mod(a.time, 1)
		}
	case PingPong:
		a.time += step * a.direction
		if a.time >= 1 {
			a.direction = -1
		}
		if a.time <= 0 {
			a.direction = 1
		}
	default:
		a.time += step
		if a.time >= 1-finishTolerance {
			a.time = 1
			a.state = Finished
			a.ended = true
		}
	}
	a.time = geom.Clamp01(a.time)
}

func (a *Animator) duration() float64 {
	if a.Duration > 0 {
		return a.Duration
	}
	return DefaultDuration
}

// chain starts Next on the tick playback reaches the end in Once mode.
func (a *Animator) chain() {
	if a.Next == nil || !a.ended {
		return
	}
	next := a.Next
	a.Next = nil
	next.Play()
}

func (a *Animator) apply() error {
	if a.Curve == nil {
		return ErrMissingCurve
	}
	if a.Target == nil {
		return ErrMissingTarget
	}
	s, err := a.Evaluate(a.Remap(a.time))
	if errors.Is(err, spline.ErrEmptyPath) {
		return nil
	}
	a.Target.SetPosition(s.Position)
	a.Target.SetFieldOfView(s.FOV)
	if err != nil {
		return err
	}
	if s.Orientation.Mode == spline.UserControlled {
		a.Target.SetOrientation(s.Rotation)
	} else {
		a.Target.LookAt(s.Orientation.LookAt)
	}
	return nil
}

// Remap turns a playback time into the curve parameter that is evaluated,
// applying arc-length reparametrization and easing as configured.
func (a *Animator) Remap(t float64) float64 {
	if a.Curve == nil {
		return t
	}
	if a.ConstantSpeed {
		t = a.Curve.ArcLengthT(t)
	}
	if a.Normalized {
		t = a.Curve.NormalizedT(t)
	}
	return t
}

// Sample is the evaluated camera state at one curve parameter.
type Sample struct {
	T           float64 // curve parameter that was evaluated
	Position    r3.Vec
	FOV         float64
	Orientation spline.Orientation
	Rotation    r3.Rotation // identity when the orientation could not be resolved
}

// Evaluate samples the curve at parameter p without touching playback state.
// On an orientation error the returned sample still carries position and FOV.
func (a *Animator) Evaluate(p float64) (Sample, error) {
	s := Sample{T: p, Rotation: geom.Identity}
	if a.Curve == nil {
		return s, ErrMissingCurve
	}
	pos, err := a.Curve.Position(p)
	if err != nil {
		return s, err
	}
	s.Position = pos
	if s.FOV, err = a.Curve.FOV(p); err != nil {
		return s, err
	}
	s.Orientation, err = a.Curve.Orientation(p)
	if err != nil {
		return s, err
	}
	rot, ok := s.Orientation.Resolve()
	if !ok {
		return s, fmt.Errorf("%w: look-at point coincides with path position", spline.ErrDegenerateTangent)
	}
	s.Rotation = rot
	return s, nil
}

// Preview evaluates the path at editor time t, remapped the same way as
// playback. It never mutates the animator.
func (a *Animator) Preview(t float64) (Sample, error) {
	return a.Evaluate(a.Remap(geom.Clamp01(t)))
}

// PreviewGizmos returns the debug lines for editor time t.
func (a *Animator) PreviewGizmos(t float64, opts spline.GizmoOptions) []spline.Line {
	if a.Curve == nil {
		return nil
	}
	return a.Curve.Gizmos(a.Remap(geom.Clamp01(t)), opts)
}
