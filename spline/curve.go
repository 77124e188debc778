// Package spline evaluates camera paths: piecewise cubic Bezier curves
// through authored control points, with per-segment easing, per-point field
// of view and three ways of deriving orientation.
//
// A Curve with n points has n-1 segments, or n when it loops. Each segment
// owns an equal slice of the normalized parameter t in [0,1].
//
// Curves are not safe for concurrent use. Mutating methods must not be called
// while another evaluation of the same curve is in progress.
package spline

import (
	"fmt"
	"math"
	"slices"
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/dolly/geom"
)

// DefaultTangentEpsilon is the parameter step used to estimate the path tangent.
const DefaultTangentEpsilon = 0.05

// pointIDs hands out membership ids. Ids are unique across curves so a point
// from one curve is never mistaken for a member of another.
var pointIDs atomic.Uint64

// Curve is an ordered sequence of control points. Insertion order is path order.
//
// An empty curve is a valid authoring state. NormalizedT and ArcLengthT pass
// t through unchanged. The sampling methods report ErrEmptyPath so callers can
// tell "no pose" from a pose at the origin; Animator treats it as "hold the
// last pose".
type Curve struct {
	// Loop closes the path: the last segment runs from the last point back to the first.
	Loop bool

	// View selects how orientation is derived.
	View View

	// TangentEpsilon is the step used by FollowPath (0 = DefaultTangentEpsilon).
	TangentEpsilon float64

	// ArcSamples is the number of samples per segment of the arc-length
	// table (0 = defaultArcSamples).
	ArcSamples int

	points []*ControlPoint
	arc    *arcTable // nil until built or after invalidation
}

// NewCurve creates a curve from the given points.
func NewCurve(points ...*ControlPoint) (*Curve, error) {
	c := &Curve{}
	for _, p := range points {
		if err := c.Add(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Len returns the number of control points.
func (c *Curve) Len() int {
	return len(c.points)
}

// Point returns the i-th control point.
func (c *Curve) Point(i int) *ControlPoint {
	return c.points[i]
}

// Points returns the control points in path order. The slice is a copy.
func (c *Curve) Points() []*ControlPoint {
	return slices.Clone(c.points)
}

// Add appends p to the end of the path.
func (c *Curve) Add(p *ControlPoint) error {
	return c.Insert(len(c.points), p)
}

// Insert places p so that it becomes point i.
func (c *Curve) Insert(i int, p *ControlPoint) error {
	if p.Attached() {
		return ErrAttached
	}
	if i < 0 || i > len(c.points) {
		return fmt.Errorf("%w: insert at %d of %d", ErrIndex, i, len(c.points))
	}
	p.id = pointIDs.Add(1)
	c.points = slices.Insert(c.points, i, p)
	c.Invalidate()
	return nil
}

// IndexOf returns the position of p in the path, or -1 if p is not a member.
func (c *Curve) IndexOf(p *ControlPoint) int {
	if p == nil || p.id == 0 {
		return -1
	}
	for i, q := range c.points {
		if q.id == p.id {
			return i
		}
	}
	return -1
}

// IsLastPoint reports whether p is the final point of the path.
// Detached points report true.
func (c *Curve) IsLastPoint(p *ControlPoint) bool {
	i := c.IndexOf(p)
	return i < 0 || i == len(c.points)-1
}

// DeletePoint removes p from the path. Later points move down one index and
// the segment count drops by one.
//
// With relink set, the offsets of the two neighbours are rescaled so their
// handles keep the same proportion of the merged chord they now span.
func (c *Curve) DeletePoint(p *ControlPoint, relink bool) error {
	i := c.IndexOf(p)
	if i < 0 {
		return ErrDetached
	}
	if relink {
		c.relinkAround(i)
	}
	c.points = slices.Delete(c.points, i, i+1)
	p.id = 0
	c.Invalidate()
	return nil
}

func (c *Curve) relinkAround(i int) {
	n := len(c.points)
	prev, next := i-1, i+1
	if c.Loop {
		prev = (i - 1 + n) % n
		next = (i + 1) % n
	}
	if prev < 0 || next >= n || prev == i || next == i || prev == next {
		return
	}
	a, removed, b := c.points[prev], c.points[i], c.points[next]
	chord := r3.Norm(r3.Sub(b.Position, a.Position))
	if d := r3.Norm(r3.Sub(removed.Position, a.Position)); d > 0 {
		a.Offset = r3.Scale(chord/d, a.Offset)
	}
	if d := r3.Norm(r3.Sub(b.Position, removed.Position)); d > 0 {
		b.Offset = r3.Scale(chord/d, b.Offset)
	}
}

// Invalidate drops cached derived data. Call it after moving points or
// changing their offsets.
func (c *Curve) Invalidate() {
	c.arc = nil
}

// SegmentCount returns the number of Bezier segments.
func (c *Curve) SegmentCount() int {
	n := len(c.points)
	if c.Loop || n == 0 {
		return n
	}
	return n - 1
}

// locate finds the segment containing t, the index of its end point and the
// local fraction u. It requires SegmentCount() > 0.
func (c *Curve) locate(t float64) (i, j int, u float64) {
	s := c.SegmentCount()
	x := t * float64(s)
	i = int(math.Floor(x))
	if i < 0 {
		i = 0
	}
	if i >= s {
		i = s - 1
	}
	u = geom.Clamp01(x - float64(i))
	j = (i + 1) % len(c.points)
	return i, j, u
}

// NormalizedT applies the easing of the segment containing t and returns the
// eased global parameter. Paths without segments return t unchanged.
func (c *Curve) NormalizedT(t float64) float64 {
	s := c.SegmentCount()
	if s == 0 {
		return t
	}
	i, _, u := c.locate(t)
	eased := c.points[i].EasingOrDefault().Evaluate(u)
	return eased/float64(s) + float64(i)/float64(s)
}

// Position returns the point on the path at t, or ErrEmptyPath when the
// curve has no points.
func (c *Curve) Position(t float64) (r3.Vec, error) {
	if len(c.points) == 0 {
		return r3.Vec{}, ErrEmptyPath
	}
	return c.position(t), nil
}

func (c *Curve) position(t float64) r3.Vec {
	if len(c.points) == 1 {
		return c.points[0].Position
	}
	i, j, u := c.locate(t)
	a, b := c.points[i], c.points[j]
	return geom.CubicBezier(a.Position, a.ForwardHandle(), b.BackwardHandle(), b.Position, u)
}

// FOV returns the field of view at t, interpolated linearly between the
// segment's end points.
func (c *Curve) FOV(t float64) (float64, error) {
	switch len(c.points) {
	case 0:
		return 0, ErrEmptyPath
	case 1:
		return c.points[0].FOV, nil
	}
	i, j, u := c.locate(t)
	return geom.Lerp(c.points[i].FOV, c.points[j].FOV, u), nil
}

// Orientation evaluates the view at t according to View.Mode.
func (c *Curve) Orientation(t float64) (Orientation, error) {
	pos, err := c.Position(t)
	if err != nil {
		return Orientation{}, err
	}
	o := Orientation{Mode: c.View.Mode, From: pos, Rotation: geom.Identity}

	switch c.View.Mode {
	case LookAtTarget:
		if c.View.Target == nil {
			return o, ErrMissingLookAtTarget
		}
		o.LookAt = c.View.Target.Position()
	case FollowPath:
		dir, err := c.Tangent(t)
		if err != nil {
			return o, err
		}
		o.LookAt = r3.Add(pos, dir)
	default:
		o.Rotation = c.pointRotation(t)
	}
	return o, nil
}

// Rotation evaluates the view at t as a rotation.
func (c *Curve) Rotation(t float64) (r3.Rotation, error) {
	o, err := c.Orientation(t)
	if err != nil {
		return geom.Identity, err
	}
	rot, ok := o.Resolve()
	if !ok {
		return geom.Identity, fmt.Errorf("%w: look-at point coincides with path position", ErrDegenerateTangent)
	}
	return rot, nil
}

func (c *Curve) pointRotation(t float64) r3.Rotation {
	if len(c.points) == 1 {
		return geom.Normalize(c.points[0].Rotation)
	}
	i, j, u := c.locate(t)
	return geom.Slerp(c.points[i].Rotation, c.points[j].Rotation, u)
}

// Tangent estimates the path direction at t by central differences over
// TangentEpsilon. Looping paths wrap around the ends; open paths clamp.
// The result is not normalized.
func (c *Curve) Tangent(t float64) (r3.Vec, error) {
	if len(c.points) == 0 {
		return r3.Vec{}, ErrEmptyPath
	}
	eps := c.tangentEpsilon()
	minus, plus := t-eps, t+eps
	if c.Loop {
		if minus < 0 {
			minus++
		}
		if plus > 1 {
			plus--
		}
	} else {
		minus = geom.Clamp01(minus)
		plus = geom.Clamp01(plus)
	}
	dir := r3.Sub(c.position(plus), c.position(minus))
	if r3.Norm2(dir) == 0 {
		return r3.Vec{}, ErrDegenerateTangent
	}
	return dir, nil
}

func (c *Curve) tangentEpsilon() float64 {
	if c.TangentEpsilon > 0 {
		return c.TangentEpsilon
	}
	return DefaultTangentEpsilon
}

// PercentageAtPoint returns the global parameter at which the path passes
// through p.
func (c *Curve) PercentageAtPoint(p *ControlPoint) (float64, error) {
	i := c.IndexOf(p)
	if i < 0 {
		return 0, ErrDetached
	}
	s := c.SegmentCount()
	if s == 0 {
		return 0, nil
	}
	return float64(i) / float64(s), nil
}

// AlignRotation turns p to face along the path at its own position.
func (c *Curve) AlignRotation(p *ControlPoint) error {
	at, err := c.PercentageAtPoint(p)
	if err != nil {
		return err
	}
	eps := c.tangentEpsilon()
	dir := r3.Sub(c.position(geom.Clamp01(at+eps)), c.position(geom.Clamp01(at-eps)))
	rot, ok := geom.LookRotation(dir, geom.Up)
	if !ok {
		return ErrDegenerateTangent
	}
	p.Rotation = rot
	return nil
}

// Sample returns n+1 evenly spaced positions along the path, for drawing.
func (c *Curve) Sample(n int) []r3.Vec {
	if len(c.points) == 0 || n < 1 {
		return nil
	}
	out := make([]r3.Vec, n+1)
	for k := range out {
		out[k] = c.position(float64(k) / float64(n))
	}
	return out
}
