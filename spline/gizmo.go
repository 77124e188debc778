package spline

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/dolly/geom"
)

// Line is a debug line segment in world space.
type Line struct {
	From, To r3.Vec
	Color    color.RGBA
}

// Gizmo colors.
var (
	CrossColor        = color.RGBA{R: 255, B: 255, A: 255}
	FrustumEdgeColor  = color.RGBA{G: 255, A: 153}
	FrustumFrameColor = color.RGBA{G: 255, A: 102}
	TargetRayColor    = color.RGBA{R: 255, A: 191}
)

// GizmoOptions sizes the debug geometry.
type GizmoOptions struct {
	CrossSize     float64 // half-length of each arm of the position cross
	FrustumLength float64 // depth of the per-point view frustum
	FrustumSpread float64 // half-width of the frustum at depth 1
	TargetReach   float64 // fraction of the distance to the target covered by the ray
}

// DefaultGizmoOptions returns the standard gizmo sizes.
func DefaultGizmoOptions() GizmoOptions {
	return GizmoOptions{
		CrossSize:     0.5,
		FrustumLength: 1.0,
		FrustumSpread: 0.25,
		TargetReach:   0.9,
	}
}

// Gizmos returns debug lines for the path at parameter t: an axis cross at
// the sampled position, a frustum at every point in UserControlled mode and a
// ray from every point towards the target in LookAtTarget mode. The lines are
// advisory only.
func (c *Curve) Gizmos(t float64, opts GizmoOptions) []Line {
	if len(c.points) == 0 {
		return nil
	}
	lines := make([]Line, 0, 6+8*len(c.points))

	at := c.position(geom.Clamp01(t))
	for _, axis := range []r3.Vec{geom.Up, geom.Right, geom.Forward} {
		arm := r3.Scale(opts.CrossSize, axis)
		lines = append(lines,
			Line{From: at, To: r3.Add(at, arm), Color: CrossColor},
			Line{From: at, To: r3.Sub(at, arm), Color: CrossColor},
		)
	}

	switch c.View.Mode {
	case UserControlled:
		for _, p := range c.points {
			lines = append(lines, frustum(p, opts)...)
		}
	case LookAtTarget:
		if c.View.Target == nil {
			break
		}
		target := c.View.Target.Position()
		for _, p := range c.points {
			ray := r3.Scale(opts.TargetReach, r3.Sub(target, p.Position))
			lines = append(lines, Line{From: p.Position, To: r3.Add(p.Position, ray), Color: TargetRayColor})
		}
	}
	return lines
}

// frustum draws four rays from the point along its view and the frame joining them.
func frustum(p *ControlPoint, opts GizmoOptions) []Line {
	s := opts.FrustumSpread
	rot := geom.Normalize(p.Rotation)
	corner := func(x, y float64) r3.Vec {
		local := r3.Scale(opts.FrustumLength, r3.Vec{X: x, Y: y, Z: 1})
		return r3.Add(p.Position, rot.Rotate(local))
	}
	tl := corner(-s, -s)
	tr := corner(s, -s)
	bl := corner(-s, s)
	br := corner(s, s)

	return []Line{
		{From: p.Position, To: tl, Color: FrustumEdgeColor},
		{From: p.Position, To: tr, Color: FrustumEdgeColor},
		{From: p.Position, To: bl, Color: FrustumEdgeColor},
		{From: p.Position, To: br, Color: FrustumEdgeColor},
		{From: bl, To: tl, Color: FrustumFrameColor},
		{From: tl, To: tr, Color: FrustumFrameColor},
		{From: tr, To: br, Color: FrustumFrameColor},
		{From: br, To: bl, Color: FrustumFrameColor},
	}
}
