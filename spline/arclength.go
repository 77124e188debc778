package spline

import (
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/dolly/geom"
)

const defaultArcSamples = 32

// arcTable maps the fraction of travelled arc length back to the curve parameter.
type arcTable struct {
	length float64
	inv    interp.PiecewiseLinear
	ok     bool // false for zero-length paths
}

func (c *Curve) arcTable() *arcTable {
	if c.arc != nil {
		return c.arc
	}
	tbl := &arcTable{}
	c.arc = tbl

	s := c.SegmentCount()
	if s == 0 || len(c.points) < 2 {
		return tbl
	}
	per := c.ArcSamples
	if per <= 0 {
		per = defaultArcSamples
	}
	n := s * per

	cum := make([]float64, n+1)
	prev := c.position(0)
	for k := 1; k <= n; k++ {
		p := c.position(float64(k) / float64(n))
		cum[k] = cum[k-1] + r3.Norm(r3.Sub(p, prev))
		prev = p
	}
	tbl.length = cum[n]
	if tbl.length == 0 {
		return tbl
	}

	// Zero-length stretches (coincident points) are skipped so the fractions
	// stay strictly increasing.
	fracs := []float64{0}
	params := []float64{0}
	for k := 1; k <= n; k++ {
		f := cum[k] / tbl.length
		if f <= fracs[len(fracs)-1] {
			continue
		}
		fracs = append(fracs, f)
		params = append(params, float64(k)/float64(n))
	}
	if err := tbl.inv.Fit(fracs, params); err != nil {
		return tbl
	}
	tbl.ok = true
	return tbl
}

// ArcLengthT returns the parameter at which the fraction t of the total arc
// length has been travelled, so that evenly spaced t move at constant speed.
// Zero-length paths return t unchanged.
func (c *Curve) ArcLengthT(t float64) float64 {
	tbl := c.arcTable()
	if !tbl.ok {
		return t
	}
	return tbl.inv.Predict(geom.Clamp01(t))
}

// Length returns the approximate arc length of the path.
func (c *Curve) Length() float64 {
	return c.arcTable().length
}
