// Package geom provides the small set of 3D helpers shared by path evaluation
// and the camera rig. Vectors and rotations are gonum's r3 types.
package geom

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Axes of the world frame. Forward is +Z and up is +Y.
var (
	Right   = r3.Vec{X: 1}
	Up      = r3.Vec{Y: 1}
	Forward = r3.Vec{Z: 1}
)

// Identity is the rotation that leaves vectors unchanged.
var Identity = r3.Rotation{Real: 1}

// Clamp01 restricts x to [0, 1].
func Clamp01(x float64) float64 {
	return clamp(x, 0, 1)
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec linearly interpolates between two points.
func LerpVec(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// CubicBezier evaluates the cubic Bezier curve with control points p0..p3 at t.
func CubicBezier(p0, p1, p2, p3 r3.Vec, t float64) r3.Vec {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return r3.Vec{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		Z: a*p0.Z + b*p1.Z + c*p2.Z + d*p3.Z,
	}
}

// Normalize returns r scaled to unit length. The zero quaternion maps to Identity.
func Normalize(r r3.Rotation) r3.Rotation {
	q := quat.Number(r)
	n := quat.Abs(q)
	if n == 0 || math.IsNaN(n) {
		return Identity
	}
	return r3.Rotation(quat.Scale(1/n, q))
}

// Mul composes two rotations; the result applies b first, then a.
func Mul(a, b r3.Rotation) r3.Rotation {
	return r3.Rotation(quat.Mul(quat.Number(a), quat.Number(b)))
}

// Slerp spherically interpolates between r0 and r1 along the shortest arc.
//
// Based on Simo Särkkä "Notes on Quaternions" Eq. 35:
//
//	p(t) = (q1 ∗ q0^−1) ^ t ∗ q0
func Slerp(r0, r1 r3.Rotation, t float64) r3.Rotation {
	q0 := quat.Number(Normalize(r0))
	q1 := quat.Number(Normalize(r1))
	if dot(q0, q1) < 0 {
		q1 = quat.Scale(-1, q1)
	}
	switch {
	case t <= 0:
		return r3.Rotation(q0)
	case t >= 1:
		return r3.Rotation(q1)
	}
	d := quat.Mul(q1, quat.Inv(q0))
	d = quat.PowReal(d, t)
	return Normalize(r3.Rotation(quat.Mul(d, q0)))
}

// LookRotation returns the rotation that maps Forward onto dir and keeps Up as
// close to up as possible. It reports false when dir has zero length.
func LookRotation(dir, up r3.Vec) (r3.Rotation, bool) {
	if r3.Norm2(dir) == 0 || hasNaN(dir) {
		return Identity, false
	}
	f := r3.Unit(dir)
	right := r3.Cross(up, f)
	if r3.Norm2(right) < 1e-12 {
		// dir is parallel to up; any perpendicular reference will do.
		alt := Forward
		if math.Abs(f.Z) > 0.9 {
			alt = Right
		}
		right = r3.Cross(alt, f)
	}
	right = r3.Unit(right)
	u := r3.Cross(f, right)
	return fromBasis(right, u, f), true
}

// Euler builds a rotation from angles in degrees, applied roll (Z) first,
// then pitch (X), then yaw (Y).
func Euler(pitch, yaw, roll float64) r3.Rotation {
	qx := r3.NewRotation(pitch*math.Pi/180, Right)
	qy := r3.NewRotation(yaw*math.Pi/180, Up)
	qz := r3.NewRotation(roll*math.Pi/180, Forward)
	return Normalize(Mul(qy, Mul(qx, qz)))
}

// ApproxEqualRotation reports whether a and b describe the same orientation
// within tol, treating q and -q as equal.
func ApproxEqualRotation(a, b r3.Rotation, tol float64) bool {
	qa := quat.Number(Normalize(a))
	qb := quat.Number(Normalize(b))
	return math.Abs(math.Abs(dot(qa, qb))-1) <= tol
}

// fromBasis converts the orthonormal basis (columns x, y, z) into a quaternion.
func fromBasis(x, y, z r3.Vec) r3.Rotation {
	m00, m01, m02 := x.X, y.X, z.X
	m10, m11, m12 := x.Y, y.Y, z.Y
	m20, m21, m22 := x.Z, y.Z, z.Z

	var q quat.Number
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = quat.Number{
			Real: 0.25 / s,
			Imag: (m21 - m12) * s,
			Jmag: (m02 - m20) * s,
			Kmag: (m10 - m01) * s,
		}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = quat.Number{
			Real: (m21 - m12) / s,
			Imag: 0.25 * s,
			Jmag: (m01 + m10) / s,
			Kmag: (m02 + m20) / s,
		}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = quat.Number{
			Real: (m02 - m20) / s,
			Imag: (m01 + m10) / s,
			Jmag: 0.25 * s,
			Kmag: (m12 + m21) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = quat.Number{
			Real: (m10 - m01) / s,
			Imag: (m02 + m20) / s,
			Jmag: (m12 + m21) / s,
			Kmag: 0.25 * s,
		}
	}
	return Normalize(r3.Rotation(q))
}

func dot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

func hasNaN(v r3.Vec) bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
