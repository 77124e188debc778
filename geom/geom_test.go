package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func assertVec(t *testing.T, want, got r3.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-6, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-6, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-6, "z")
}

func TestCubicBezierEndpoints(t *testing.T) {
	p0 := r3.Vec{X: 0}
	p1 := r3.Vec{X: 1, Y: 2}
	p2 := r3.Vec{X: 3, Y: 2}
	p3 := r3.Vec{X: 4}

	assertVec(t, p0, CubicBezier(p0, p1, p2, p3, 0))
	assertVec(t, p3, CubicBezier(p0, p1, p2, p3, 1))
	// Symmetric control polygon puts the midpoint on the axis of symmetry.
	mid := CubicBezier(p0, p1, p2, p3, 0.5)
	assert.InDelta(t, 2.0, mid.X, tol)
	assert.InDelta(t, 1.5, mid.Y, tol)
}

func TestLookRotation(t *testing.T) {
	tests := []struct {
		name string
		dir  r3.Vec
	}{
		{"forward", r3.Vec{Z: 1}},
		{"backward", r3.Vec{Z: -1}},
		{"right", r3.Vec{X: 3}},
		{"diagonal", r3.Vec{X: 1, Y: 1, Z: 1}},
		{"straight up", r3.Vec{Y: 2}},
		{"straight down", r3.Vec{Y: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rot, ok := LookRotation(tc.dir, Up)
			require.True(t, ok)
			assertVec(t, r3.Unit(tc.dir), rot.Rotate(Forward))

			// The rotated frame must stay orthonormal.
			u := rot.Rotate(Up)
			assert.InDelta(t, 1.0, r3.Norm(u), 1e-9)
			assert.InDelta(t, 0.0, r3.Dot(u, rot.Rotate(Forward)), 1e-9)
		})
	}
}

func TestLookRotationKeepsUpright(t *testing.T) {
	rot, ok := LookRotation(r3.Vec{X: 1, Z: 1}, Up)
	require.True(t, ok)
	assert.Greater(t, rot.Rotate(Up).Y, 0.99)
}

func TestLookRotationZero(t *testing.T) {
	rot, ok := LookRotation(r3.Vec{}, Up)
	assert.False(t, ok)
	assert.Equal(t, Identity, rot)
}

func TestEuler(t *testing.T) {
	assertVec(t, r3.Vec{X: 1}, Euler(0, 90, 0).Rotate(Forward))
	assertVec(t, r3.Vec{Y: -1}, Euler(90, 0, 0).Rotate(Forward))
	assertVec(t, r3.Vec{X: -1}, Euler(0, 0, 90).Rotate(Up))
	assert.True(t, ApproxEqualRotation(Identity, Euler(0, 0, 0), tol))
}

func TestSlerp(t *testing.T) {
	a := Identity
	b := Euler(0, 90, 0)

	assert.True(t, ApproxEqualRotation(a, Slerp(a, b, 0), tol))
	assert.True(t, ApproxEqualRotation(b, Slerp(a, b, 1), tol))
	assert.True(t, ApproxEqualRotation(Euler(0, 45, 0), Slerp(a, b, 0.5), 1e-9))

	// q and -q are the same orientation; slerp must take the short way.
	neg := r3.Rotation{Real: -b.Real, Imag: -b.Imag, Jmag: -b.Jmag, Kmag: -b.Kmag}
	assert.True(t, ApproxEqualRotation(Euler(0, 45, 0), Slerp(a, neg, 0.5), 1e-9))
}

func TestSlerpStaysUnit(t *testing.T) {
	a := Euler(10, 20, 30)
	b := Euler(-40, 170, 5)
	for i := 0; i <= 20; i++ {
		r := Slerp(a, b, float64(i)/20)
		n := math.Sqrt(r.Real*r.Real + r.Imag*r.Imag + r.Jmag*r.Jmag + r.Kmag*r.Kmag)
		assert.InDelta(t, 1.0, n, 1e-9)
	}
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 0.25, Clamp01(0.25))
	assert.Equal(t, 1.0, Clamp01(7))
}
