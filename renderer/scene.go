// Package renderer draws the camera scene with raylib: paths, gizmos,
// trigger volumes and bodies.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/dolly/camera"
	"github.com/pthm-cable/dolly/spline"
)

// Scene colors.
var (
	PathColor          = rl.Color{R: 255, G: 200, B: 60, A: 255}
	HandleColor        = rl.Color{R: 120, G: 120, B: 140, A: 200}
	PointColor         = rl.Color{R: 240, G: 240, B: 240, A: 255}
	VolumeColor        = rl.Color{R: 80, G: 180, B: 255, A: 200}
	VolumeLatchedColor = rl.Color{R: 255, G: 90, B: 90, A: 200}
	BodyColor          = rl.Color{R: 90, G: 220, B: 120, A: 255}
)

// Vec3 converts a world vector to raylib.
func Vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// ToCamera3D converts the camera rig to a raylib perspective camera.
func ToCamera3D(rig *camera.Rig) rl.Camera3D {
	return rl.Camera3D{
		Position:   Vec3(rig.Position),
		Target:     Vec3(rig.Target()),
		Up:         Vec3(rig.Up()),
		Fovy:       float32(rig.FOV),
		Projection: rl.CameraPerspective,
	}
}

// DrawLines draws debug line segments. Call inside BeginMode3D.
func DrawLines(lines []spline.Line) {
	for _, l := range lines {
		rl.DrawLine3D(Vec3(l.From), Vec3(l.To), l.Color)
	}
}

// DrawPath draws the curve as a polyline with samplesPerSegment samples per
// segment, plus its control points and tangent handles.
func DrawPath(c *spline.Curve, samplesPerSegment int) {
	if c == nil || c.Len() == 0 {
		return
	}
	pts := c.Sample(samplesPerSegment * max(c.SegmentCount(), 1))
	for i := 1; i < len(pts); i++ {
		rl.DrawLine3D(Vec3(pts[i-1]), Vec3(pts[i]), PathColor)
	}
	for _, p := range c.Points() {
		rl.DrawLine3D(Vec3(p.BackwardHandle()), Vec3(p.ForwardHandle()), HandleColor)
		rl.DrawSphere(Vec3(p.Position), 0.15, PointColor)
	}
}

// DrawVolume draws a trigger box. Latched volumes are drawn in a warning color.
func DrawVolume(box r3.Box, latched bool) {
	color := VolumeColor
	if latched {
		color = VolumeLatchedColor
	}
	rl.DrawBoundingBox(rl.NewBoundingBox(Vec3(box.Min), Vec3(box.Max)), color)
}

// DrawBody draws a body as a wire sphere.
func DrawBody(pos r3.Vec, radius float64) {
	rl.DrawSphereWires(Vec3(pos), float32(radius), 8, 8, BodyColor)
}
