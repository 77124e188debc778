// Package trigger starts a camera path when a watched entity enters a volume
// and puts the camera back where it was once the path has finished.
package trigger

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Pose is a value snapshot of a camera.
type Pose struct {
	Position r3.Vec
	Rotation r3.Rotation
	FOV      float64
}

// Camera is the pose source and sink that a trigger saves and restores.
type Camera interface {
	Pose() Pose
	SetPose(Pose)
}

// Player is the playback started by a trigger. *animator.Animator implements it.
type Player interface {
	Play()
	Playing() bool
}

// Trigger is an edge detector over entry events. It fires on the first entry
// of Watched only; later entries are ignored for the trigger's lifetime.
type Trigger[ID comparable] struct {
	Watched  ID
	Camera   Camera
	Animator Player

	latched bool
	armed   bool
	saved   Pose
	hasPose bool
}

// New creates an idle trigger.
func New[ID comparable](watched ID, cam Camera, anim Player) *Trigger[ID] {
	return &Trigger[ID]{Watched: watched, Camera: cam, Animator: anim}
}

// Enter reports an entry of id into the volume. It returns true when the
// entry started playback.
func (t *Trigger[ID]) Enter(id ID) bool {
	if id != t.Watched || t.latched {
		return false
	}
	if t.Camera != nil {
		t.saved = t.Camera.Pose()
		t.hasPose = true
	}
	if t.Animator != nil {
		t.Animator.Play()
	}
	t.latched = true
	t.armed = true
	return true
}

// Tick restores the saved pose once playback has ended. It returns true on
// the tick that performed the restore.
func (t *Trigger[ID]) Tick() bool {
	if !t.armed {
		return false
	}
	if t.Animator != nil && t.Animator.Playing() {
		return false
	}
	if t.Camera != nil && t.hasPose {
		t.Camera.SetPose(t.saved)
	}
	t.armed = false
	return true
}

// Latched reports whether the trigger has fired.
func (t *Trigger[ID]) Latched() bool { return t.latched }

// Armed reports whether a restore is pending.
func (t *Trigger[ID]) Armed() bool { return t.armed }

// Saved returns the pose captured when the trigger fired.
func (t *Trigger[ID]) Saved() (Pose, bool) { return t.saved, t.hasPose }
