package game

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/dolly/animator"
	"github.com/pthm-cable/dolly/spline"
)

// ErrUnknownPath is returned for a path name that is not in the scene.
var ErrUnknownPath = errors.New("unknown path")

func (g *Game) pathAnimator(name string) (*animator.Animator, error) {
	p := g.Path(name)
	if p == nil || p.Animator == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPath, name)
	}
	return p.Animator, nil
}

// Preview evaluates the named path at editor time t in [0,1], remapped the
// same way as playback. Playback state is not touched.
func (g *Game) Preview(name string, t float64) (animator.Sample, error) {
	anim, err := g.pathAnimator(name)
	if err != nil {
		return animator.Sample{}, err
	}
	return anim.Preview(t)
}

// PreviewGizmos returns the debug lines of the named path at editor time t.
func (g *Game) PreviewGizmos(name string, t float64) []spline.Line {
	anim, err := g.pathAnimator(name)
	if err != nil {
		return nil
	}
	return anim.PreviewGizmos(t, g.cfg.Path.Gizmo.Options())
}

// ApplyPreview moves the rig to the preview pose of the named path at t.
// Position and field of view are written even when the orientation fails;
// an empty path leaves the rig alone.
func (g *Game) ApplyPreview(name string, t float64) error {
	s, err := g.Preview(name, t)
	switch {
	case errors.Is(err, ErrUnknownPath), errors.Is(err, spline.ErrEmptyPath):
		return err
	}
	g.rig.SetPosition(s.Position)
	g.rig.SetFieldOfView(s.FOV)
	if err != nil {
		return err
	}
	g.rig.SetOrientation(s.Rotation)
	return nil
}

// Play starts the named path.
func (g *Game) Play(name string) error {
	anim, err := g.pathAnimator(name)
	if err != nil {
		return err
	}
	wasPlaying := anim.Playing()
	anim.Play()
	if !wasPlaying {
		g.recordStarted([]string{name})
	}
	return nil
}

// Stop stops the named path and rewinds it.
func (g *Game) Stop(name string) error {
	anim, err := g.pathAnimator(name)
	if err != nil {
		return err
	}
	anim.Stop()
	return nil
}
