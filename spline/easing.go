package spline

import (
	"fmt"
	"slices"

	"github.com/tanema/gween/ease"
	"gonum.org/v1/gonum/interp"

	"github.com/pthm-cable/dolly/geom"
)

// Keyframe is one key of an easing curve. Tangent is the slope dValue/dTime
// on both sides of the key.
type Keyframe struct {
	Time    float64 `yaml:"time"`
	Value   float64 `yaml:"value"`
	Tangent float64 `yaml:"tangent"`
}

// Easing remaps the fraction of a segment, both domain and range nominally
// [0,1]. Easings are immutable once built and may be shared between points.
type Easing struct {
	name string
	keys []Keyframe
	pred interp.Predictor
}

// linear is the identity curve: keys (0,0) and (1,1) with unit tangents.
var linear = func() *Easing {
	e, err := NewEasing(Keyframe{0, 0, 1}, Keyframe{1, 1, 1})
	if err != nil {
		panic(err)
	}
	e.name = "linear"
	return e
}()

// Linear returns the identity easing.
func Linear() *Easing {
	return linear
}

// NewEasing fits a cubic Hermite curve through the keyframes. At least two
// keys with strictly increasing times are required.
func NewEasing(keys ...Keyframe) (*Easing, error) {
	if len(keys) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 keyframes, got %d", ErrInvalidEasing, len(keys))
	}
	xs := make([]float64, len(keys))
	ys := make([]float64, len(keys))
	ds := make([]float64, len(keys))
	for i, k := range keys {
		if i > 0 && k.Time <= keys[i-1].Time {
			return nil, fmt.Errorf("%w: keyframe times must increase (key %d at %g)", ErrInvalidEasing, i, k.Time)
		}
		xs[i], ys[i], ds[i] = k.Time, k.Value, k.Tangent
	}

	var pc interp.PiecewiseCubic
	pc.FitWithDerivatives(xs, ys, ds)

	return &Easing{
		name: "custom",
		keys: slices.Clone(keys),
		pred: &pc,
	}, nil
}

// presets maps preset names to gween easing functions.
var presets = map[string]ease.TweenFunc{
	"linear":         ease.Linear,
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-quart":       ease.InQuart,
	"out-quart":      ease.OutQuart,
	"in-out-quart":   ease.InOutQuart,
	"in-quint":       ease.InQuint,
	"out-quint":      ease.OutQuint,
	"in-out-quint":   ease.InOutQuint,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"in-expo":        ease.InExpo,
	"out-expo":       ease.OutExpo,
	"in-out-expo":    ease.InOutExpo,
	"in-circ":        ease.InCirc,
	"out-circ":       ease.OutCirc,
	"in-out-circ":    ease.InOutCirc,
	"in-back":        ease.InBack,
	"out-back":       ease.OutBack,
	"in-out-back":    ease.InOutBack,
	"in-bounce":      ease.InBounce,
	"out-bounce":     ease.OutBounce,
	"in-out-bounce":  ease.InOutBounce,
	"in-elastic":     ease.InElastic,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
}

// Preset returns a named easing. See PresetNames for the accepted names.
func Preset(name string) (*Easing, error) {
	if name == "" || name == "linear" {
		return linear, nil
	}
	fn, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidEasing, name)
	}
	return &Easing{
		name: name,
		pred: interp.Function(func(u float64) float64 {
			return float64(fn(float32(u), 0, 1, 1))
		}),
	}, nil
}

// PresetNames returns the accepted preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Evaluate returns the eased value of u. Inputs are clamped to [0,1].
// Presets are pinned to 0 and 1 at the ends.
func (e *Easing) Evaluate(u float64) float64 {
	u = geom.Clamp01(u)
	if e.keys == nil {
		switch u {
		case 0:
			return 0
		case 1:
			return 1
		}
	}
	return e.pred.Predict(u)
}

// Name returns the preset name, or "custom" for keyframed curves.
func (e *Easing) Name() string {
	return e.name
}

// Keys returns a copy of the keyframes, or nil for presets.
func (e *Easing) Keys() []Keyframe {
	return slices.Clone(e.keys)
}
