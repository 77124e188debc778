// Package config provides configuration loading and access for the camera
// path runner, including the authored scene (paths, bodies and triggers).
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/dolly/animator"
	"github.com/pthm-cable/dolly/spline"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all configuration parameters and the authored scene.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Playback   PlaybackConfig   `yaml:"playback"`
	Path       PathConfig       `yaml:"path"`
	Camera     CameraConfig     `yaml:"camera"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	Paths    []PathSpec    `yaml:"paths"`
	Bodies   []BodySpec    `yaml:"bodies"`
	Triggers []TriggerSpec `yaml:"triggers"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Vec3 is a YAML-friendly vector written as [x, y, z].
type Vec3 [3]float64

// R3 converts to a gonum vector.
func (v Vec3) R3() r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimulationConfig holds the fixed-step tick settings.
type SimulationConfig struct {
	DT             float64 `yaml:"dt"`               // Seconds per tick
	StepsPerUpdate int     `yaml:"steps_per_update"` // Ticks per rendered frame
}

// PlaybackConfig holds animator defaults, overridable per path.
type PlaybackConfig struct {
	Duration      float64 `yaml:"duration"`       // Seconds for one pass
	Mode          string  `yaml:"mode"`           // once, loop or pingpong
	AutoPlay      bool    `yaml:"autoplay"`       // Start playing on load
	Normalized    bool    `yaml:"normalized"`     // Apply per-point easing
	ConstantSpeed bool    `yaml:"constant_speed"` // Reparametrize by arc length
}

// PathConfig holds curve evaluation and debug drawing defaults.
type PathConfig struct {
	FOV            float64     `yaml:"fov"`             // Field of view for points that do not set one
	TangentEpsilon float64     `yaml:"tangent_epsilon"` // Finite-difference step for follow mode
	ArcSamples     int         `yaml:"arc_samples"`     // Arc-length samples per segment
	DrawSamples    int         `yaml:"draw_samples"`    // Polyline samples per segment when drawing
	Gizmo          GizmoConfig `yaml:"gizmo"`
}

// GizmoConfig sizes the debug lines.
type GizmoConfig struct {
	CrossSize     float64 `yaml:"cross_size"`
	FrustumLength float64 `yaml:"frustum_length"`
	FrustumSpread float64 `yaml:"frustum_spread"`
	TargetReach   float64 `yaml:"target_reach"`
}

// Options converts to the spline gizmo options.
func (g GizmoConfig) Options() spline.GizmoOptions {
	return spline.GizmoOptions{
		CrossSize:     g.CrossSize,
		FrustumLength: g.FrustumLength,
		FrustumSpread: g.FrustumSpread,
		TargetReach:   g.TargetReach,
	}
}

// CameraConfig holds the start pose of the scene camera.
type CameraConfig struct {
	Position Vec3    `yaml:"position"`
	LookAt   Vec3    `yaml:"look_at"`
	FOV      float64 `yaml:"fov"`
	MinFOV   float64 `yaml:"min_fov"`
	MaxFOV   float64 `yaml:"max_fov"`
}

// TelemetryConfig holds output parameters.
type TelemetryConfig struct {
	SampleEvery int `yaml:"sample_every"` // Ticks between camera sample rows (0 = off)
	PerfWindow  int `yaml:"perf_window"`  // Ticks per perf record and timing window (0 = off)
}

// PathSpec is an authored camera path with its animator settings.
// Zero or nil playback fields fall back to the playback section.
type PathSpec struct {
	Name       string      `yaml:"name"`
	Loop       bool        `yaml:"loop"`
	View       string      `yaml:"view"`                   // user, target or follow
	LookAt     *Vec3       `yaml:"look_at,omitempty"`      // Fixed target for view: target
	LookAtBody string      `yaml:"look_at_body,omitempty"` // Body to track for view: target
	Points     []PointSpec `yaml:"points"`

	Mode          string  `yaml:"mode,omitempty"`
	Duration      float64 `yaml:"duration,omitempty"`
	AutoPlay      *bool   `yaml:"autoplay,omitempty"`
	Normalized    *bool   `yaml:"normalized,omitempty"`
	ConstantSpeed *bool   `yaml:"constant_speed,omitempty"`
	Next          string  `yaml:"next,omitempty"` // Path started when this one finishes
}

// PointSpec is an authored control point.
type PointSpec struct {
	Position Vec3              `yaml:"position"`
	Offset   Vec3              `yaml:"offset"`
	Rotation Vec3              `yaml:"rotation"`         // Euler degrees: pitch, yaw, roll
	FOV      float64           `yaml:"fov"`              // 0 = path.fov
	Easing   string            `yaml:"easing,omitempty"` // Preset name
	Keys     []spline.Keyframe `yaml:"keys,omitempty"`   // Custom easing, wins over Easing
}

// BuildEasing returns the point's easing: custom keys when set, otherwise
// the named preset.
func (p PointSpec) BuildEasing() (*spline.Easing, error) {
	if len(p.Keys) > 0 {
		return spline.NewEasing(p.Keys...)
	}
	return spline.Preset(p.Easing)
}

// BodySpec is a moving object that triggers can watch.
type BodySpec struct {
	Name     string  `yaml:"name"`
	Position Vec3    `yaml:"position"`
	Velocity Vec3    `yaml:"velocity"`
	Radius   float64 `yaml:"radius"`
}

// TriggerSpec is an axis-aligned volume that starts a path when a body enters it.
type TriggerSpec struct {
	Name  string `yaml:"name"`
	Min   Vec3   `yaml:"min"`
	Max   Vec3   `yaml:"max"`
	Watch string `yaml:"watch"` // Body name
	Path  string `yaml:"path"`  // Path name
}

// Playback is a path's animator settings after defaults are applied.
type Playback struct {
	Mode          animator.Mode
	Duration      float64
	AutoPlay      bool
	Normalized    bool
	ConstantSpeed bool
}

// Options converts to animator options.
func (p Playback) Options() animator.Options {
	return animator.Options{
		Mode:          p.Mode,
		Duration:      p.Duration,
		AutoPlay:      p.AutoPlay,
		Normalized:    p.Normalized,
		ConstantSpeed: p.ConstantSpeed,
	}
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32        // Simulation.DT as float32
	PathIndex map[string]int // name -> index into Paths
	BodyIndex map[string]int // name -> index into Bodies
	Playback  []Playback     // per path, parallel to Paths
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. Lists such as paths
// replace the default scene rather than extending it.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.DT32 = float32(c.Simulation.DT)

	c.Derived.PathIndex = make(map[string]int, len(c.Paths))
	for i, p := range c.Paths {
		c.Derived.PathIndex[p.Name] = i
	}
	c.Derived.BodyIndex = make(map[string]int, len(c.Bodies))
	for i, b := range c.Bodies {
		c.Derived.BodyIndex[b.Name] = i
	}

	c.Derived.Playback = make([]Playback, len(c.Paths))
	for i, p := range c.Paths {
		modeName := c.Playback.Mode
		if p.Mode != "" {
			modeName = p.Mode
		}
		mode, err := animator.ParseMode(modeName)
		if err != nil {
			return fmt.Errorf("%w: path %q: %v", ErrInvalid, p.Name, err)
		}
		pb := Playback{
			Mode:          mode,
			Duration:      c.Playback.Duration,
			AutoPlay:      c.Playback.AutoPlay,
			Normalized:    c.Playback.Normalized,
			ConstantSpeed: c.Playback.ConstantSpeed,
		}
		if p.Duration != 0 {
			pb.Duration = p.Duration
		}
		if p.AutoPlay != nil {
			pb.AutoPlay = *p.AutoPlay
		}
		if p.Normalized != nil {
			pb.Normalized = *p.Normalized
		}
		if p.ConstantSpeed != nil {
			pb.ConstantSpeed = *p.ConstantSpeed
		}
		c.Derived.Playback[i] = pb
	}
	return nil
}

// Validate checks the scene for dangling references and impossible values.
func (c *Config) Validate() error {
	if c.Simulation.DT <= 0 {
		return fmt.Errorf("%w: simulation.dt must be positive, got %g", ErrInvalid, c.Simulation.DT)
	}
	if len(c.Derived.PathIndex) != len(c.Paths) {
		return fmt.Errorf("%w: duplicate path names", ErrInvalid)
	}
	if len(c.Derived.BodyIndex) != len(c.Bodies) {
		return fmt.Errorf("%w: duplicate body names", ErrInvalid)
	}

	for i, p := range c.Paths {
		if p.Name == "" {
			return fmt.Errorf("%w: path %d has no name", ErrInvalid, i)
		}
		if c.Derived.Playback[i].Duration <= 0 {
			return fmt.Errorf("%w: path %q: duration must be positive", ErrInvalid, p.Name)
		}
		view, err := spline.ParseViewMode(p.View)
		if err != nil {
			return fmt.Errorf("%w: path %q: %v", ErrInvalid, p.Name, err)
		}
		if view == spline.LookAtTarget && p.LookAt == nil && p.LookAtBody == "" {
			return fmt.Errorf("%w: path %q: view target needs look_at or look_at_body", ErrInvalid, p.Name)
		}
		if p.LookAtBody != "" {
			if _, ok := c.Derived.BodyIndex[p.LookAtBody]; !ok {
				return fmt.Errorf("%w: path %q: unknown body %q", ErrInvalid, p.Name, p.LookAtBody)
			}
		}
		if p.Next != "" {
			if _, ok := c.Derived.PathIndex[p.Next]; !ok {
				return fmt.Errorf("%w: path %q: unknown next path %q", ErrInvalid, p.Name, p.Next)
			}
		}
		for j, pt := range p.Points {
			if _, err := pt.BuildEasing(); err != nil {
				return fmt.Errorf("%w: path %q point %d: %v", ErrInvalid, p.Name, j, err)
			}
		}
	}

	if c.Telemetry.SampleEvery < 0 || c.Telemetry.PerfWindow < 0 {
		return fmt.Errorf("%w: telemetry intervals must not be negative", ErrInvalid)
	}

	for _, b := range c.Bodies {
		if b.Radius < 0 {
			return fmt.Errorf("%w: body %q: negative radius", ErrInvalid, b.Name)
		}
	}

	for _, t := range c.Triggers {
		if _, ok := c.Derived.BodyIndex[t.Watch]; !ok {
			return fmt.Errorf("%w: trigger %q: unknown body %q", ErrInvalid, t.Name, t.Watch)
		}
		if _, ok := c.Derived.PathIndex[t.Path]; !ok {
			return fmt.Errorf("%w: trigger %q: unknown path %q", ErrInvalid, t.Name, t.Path)
		}
		for k := range 3 {
			if t.Min[k] > t.Max[k] {
				return fmt.Errorf("%w: trigger %q: min exceeds max on axis %d", ErrInvalid, t.Name, k)
			}
		}
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
