package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/animation"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/view_sync"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file name looked up in the working directory.
const DefaultFileName = "oxy-orbit.yaml"

// Duration is a time.Duration written as a Go duration string ("500ms") in YAML.
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// CameraConfig holds the starting orbit in degrees plus control speeds.
type CameraConfig struct {
	AzimuthDeg       float64    `yaml:"azimuthDeg"`
	ElevationDeg     float64    `yaml:"elevationDeg"`
	Radius           float64    `yaml:"radius"`
	Target           [3]float64 `yaml:"target,flow"`
	MinRadius        float64    `yaml:"minRadius"`
	MaxRadius        float64    `yaml:"maxRadius"`
	MouseSensitivity float64    `yaml:"mouseSensitivity"`
	ZoomSpeed        float64    `yaml:"zoomSpeed"`
	PanSpeed         float64    `yaml:"panSpeed"`
}

type SyncConfig struct {
	AnimationDuration Duration `yaml:"animationDuration"`
	UpdateThrottle    Duration `yaml:"updateThrottle"`
	Easing            string   `yaml:"easing"`
	// BidirectionalSync defaults to true when omitted.
	BidirectionalSync *bool `yaml:"bidirectionalSync,omitempty"`
}

type GizmoConfig struct {
	Size      float64 `yaml:"size"`
	Margin    float64 `yaml:"margin"`
	HitRadius float64 `yaml:"hitRadius"`
}

type ProfilingConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Interval Duration `yaml:"interval"`
}

// ViewerConfig is the on-disk configuration of the viewer.
type ViewerConfig struct {
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Sync      SyncConfig      `yaml:"sync"`
	Gizmo     GizmoConfig     `yaml:"gizmo"`
	Profiling ProfilingConfig `yaml:"profiling"`
	// TickRate is the headless frame rate in frames per second.
	TickRate int    `yaml:"tickRate"`
	LogLevel string `yaml:"logLevel"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - *ViewerConfig: a fresh copy of the defaults
func Default() *ViewerConfig {
	return &ViewerConfig{
		Window: WindowConfig{Title: "oxy-orbit", Width: 1280, Height: 720, VSync: true},
		Camera: CameraConfig{
			AzimuthDeg:       45,
			ElevationDeg:     60,
			Radius:           10,
			MinRadius:        0.5,
			MaxRadius:        500,
			MouseSensitivity: 0.005,
			ZoomSpeed:        0.5,
			PanSpeed:         0.002,
		},
		Sync: SyncConfig{
			AnimationDuration: Duration(view_sync.DefaultAnimationDuration),
			UpdateThrottle:    Duration(view_sync.DefaultUpdateThrottle),
			Easing:            view_sync.DefaultEasing.String(),
		},
		Gizmo:     GizmoConfig{Size: 120, Margin: 16, HitRadius: 12},
		Profiling: ProfilingConfig{Interval: Duration(time.Second)},
		TickRate:  60,
		LogLevel:  "info",
	}
}

// Parse overlays YAML data onto the defaults and validates the result.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - *ViewerConfig: the parsed configuration
//   - error: decode or validation failure
func Parse(data []byte) (*ViewerConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
//
// Parameters:
//   - path: the YAML file
//
// Returns:
//   - *ViewerConfig: the parsed configuration
//   - error: read, decode or validation failure
func Load(path string) (*ViewerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, returning the defaults when the file does not exist.
func LoadOrDefault(path string) (*ViewerConfig, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes c to path, creating parent directories.
//
// Parameters:
//   - path: destination file
//
// Returns:
//   - error: encode or write failure
func (c *ViewerConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate reports every invalid field.
func (c *ViewerConfig) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if err := c.OrbitState().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("camera: %w", err))
	}
	if c.Camera.MinRadius <= 0 || c.Camera.MaxRadius < c.Camera.MinRadius {
		errs = append(errs, fmt.Errorf("camera: radius bounds [%v, %v] are invalid", c.Camera.MinRadius, c.Camera.MaxRadius))
	}
	if _, err := animation.ParseEasing(c.Sync.Easing); err != nil {
		errs = append(errs, fmt.Errorf("sync: %w", err))
	}
	if c.Sync.AnimationDuration <= 0 || c.Sync.UpdateThrottle <= 0 {
		errs = append(errs, errors.New("sync: durations must be positive"))
	}
	if c.Gizmo.Size <= 0 || c.Gizmo.HitRadius <= 0 {
		errs = append(errs, errors.New("gizmo: size and hit radius must be positive"))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tickRate %d must be positive", c.TickRate))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("logLevel: %w", err))
	}
	return errors.Join(errs...)
}

// OrbitState converts the starting camera settings to radians.
func (c *ViewerConfig) OrbitState() camera.OrbitState {
	return camera.OrbitState{
		Azimuth:   mgl64.DegToRad(c.Camera.AzimuthDeg),
		Elevation: mgl64.DegToRad(c.Camera.ElevationDeg),
		Radius:    c.Camera.Radius,
		Target:    mgl64.Vec3(c.Camera.Target),
	}
}

// CameraOptions returns the orbit camera options described by c, starting pose included.
func (c *ViewerConfig) CameraOptions() []camera.OrbitCameraOption {
	return append(c.ControlOptions(), camera.WithOrbitState(c.OrbitState()))
}

// ControlOptions returns the camera options that can be applied to a live camera: radius
// bounds and control speeds, but not the starting pose.
func (c *ViewerConfig) ControlOptions() []camera.OrbitCameraOption {
	return []camera.OrbitCameraOption{
		camera.WithRadiusBounds(c.Camera.MinRadius, c.Camera.MaxRadius),
		camera.WithMouseSensitivity(c.Camera.MouseSensitivity),
		camera.WithZoomSpeed(c.Camera.ZoomSpeed),
		camera.WithPanSpeed(c.Camera.PanSpeed),
	}
}

// RestartRequired lists the settings that differ from prev and are only read at startup.
//
// Parameters:
//   - prev: the config the viewer was started with
//
// Returns:
//   - []string: yaml paths of the changed startup-only settings, empty if none
func (c *ViewerConfig) RestartRequired(prev *ViewerConfig) []string {
	var changed []string
	if c.Window != prev.Window {
		changed = append(changed, "window")
	}
	if c.Camera.AzimuthDeg != prev.Camera.AzimuthDeg || c.Camera.ElevationDeg != prev.Camera.ElevationDeg ||
		c.Camera.Radius != prev.Camera.Radius || c.Camera.Target != prev.Camera.Target {
		changed = append(changed, "camera.start")
	}
	if c.Profiling != prev.Profiling {
		changed = append(changed, "profiling")
	}
	if c.TickRate != prev.TickRate {
		changed = append(changed, "tickRate")
	}
	if c.LogLevel != prev.LogLevel {
		changed = append(changed, "logLevel")
	}
	return changed
}

// SyncConfig converts the sync section to a synchronizer configuration. An unknown easing
// falls back to the default; Validate reports it.
func (c *ViewerConfig) SyncConfig() view_sync.Config {
	easing, err := animation.ParseEasing(c.Sync.Easing)
	if err != nil {
		easing = view_sync.DefaultEasing
	}
	return view_sync.Config{
		AnimationDuration:        time.Duration(c.Sync.AnimationDuration),
		UpdateThrottle:           time.Duration(c.Sync.UpdateThrottle),
		Easing:                   easing,
		DisableBidirectionalSync: !common.Deref(c.Sync.BidirectionalSync, true),
	}
}

// FrameInterval is the duration of one headless frame.
func (c *ViewerConfig) FrameInterval() time.Duration {
	return time.Second / time.Duration(max(c.TickRate, 1))
}
