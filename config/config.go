// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen   ScreenConfig   `yaml:"screen"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Ship     ShipConfig     `yaml:"ship"`
	Controls ControlsConfig `yaml:"controls"`
	Font     FontConfig     `yaml:"font"`
	Debug    DebugConfig    `yaml:"debug"`
	Log      LogConfig      `yaml:"log"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Title      string   `yaml:"title"`
	FrameRate  int      `yaml:"frame_rate"`  // Fixed sleep per frame is 1s / frame_rate
	ClearColor [3]uint8 `yaml:"clear_color"` // RGB
}

// PhysicsConfig holds ship movement parameters. Units are per frame.
type PhysicsConfig struct {
	RotationSpeed float64 `yaml:"rotation_speed"` // Degrees per frame while a rotate key is held
	MaxSpeed      float64 `yaml:"max_speed"`      // Hard cap on speed magnitude
	Acceleration  float64 `yaml:"acceleration"`   // Impulse magnitude per thrust frame
	Deceleration  float64 `yaml:"deceleration"`   // Speed multiplier applied every frame
}

// ShipConfig describes the player ship sprite.
type ShipConfig struct {
	Texture     string `yaml:"texture"`
	SrcWidth    uint32 `yaml:"src_width"`
	SrcHeight   uint32 `yaml:"src_height"`
	DstWidth    uint32 `yaml:"dst_width"`
	DstHeight   uint32 `yaml:"dst_height"`
	TotalFrames uint32 `yaml:"total_frames"`
}

// ControlsConfig maps actions to key names ("Left", "Up", "Escape", ...).
type ControlsConfig struct {
	RotateLeft  string `yaml:"rotate_left"`
	RotateRight string `yaml:"rotate_right"`
	Thrust      string `yaml:"thrust"`
	Quit        string `yaml:"quit"`
	ToggleHUD   string `yaml:"toggle_hud"`
}

// FontConfig holds the optional HUD font.
type FontConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Size    int    `yaml:"size"`
}

// DebugConfig holds debug overlay and perf logging settings.
type DebugConfig struct {
	HUD             bool `yaml:"hud"`
	PerfWindow      int  `yaml:"perf_window"`       // Frames averaged by the perf collector
	PerfLogInterval int  `yaml:"perf_log_interval"` // Frames between perf log lines (0 = off)
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameDuration time.Duration
	CenterX       float64
	CenterY       float64
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
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the game loop cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if c.Screen.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("screen.frame_rate must be positive, got %d", c.Screen.FrameRate))
	}
	if c.Physics.MaxSpeed <= 0 {
		errs = append(errs, fmt.Errorf("physics.max_speed must be positive, got %v", c.Physics.MaxSpeed))
	}
	if c.Physics.Deceleration <= 0 || c.Physics.Deceleration > 1 {
		errs = append(errs, fmt.Errorf("physics.deceleration must be in (0, 1], got %v", c.Physics.Deceleration))
	}
	if c.Ship.Texture == "" {
		errs = append(errs, errors.New("ship.texture is empty"))
	}
	for name, key := range map[string]string{
		"rotate_left":  c.Controls.RotateLeft,
		"rotate_right": c.Controls.RotateRight,
		"thrust":       c.Controls.Thrust,
		"quit":         c.Controls.Quit,
	} {
		if key == "" {
			errs = append(errs, fmt.Errorf("controls.%s is empty", name))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FrameDuration = time.Second / time.Duration(c.Screen.FrameRate)
	c.Derived.CenterX = float64(c.Screen.Width) / 2
	c.Derived.CenterY = float64(c.Screen.Height) / 2
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
