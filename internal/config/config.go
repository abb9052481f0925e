// Package config loads desktop-pilot settings from defaults, an optional
// YAML file, DESKTOP_PILOT_* environment variables and command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, with dots in the key
// replaced by underscores: DESKTOP_PILOT_MOUSE_CLICK_DELAY.
const EnvPrefix = "DESKTOP_PILOT"

// Backend kinds.
const (
	BackendNative    = "native"
	BackendSimulated = "simulated"
)

// Config holds the entire application configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Backend  BackendConfig  `mapstructure:"backend" yaml:"backend"`
	Mouse    MouseConfig    `mapstructure:"mouse" yaml:"mouse"`
	Keyboard KeyboardConfig `mapstructure:"keyboard" yaml:"keyboard"`
	Search   SearchConfig   `mapstructure:"search" yaml:"search"`
}

// LoggerConfig configures the global zap logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the console color of each log level.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
}

// BackendConfig selects the platform backend.
type BackendConfig struct {
	Kind      string          `mapstructure:"kind" yaml:"kind"`
	Simulated SimulatedConfig `mapstructure:"simulated" yaml:"simulated"`
}

// SimulatedConfig sizes the in-memory display, in pixels.
type SimulatedConfig struct {
	Width  int     `mapstructure:"width" yaml:"width"`
	Height int     `mapstructure:"height" yaml:"height"`
	Scale  float64 `mapstructure:"scale" yaml:"scale"`
}

type MouseConfig struct {
	ClickDelay     time.Duration `mapstructure:"click_delay" yaml:"click_delay"`
	SmoothDuration time.Duration `mapstructure:"smooth_duration" yaml:"smooth_duration"`
}

type KeyboardConfig struct {
	KeyDelay      time.Duration `mapstructure:"key_delay" yaml:"key_delay"`
	ModifierDelay time.Duration `mapstructure:"modifier_delay" yaml:"modifier_delay"`
	WPM           float64       `mapstructure:"wpm" yaml:"wpm"`
	Noise         float64       `mapstructure:"noise" yaml:"noise"`
}

type SearchConfig struct {
	Tolerance float64 `mapstructure:"tolerance" yaml:"tolerance"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "desktop-pilot")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- Backend --
	v.SetDefault("backend.kind", BackendNative)
	v.SetDefault("backend.simulated.width", 1920)
	v.SetDefault("backend.simulated.height", 1080)
	v.SetDefault("backend.simulated.scale", 1.0)

	// -- Input --
	v.SetDefault("mouse.click_delay", "100ms")
	v.SetDefault("mouse.smooth_duration", "0s")
	v.SetDefault("keyboard.key_delay", "0s")
	v.SetDefault("keyboard.modifier_delay", "0s")
	v.SetDefault("keyboard.wpm", 0.0)
	v.SetDefault("keyboard.noise", 0.0)

	// -- Search --
	v.SetDefault("search.tolerance", 0.0)
}

// NewDefaultConfig returns the configuration built from defaults alone.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// BindEnv makes every key readable from DESKTOP_PILOT_* variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewConfigFromViper unmarshals and validates v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	switch c.Backend.Kind {
	case BackendNative:
	case BackendSimulated:
		s := c.Backend.Simulated
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("backend.simulated width and height must be positive, got %dx%d", s.Width, s.Height)
		}
		if s.Scale <= 0 {
			return fmt.Errorf("backend.simulated.scale must be positive, got %g", s.Scale)
		}
	default:
		return fmt.Errorf("backend.kind must be %q or %q, got %q", BackendNative, BackendSimulated, c.Backend.Kind)
	}
	if c.Mouse.ClickDelay < 0 || c.Mouse.SmoothDuration < 0 {
		return fmt.Errorf("mouse delays must not be negative")
	}
	if c.Keyboard.KeyDelay < 0 || c.Keyboard.ModifierDelay < 0 {
		return fmt.Errorf("keyboard delays must not be negative")
	}
	if c.Keyboard.WPM < 0 {
		return fmt.Errorf("keyboard.wpm must not be negative, got %g", c.Keyboard.WPM)
	}
	if c.Keyboard.Noise < 0 {
		return fmt.Errorf("keyboard.noise must not be negative, got %g", c.Keyboard.Noise)
	}
	if c.Search.Tolerance < 0 || c.Search.Tolerance > 1 {
		return fmt.Errorf("search.tolerance must be between 0 and 1, got %g", c.Search.Tolerance)
	}
	return nil
}
