package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Tag reader configuration
	Input InputConfig `mapstructure:"input"`

	// Volume button configuration
	Buttons ButtonsConfig `mapstructure:"buttons"`

	// Audio output configuration
	Audio AudioConfig `mapstructure:"audio"`

	// Sound library configuration
	Sounds SoundsConfig `mapstructure:"sounds"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// InputConfig holds tag reader configuration
type InputConfig struct {
	Type   string `mapstructure:"type"` // keyboard or serial
	Device string `mapstructure:"device"`
	Baud   int    `mapstructure:"baud"`
}

// ButtonsConfig holds the GPIO volume button configuration
type ButtonsConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Chip         string        `mapstructure:"chip"`
	RaisePin     int           `mapstructure:"raise_pin"`
	LowerPin     int           `mapstructure:"lower_pin"`
	HoldOff      time.Duration `mapstructure:"hold_off"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Step         int           `mapstructure:"step"`
}

// AudioConfig holds audio output configuration
type AudioConfig struct {
	Backend    string        `mapstructure:"backend"` // speaker or pulse
	SampleRate int           `mapstructure:"sample_rate"`
	Buffer     time.Duration `mapstructure:"buffer"`
	Volume     int           `mapstructure:"volume"`
}

// SoundsConfig holds the sound root and the tag to filename table
type SoundsConfig struct {
	Path    string            `mapstructure:"path"`
	Preload bool              `mapstructure:"preload"`
	Tags    map[string]string `mapstructure:"tags"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

const (
	InputKeyboard = "keyboard"
	InputSerial   = "serial"

	BackendSpeaker = "speaker"
	BackendPulse   = "pulse"
)

// SetDefaults registers the default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input.type", InputKeyboard)
	v.SetDefault("input.device", "/dev/input/event0")
	v.SetDefault("input.baud", 9600)
	v.SetDefault("buttons.enabled", true)
	v.SetDefault("buttons.chip", "gpiochip0")
	v.SetDefault("buttons.raise_pin", 2)
	v.SetDefault("buttons.lower_pin", 4)
	v.SetDefault("buttons.hold_off", "500ms")
	v.SetDefault("buttons.poll_interval", "20ms")
	v.SetDefault("buttons.step", 10)
	v.SetDefault("audio.backend", BackendSpeaker)
	v.SetDefault("audio.sample_rate", 44100)
	v.SetDefault("audio.buffer", "100ms")
	v.SetDefault("audio.volume", 100)
	v.SetDefault("sounds.path", "sounds")
	v.SetDefault("sounds.preload", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig() (*Config, error) {
	v := viper.GetViper()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.jukebox")
	v.AddConfigPath("/etc/jukebox")

	v.SetEnvPrefix("JUKEBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return Load(v)
}

// Load reads the configuration known to v. A missing config file is only an
// error when one was set explicitly.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || v.ConfigFileUsed() != "" {
			return nil, &LoadError{File: v.ConfigFileUsed(), Err: err}
		}
		slog.Debug("No config file found, using defaults and environment variables")
	} else {
		slog.Info("Using config file", slog.String("file", v.ConfigFileUsed()))
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, &LoadError{File: v.ConfigFileUsed(), Err: err}
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Input.Type {
	case InputKeyboard:
	case InputSerial:
		if c.Input.Baud <= 0 {
			return &ConfigError{Field: "input.baud", Message: "baud rate must be positive"}
		}
	default:
		return &ConfigError{Field: "input.type", Message: fmt.Sprintf("unknown input type %q", c.Input.Type)}
	}
	if c.Input.Device == "" {
		return &ConfigError{Field: "input.device", Message: "input device is required"}
	}

	if c.Buttons.Enabled {
		if c.Buttons.Chip == "" {
			return &ConfigError{Field: "buttons.chip", Message: "GPIO chip is required"}
		}
		if c.Buttons.RaisePin < 0 || c.Buttons.LowerPin < 0 {
			return &ConfigError{Field: "buttons", Message: "GPIO offsets must not be negative"}
		}
		if c.Buttons.RaisePin == c.Buttons.LowerPin {
			return &ConfigError{Field: "buttons", Message: "raise and lower buttons share a pin"}
		}
		if c.Buttons.HoldOff <= 0 {
			return &ConfigError{Field: "buttons.hold_off", Message: "hold-off must be positive"}
		}
		if c.Buttons.PollInterval <= 0 {
			return &ConfigError{Field: "buttons.poll_interval", Message: "poll interval must be positive"}
		}
		if c.Buttons.Step < 1 || c.Buttons.Step > 100 {
			return &ConfigError{Field: "buttons.step", Message: "step must be within 1..100"}
		}
	}

	switch c.Audio.Backend {
	case BackendSpeaker, BackendPulse:
	default:
		return &ConfigError{Field: "audio.backend", Message: fmt.Sprintf("unknown audio backend %q", c.Audio.Backend)}
	}
	if c.Audio.SampleRate <= 0 {
		return &ConfigError{Field: "audio.sample_rate", Message: "sample rate must be positive"}
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return &ConfigError{Field: "audio.volume", Message: "volume must be within 0..100"}
	}

	if c.Sounds.Path == "" {
		return &ConfigError{Field: "sounds.path", Message: "sound directory is required"}
	}
	for id, file := range c.Sounds.Tags {
		if strings.TrimSpace(id) == "" {
			return &ConfigError{Field: "sounds.tags", Message: "empty tag identifier"}
		}
		if file == "" {
			return &ConfigError{Field: "sounds.tags." + id, Message: "filename is required"}
		}
	}
	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// LoadError is returned when the configuration cannot be read or decoded
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	if e.File == "" {
		return "load config: " + e.Err.Error()
	}
	return "load config " + e.File + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
