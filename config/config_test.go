package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	v.AddConfigPath(t.TempDir())
	v.SetConfigName("config")

	cfg, err := Load(v)
	require.NoError(t, err)

	require.Equal(t, InputKeyboard, cfg.Input.Type)
	require.Equal(t, "gpiochip0", cfg.Buttons.Chip)
	require.Equal(t, 2, cfg.Buttons.RaisePin)
	require.Equal(t, 4, cfg.Buttons.LowerPin)
	require.Equal(t, 500*time.Millisecond, cfg.Buttons.HoldOff)
	require.Equal(t, 20*time.Millisecond, cfg.Buttons.PollInterval)
	require.Equal(t, 10, cfg.Buttons.Step)
	require.Equal(t, 100, cfg.Audio.Volume)
	require.Equal(t, BackendSpeaker, cfg.Audio.Backend)
	require.NoError(t, cfg.Validate())
}

func TestLoadTOMLMapping(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[input]
device = "/dev/input/by-id/usb-rfid-event-kbd"

[sounds]
path = "/srv/sounds"

[sounds.tags]
"1234" = "song_a.mp3"
"0005678" = "song_b.ogg"

[buttons]
hold_off = "250ms"
`)
	v := viper.New()
	v.SetConfigFile(path)

	cfg, err := Load(v)
	require.NoError(t, err)

	require.Equal(t, "/dev/input/by-id/usb-rfid-event-kbd", cfg.Input.Device)
	require.Equal(t, "/srv/sounds", cfg.Sounds.Path)
	require.Equal(t, map[string]string{
		"1234":    "song_a.mp3",
		"0005678": "song_b.ogg",
	}, cfg.Sounds.Tags)
	require.Equal(t, 250*time.Millisecond, cfg.Buttons.HoldOff)
}

func TestLoadExplicitMissingFileIsLoadError(t *testing.T) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "absent.toml"))

	_, err := Load(v)
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
}

func TestLoadMalformedFileIsLoadError(t *testing.T) {
	path := writeConfig(t, "config.toml", "[sounds\npath = ")
	v := viper.New()
	v.SetConfigFile(path)

	_, err := Load(v)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, path, loadErr.File)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		v := viper.New()
		SetDefaults(v)
		var cfg Config
		require.NoError(t, v.Unmarshal(&cfg))
		return &cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown input type", mutate: func(c *Config) { c.Input.Type = "wiegand" }, field: "input.type"},
		{name: "missing device", mutate: func(c *Config) { c.Input.Device = "" }, field: "input.device"},
		{name: "serial without baud", mutate: func(c *Config) { c.Input.Type = InputSerial; c.Input.Baud = 0 }, field: "input.baud"},
		{name: "shared pin", mutate: func(c *Config) { c.Buttons.LowerPin = c.Buttons.RaisePin }, field: "buttons"},
		{name: "zero hold-off", mutate: func(c *Config) { c.Buttons.HoldOff = 0 }, field: "buttons.hold_off"},
		{name: "buttons disabled skips checks", mutate: func(c *Config) { c.Buttons.Enabled = false; c.Buttons.HoldOff = 0 }},
		{name: "step too large", mutate: func(c *Config) { c.Buttons.Step = 101 }, field: "buttons.step"},
		{name: "unknown backend", mutate: func(c *Config) { c.Audio.Backend = "alsa" }, field: "audio.backend"},
		{name: "volume above range", mutate: func(c *Config) { c.Audio.Volume = 120 }, field: "audio.volume"},
		{name: "missing sound path", mutate: func(c *Config) { c.Sounds.Path = "" }, field: "sounds.path"},
		{name: "empty filename", mutate: func(c *Config) { c.Sounds.Tags = map[string]string{"1": ""} }, field: "sounds.tags.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			require.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
