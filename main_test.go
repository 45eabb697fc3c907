package main

import (
	"testing"
	"time"

	"jukebox/config"
)

func TestConfigValidation(t *testing.T) {
	base := func() config.Config {
		return config.Config{
			Input: config.InputConfig{
				Type:   config.InputKeyboard,
				Device: "/dev/input/event0",
			},
			Buttons: config.ButtonsConfig{
				Enabled:      true,
				Chip:         "gpiochip0",
				RaisePin:     2,
				LowerPin:     4,
				HoldOff:      500 * time.Millisecond,
				PollInterval: 20 * time.Millisecond,
				Step:         10,
			},
			Audio: config.AudioConfig{
				Backend:    config.BackendSpeaker,
				SampleRate: 44100,
				Volume:     100,
			},
			Sounds: config.SoundsConfig{
				Path: "sounds",
				Tags: map[string]string{"1234": "song_a.mp3"},
			},
			Logging: config.LoggingConfig{
				Level:  "info",
				Format: "text",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*config.Config) {},
			wantErr: false,
		},
		{
			name:    "missing input device",
			mutate:  func(c *config.Config) { c.Input.Device = "" },
			wantErr: true,
		},
		{
			name:    "missing sound directory",
			mutate:  func(c *config.Config) { c.Sounds.Path = "" },
			wantErr: true,
		},
		{
			name:    "negative volume",
			mutate:  func(c *config.Config) { c.Audio.Volume = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
