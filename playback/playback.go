// Package playback plays one sound at a time on the audio output.
package playback

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

// ErrClosed is returned by Play after Close
var ErrClosed = errors.New("playback is closed")

const (
	MinVolume = 0
	MaxVolume = 100

	resampleQuality = 4
)

// NewController creates a Controller and starts pulling from sink
func NewController(library Library, sink Sink, volume int) (*Controller, error) {
	ch := &channel{}
	c := &Controller{
		library: library,
		sink:    sink,
		channel: ch,
		gain:    &effects.Volume{Streamer: ch, Base: 2},
		logger:  slog.With("component", "playback"),
	}
	c.volume = clamp(volume)
	applyGain(c.gain, c.volume)

	if err := sink.Start(c.gain); err != nil {
		return nil, fmt.Errorf("failed to start audio output: %w", err)
	}
	return c, nil
}

// Play supersedes the current sound with the one mapped to id. Lookup
// failures leave the current sound playing; a decode failure leaves the
// channel stopped.
func (c *Controller) Play(id string) error {
	path, err := c.library.Resolve(id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.stopLocked()

	stream, format, err := c.library.Open(path)
	if err != nil {
		return err
	}

	var s beep.Streamer = stream
	if rate := c.sink.SampleRate(); format.SampleRate != rate {
		s = beep.Resample(resampleQuality, format.SampleRate, rate, stream)
	}

	c.sink.Lock()
	c.channel.current = s
	c.sink.Unlock()

	c.active = stream
	c.tag = id

	c.logger.Info("Playing sound",
		slog.String("tag", id),
		slog.String("path", path),
		slog.Int("sample_rate", int(format.SampleRate)))
	return nil
}

// Stop halts the current sound and releases its decoder
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
}

func (c *Controller) stopLocked() {
	c.sink.Lock()
	c.channel.current = nil
	c.sink.Unlock()

	if c.active == nil {
		return
	}
	if err := c.active.Close(); err != nil {
		c.logger.Warn("Failed to close sound", slog.String("tag", c.tag), slog.Any("error", err))
	}
	c.logger.Debug("Stopped sound", slog.String("tag", c.tag))
	c.active = nil
	c.tag = ""
}

// SetVolume sets the volume in percent, clamped to [0, 100], and returns
// the applied value
func (c *Controller) SetVolume(percent int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.setVolumeLocked(percent)
}

// AdjustVolume changes the volume by delta percent points and returns the
// applied value
func (c *Controller) AdjustVolume(delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.setVolumeLocked(c.volume + delta)
}

func (c *Controller) setVolumeLocked(percent int) int {
	percent = clamp(percent)
	if percent == c.volume {
		return percent
	}

	c.sink.Lock()
	applyGain(c.gain, percent)
	c.sink.Unlock()

	c.volume = percent
	c.logger.Info("Volume changed", slog.Int("volume", percent))
	return percent
}

// Volume returns the current volume in percent
func (c *Controller) Volume() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.volume
}

// Playing reports whether a sound is still being played
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sink.Lock()
	playing := c.channel.current != nil
	c.sink.Unlock()
	return playing
}

// Close stops playback and closes the output device
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.stopLocked()
	c.closed = true
	return c.sink.Close()
}

func clamp(percent int) int {
	return min(max(percent, MinVolume), MaxVolume)
}

// applyGain maps a linear percentage onto the base-2 volume effect
func applyGain(v *effects.Volume, percent int) {
	v.Silent = percent == 0
	if v.Silent {
		v.Volume = 0
		return
	}
	v.Volume = math.Log2(float64(percent) / MaxVolume)
}
