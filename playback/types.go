package playback

import (
	"log/slog"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

// Library resolves tag identifiers to decodable sound files
type Library interface {
	Resolve(id string) (string, error)
	Open(path string) (beep.StreamSeekCloser, beep.Format, error)
}

// Sink is an audio output device pulling from a single root streamer
type Sink interface {
	SampleRate() beep.SampleRate

	// Start begins pulling samples from root until Close.
	Start(root beep.Streamer) error

	// Lock excludes the pulling goroutine while the streamer graph changes.
	Lock()
	Unlock()

	Close() error
}

// Controller owns the single output channel. Play, Stop and the volume
// setters may be called from different goroutines.
type Controller struct {
	mu      sync.Mutex
	library Library
	sink    Sink
	channel *channel
	gain    *effects.Volume
	volume  int
	active  beep.StreamSeekCloser
	tag     string
	closed  bool
	logger  *slog.Logger
}
