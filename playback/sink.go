package playback

import (
	"fmt"

	"jukebox/config"

	"github.com/gopxl/beep/v2"
)

// OpenSink opens the output device selected by cfg
func OpenSink(cfg config.AudioConfig) (Sink, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	switch cfg.Backend {
	case config.BackendSpeaker, "":
		return NewSpeakerSink(rate, cfg.Buffer)
	case config.BackendPulse:
		return NewPulseSink(rate, cfg.Buffer)
	default:
		return nil, fmt.Errorf("unknown audio backend %q", cfg.Backend)
	}
}
