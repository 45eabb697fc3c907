package playback

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// SpeakerSink plays through the default output device
type SpeakerSink struct {
	rate beep.SampleRate
}

var _ Sink = (*SpeakerSink)(nil)

// NewSpeakerSink initializes the speaker with the given sample rate
func NewSpeakerSink(rate beep.SampleRate, buffer time.Duration) (*SpeakerSink, error) {
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	return &SpeakerSink{rate: rate}, nil
}

func (s *SpeakerSink) SampleRate() beep.SampleRate {
	return s.rate
}

func (s *SpeakerSink) Start(root beep.Streamer) error {
	speaker.Play(root)
	return nil
}

func (s *SpeakerSink) Lock() {
	speaker.Lock()
}

func (s *SpeakerSink) Unlock() {
	speaker.Unlock()
}

func (s *SpeakerSink) Close() error {
	speaker.Clear()
	speaker.Close()
	return nil
}
