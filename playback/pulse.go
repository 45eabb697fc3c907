package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/jfreymuth/pulse"
)

// PulseSink plays through a PulseAudio (or PipeWire) playback stream
type PulseSink struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	latency time.Duration
	client  *pulse.Client
	stream  *pulse.PlaybackStream
	root    beep.Streamer
	frames  [][2]float64
}

var _ Sink = (*PulseSink)(nil)

// NewPulseSink connects to the pulse server
func NewPulseSink(rate beep.SampleRate, latency time.Duration) (*PulseSink, error) {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("jukebox"),
		pulse.ClientApplicationIconName("audio-x-generic"),
	)
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}
	return &PulseSink{rate: rate, latency: latency, client: client}, nil
}

func (p *PulseSink) SampleRate() beep.SampleRate {
	return p.rate
}

func (p *PulseSink) Start(root beep.Streamer) error {
	p.root = root

	stream, err := p.client.NewPlayback(
		pulse.Float32Reader(p.read),
		pulse.PlaybackStereo,
		pulse.PlaybackSampleRate(int(p.rate)),
		pulse.PlaybackLatency(p.latency.Seconds()),
		pulse.PlaybackMediaName("jukebox"),
	)
	if err != nil {
		return fmt.Errorf("create pulse playback stream: %w", err)
	}

	p.stream = stream
	stream.Start()
	return nil
}

// read fills interleaved stereo samples from the root streamer
func (p *PulseSink) read(out []float32) (int, error) {
	n := len(out) / 2
	if cap(p.frames) < n {
		p.frames = make([][2]float64, n)
	}
	frames := p.frames[:n]

	p.mu.Lock()
	filled, _ := p.root.Stream(frames)
	p.mu.Unlock()

	for i := 0; i < filled; i++ {
		out[2*i] = toFloat32(frames[i][0])
		out[2*i+1] = toFloat32(frames[i][1])
	}
	return filled * 2, nil
}

func toFloat32(v float64) float32 {
	return float32(min(max(v, -1), 1))
}

func (p *PulseSink) Lock() {
	p.mu.Lock()
}

func (p *PulseSink) Unlock() {
	p.mu.Unlock()
}

func (p *PulseSink) Close() error {
	if p.stream != nil {
		p.stream.Stop()
		p.stream.Close()
	}
	p.client.Close()

	if p.stream != nil {
		if err := p.stream.Error(); err != nil {
			return fmt.Errorf("pulse playback stream: %w", err)
		}
	}
	return nil
}
