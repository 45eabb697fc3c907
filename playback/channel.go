package playback

import "github.com/gopxl/beep/v2"

// channel holds at most one sound. It streams silence while empty so the
// output device keeps running between scans.
type channel struct {
	current beep.Streamer
}

var _ beep.Streamer = (*channel)(nil)

func (c *channel) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && c.current != nil {
		m, more := c.current.Stream(samples[n:])
		n += m
		if !more {
			c.current = nil
		} else if m == 0 {
			break
		}
	}

	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (c *channel) Err() error {
	return nil
}
