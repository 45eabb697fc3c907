// Package buttons polls momentary push buttons and turns held buttons into
// paced actions.
package buttons

import (
	"context"
	"log/slog"
	"time"
)

// Line is a digital input wired to a normally-open button
type Line interface {
	// Active reports whether the button is currently pressed.
	Active() (bool, error)
	Close() error
}

// Button binds a line to the action fired while it is held
type Button struct {
	Name   string
	Line   Line
	Action func()
}

type buttonState struct {
	Button
	last  time.Time
	fired bool
}

// Debouncer is a level-triggered debouncer. Every tick each held button
// fires again once its hold-off has elapsed, so holding a button repeats the
// action at the hold-off cadence.
type Debouncer struct {
	holdOff time.Duration
	poll    time.Duration
	buttons []*buttonState
	logger  *slog.Logger
}

// NewDebouncer creates a Debouncer polling every poll interval
func NewDebouncer(holdOff, poll time.Duration, buttons ...Button) *Debouncer {
	d := &Debouncer{
		holdOff: holdOff,
		poll:    poll,
		logger:  slog.With("component", "buttons"),
	}
	for _, b := range buttons {
		d.buttons = append(d.buttons, &buttonState{Button: b})
	}
	return d
}

// Tick samples every button once at now and returns how many actions fired
func (d *Debouncer) Tick(now time.Time) int {
	accepted := 0
	for _, b := range d.buttons {
		active, err := b.Line.Active()
		if err != nil {
			d.logger.Warn("Failed to read button",
				slog.String("button", b.Name),
				slog.Any("error", err))
			continue
		}
		if !active {
			continue
		}
		if b.fired && now.Sub(b.last) < d.holdOff {
			continue
		}

		b.last = now
		b.fired = true
		accepted++

		d.logger.Debug("Button accepted", slog.String("button", b.Name))
		b.Action()
	}
	return accepted
}

// Run polls until ctx is done
func (d *Debouncer) Run(ctx context.Context) error {
	d.logger.Info("Starting button polling",
		slog.Int("buttons", len(d.buttons)),
		slog.Duration("hold_off", d.holdOff),
		slog.Duration("poll", d.poll))

	ticker := time.NewTicker(d.poll)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			d.Tick(now)
		case <-ctx.Done():
			d.logger.Info("Button polling stopped")
			return nil
		}
	}
}
