package machine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jukebox/input"
	"jukebox/library"
	"jukebox/tag"
)

// Player starts the sound for a scanned tag
type Player interface {
	Play(id string) error
}

// Dispatcher turns reader key presses into Play calls
type Dispatcher struct {
	source    input.Source
	player    Player
	assembler tag.Assembler
	logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher reading from source
func NewDispatcher(source input.Source, player Player) *Dispatcher {
	return &Dispatcher{
		source: source,
		player: player,
		logger: slog.With("component", "dispatcher"),
	}
}

// Run fetches and handles events until ctx is done or the source fails
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("Waiting for tags")

	for {
		events, err := d.source.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				d.logger.Info("Dispatcher stopped")
				return nil
			}
			return fmt.Errorf("failed to fetch input events: %w", err)
		}

		for _, ev := range events {
			d.Handle(ev)
		}
	}
}

// Handle processes a single event
func (d *Dispatcher) Handle(ev input.Event) {
	if !ev.IsKeyPress() {
		return
	}

	if input.IsTerminator(ev.Code) {
		id := d.assembler.TakeAndReset()
		if id == "" {
			d.logger.Debug("Ignoring empty scan")
			return
		}
		d.play(id)
		return
	}

	if r, ok := input.Digit(ev.Code); ok {
		d.assembler.Push(r)
	}
}

// Pending returns the number of digits collected for the current scan
func (d *Dispatcher) Pending() int {
	return d.assembler.Len()
}

func (d *Dispatcher) play(id string) {
	d.logger.Info("Tag scanned", slog.String("tag", id))

	err := d.player.Play(id)
	switch {
	case err == nil:
	case errors.Is(err, library.ErrNotMapped):
		d.logger.Warn("No sound configured for tag", slog.String("tag", id))
	default:
		d.logger.Error("Failed to play sound",
			slog.String("tag", id),
			slog.Any("error", err))
	}
}
