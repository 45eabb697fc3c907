package input

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/holoplot/go-evdev"
)

type evdevDevice interface {
	ReadOne() (*evdev.InputEvent, error)
	Ungrab() error
	Close() error
}

// Keyboard reads a keyboard-emulating RFID reader through evdev. The device
// is grabbed so typed digits do not leak into a console.
type Keyboard struct {
	dev    evdevDevice
	path   string
	logger *slog.Logger
}

var _ Source = (*Keyboard)(nil)

// OpenKeyboard opens and grabs the device node at path
func OpenKeyboard(path string) (*Keyboard, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrDeviceAcquisition, path, err)
	}

	if err := dev.Grab(); err != nil {
		dev.Close()
		return nil, fmt.Errorf("%w: grab %s: %w", ErrDeviceAcquisition, path, err)
	}

	k := newKeyboard(dev, path)
	name, err := dev.Name()
	if err != nil {
		name = "unknown"
	}
	k.logger.Info("Input device acquired", slog.String("name", name))
	return k, nil
}

func newKeyboard(dev evdevDevice, path string) *Keyboard {
	return &Keyboard{
		dev:    dev,
		path:   path,
		logger: slog.With("component", "keyboard", "device", path),
	}
}

// Fetch reads events up to the next SYN_REPORT and returns them as a batch
func (k *Keyboard) Fetch(ctx context.Context) ([]Event, error) {
	var batch []Event
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ev, err := k.dev.ReadOne()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", k.path, err)
		}

		if ev.Type == evdev.EV_SYN {
			if ev.Code == evdev.SYN_REPORT && len(batch) > 0 {
				return batch, nil
			}
			continue
		}
		batch = append(batch, convert(ev))
	}
}

// Close releases the grab and closes the device
func (k *Keyboard) Close() error {
	if err := k.dev.Ungrab(); err != nil {
		k.logger.Debug("Ungrab failed", slog.Any("error", err))
	}
	return k.dev.Close()
}

func convert(ev *evdev.InputEvent) Event {
	e := Event{Code: KeyCode(ev.Code), Value: ev.Value}
	switch ev.Type {
	case evdev.EV_KEY:
		e.Type = EventKey
	default:
		e.Type = EventOther
	}
	return e
}
