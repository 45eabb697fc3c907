package input

import (
	"fmt"

	"jukebox/config"
)

// Open acquires the reader described by cfg
func Open(cfg config.InputConfig) (Source, error) {
	switch cfg.Type {
	case config.InputKeyboard, "":
		return OpenKeyboard(cfg.Device)
	case config.InputSerial:
		return OpenSerial(cfg.Device, cfg.Baud)
	default:
		return nil, fmt.Errorf("%w: unknown input type %q", ErrDeviceAcquisition, cfg.Type)
	}
}
