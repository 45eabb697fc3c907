package input

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/warthog618/modem/serial"
)

// Serial reads tag readers that print the identifier followed by CR or LF
// on a serial line. Each byte is translated into the key events a keyboard
// reader would have produced.
type Serial struct {
	port   io.ReadCloser
	buf    []byte
	logger *slog.Logger
}

var _ Source = (*Serial)(nil)

// OpenSerial opens the serial device at the given baud rate
func OpenSerial(device string, baud int) (*Serial, error) {
	port, err := serial.New(serial.WithPort(device), serial.WithBaud(baud))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrDeviceAcquisition, device, err)
	}

	s := NewSerial(port)
	s.logger.Info("Serial reader opened",
		slog.String("device", device),
		slog.Int("baud", baud))
	return s, nil
}

// NewSerial reads from an already opened port
func NewSerial(port io.ReadCloser) *Serial {
	return &Serial{
		port:   port,
		buf:    make([]byte, 64),
		logger: slog.With("component", "serial"),
	}
}

// Fetch blocks until the port yields bytes
func (s *Serial) Fetch(ctx context.Context) ([]Event, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := s.port.Read(s.buf)
		if n > 0 {
			return translate(s.buf[:n]), nil
		}
		if err != nil {
			return nil, fmt.Errorf("read serial: %w", err)
		}
	}
}

// Close closes the port
func (s *Serial) Close() error {
	return s.port.Close()
}

func translate(data []byte) []Event {
	events := make([]Event, 0, len(data)*2)
	for _, b := range data {
		code := KeyUnknown
		switch {
		case b == '\r' || b == '\n':
			code = KeyEnter
		default:
			if k, ok := DigitKey(rune(b)); ok {
				code = k
			}
		}
		events = append(events, Press(code), Release(code))
	}
	return events
}
