package buttons

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIOLine is a button input on a GPIO character device line. The line is
// pulled up and active-low, so a pressed button reads as active.
type GPIOLine struct {
	line *gpiocdev.Line
}

var _ Line = (*GPIOLine)(nil)

// OpenGPIO requests offset on chip as a pulled-up input
func OpenGPIO(chip string, offset int) (*GPIOLine, error) {
	l, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.AsActiveLow,
		gpiocdev.WithConsumer("jukebox"))
	if err != nil {
		return nil, fmt.Errorf("request %s line %d: %w", chip, offset, err)
	}
	return &GPIOLine{line: l}, nil
}

// Active reports whether the button is pressed
func (g *GPIOLine) Active() (bool, error) {
	v, err := g.line.Value()
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

// Close releases the line
func (g *GPIOLine) Close() error {
	return g.line.Close()
}
