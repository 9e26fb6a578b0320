//go:build linux

package hw

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealIO drives actual hardware through the Linux GPIO character device.
type RealIO struct {
	chip    *gpiocdev.Chip
	led     *gpiocdev.Line
	buttons [3]*gpiocdev.Line
	edges   chan struct{}
}

// NewRealIO requests the LED line as output and the three button lines as
// pulled-up inputs with both-edge event detection. Each edge event raises
// the wake signal; button sampling happens later, from the main loop.
func NewRealIO(pinLED int, pinButtons [3]int) (*RealIO, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	r := &RealIO{
		chip:  chip,
		edges: make(chan struct{}, 1),
	}

	r.led, err = chip.RequestLine(pinLED, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request LED pin %d: %w", pinLED, err)
	}

	for i, pin := range pinButtons {
		line, err := chip.RequestLine(pin,
			gpiocdev.AsInput,
			gpiocdev.WithPullUp,
			gpiocdev.WithBothEdges,
			gpiocdev.WithEventHandler(r.onEdge))
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("request button %d pin %d: %w", i, pin, err)
		}
		r.buttons[i] = line
	}

	return r, nil
}

// onEdge runs on the gpiocdev event goroutine. It only raises the wake
// flag; dropping the send when a wake is already pending gives the edge
// coalescing the main loop expects.
func (r *RealIO) onEdge(gpiocdev.LineEvent) {
	select {
	case r.edges <- struct{}{}:
	default:
	}
}

// LED drives the LED output pin.
func (r *RealIO) LED(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := r.led.SetValue(v); err != nil {
		return fmt.Errorf("set LED: %w", err)
	}
	return nil
}

// Buttons returns the raw levels of the three button lines.
func (r *RealIO) Buttons() ([3]bool, error) {
	var levels [3]bool
	for i, line := range r.buttons {
		v, err := line.Value()
		if err != nil {
			return levels, fmt.Errorf("read button %d: %w", i, err)
		}
		levels[i] = v != 0
	}
	return levels, nil
}

// Edges returns the wake channel.
func (r *RealIO) Edges() <-chan struct{} { return r.edges }

// Close forces the LED low and releases all lines.
func (r *RealIO) Close() error {
	var errs []error

	if r.led != nil {
		if err := r.led.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear LED: %w", err))
		}
		if err := r.led.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close LED line: %w", err))
		}
	}
	for i, line := range r.buttons {
		if line == nil {
			continue
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button %d line: %w", i, err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
