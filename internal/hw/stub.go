//go:build !linux

package hw

import "errors"

// RealIO is not available on non-Linux platforms.
type RealIO struct{}

// NewRealIO returns an error on non-Linux platforms.
func NewRealIO(pinLED int, pinButtons [3]int) (*RealIO, error) {
	return nil, errors.New("hw: not supported on this platform (requires Linux)")
}

// LED is not implemented on non-Linux platforms.
func (r *RealIO) LED(on bool) error { return errors.New("hw: not supported") }

// Buttons is not implemented on non-Linux platforms.
func (r *RealIO) Buttons() ([3]bool, error) {
	return [3]bool{}, errors.New("hw: not supported")
}

// Edges returns a channel that never delivers.
func (r *RealIO) Edges() <-chan struct{} { return nil }

// Close is not implemented on non-Linux platforms.
func (r *RealIO) Close() error { return nil }
