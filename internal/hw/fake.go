package hw

import (
	"sync"
)

// FakeIO is a test double IO with settable button levels and a recorded
// LED history.
type FakeIO struct {
	mu     sync.Mutex
	levels [3]bool
	edges  chan struct{}

	// LEDWrites records every LED() call in order.
	LEDWrites []bool

	// LEDError, if set, will be returned by LED().
	LEDError error

	// ButtonsError, if set, will be returned by Buttons().
	ButtonsError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeIO creates a FakeIO with all buttons released (levels high, as
// with pull-ups).
func NewFakeIO() *FakeIO {
	return &FakeIO{
		levels: [3]bool{true, true, true},
		edges:  make(chan struct{}, 1),
	}
}

// SetButtons sets the raw button levels and raises the wake signal, like
// a change-notification interrupt would.
func (f *FakeIO) SetButtons(levels [3]bool) {
	f.mu.Lock()
	f.levels = levels
	f.mu.Unlock()
	f.RaiseEdge()
}

// RaiseEdge raises the wake signal without changing levels. A wake
// already pending is left as is (coalescing).
func (f *FakeIO) RaiseEdge() {
	select {
	case f.edges <- struct{}{}:
	default:
	}
}

// LED records the write.
func (f *FakeIO) LED(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LEDError != nil {
		return f.LEDError
	}
	f.LEDWrites = append(f.LEDWrites, on)
	return nil
}

// LastLED returns the most recent LED write, or false if none happened.
func (f *FakeIO) LastLED() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.LEDWrites) == 0 {
		return false
	}
	return f.LEDWrites[len(f.LEDWrites)-1]
}

// Buttons returns the current levels.
func (f *FakeIO) Buttons() ([3]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ButtonsError != nil {
		return [3]bool{}, f.ButtonsError
	}
	return f.levels, nil
}

// Edges returns the wake channel.
func (f *FakeIO) Edges() <-chan struct{} { return f.edges }

// Close marks the fake as closed.
func (f *FakeIO) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// FakeAnalog is a test double Analog that returns scripted samples.
// Each call to Read consumes the next sample; when samples are exhausted
// the last one is returned repeatedly.
type FakeAnalog struct {
	// Samples contains the scripted raw readings.
	Samples []uint16

	// ReadError, if set, will be returned by Read().
	ReadError error

	index int
}

// NewFakeAnalog creates a FakeAnalog with the given samples.
func NewFakeAnalog(samples ...uint16) *FakeAnalog {
	return &FakeAnalog{Samples: samples}
}

// Read returns the next scripted sample.
func (f *FakeAnalog) Read() (uint16, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Samples) == 0 {
		return 0, nil
	}
	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return sample, nil
}
