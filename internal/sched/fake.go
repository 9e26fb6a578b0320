package sched

import (
	"sync"
	"time"
)

// FakeSource is a test double Source fired manually with Fire().
type FakeSource struct {
	mu sync.Mutex
	ch chan time.Time

	// Started records the period of every Start call.
	Started []time.Duration

	// Stops counts Stop calls that found the source running.
	Stops int

	running bool
}

// NewFakeSource creates a stopped FakeSource.
func NewFakeSource() *FakeSource {
	return &FakeSource{ch: make(chan time.Time, 1)}
}

// Start records the period and marks the source running.
func (f *FakeSource) Start(period time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Started = append(f.Started, period)
	f.running = true
}

// Stop marks the source stopped.
func (f *FakeSource) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running {
		f.Stops++
	}
	f.running = false
	select {
	case <-f.ch:
	default:
	}
}

// C returns the tick channel.
func (f *FakeSource) C() <-chan time.Time { return f.ch }

// Running reports whether the source is "ticking".
func (f *FakeSource) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

// Fire delivers one tick if the source is running. It reports whether
// the tick was accepted (false when stopped or a tick is already pending).
func (f *FakeSource) Fire() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.running {
		return false
	}
	select {
	case f.ch <- time.Time{}:
		return true
	default:
		return false
	}
}
