// Package sched provides restartable periodic tick sources.
// The real implementation wraps time.Ticker; the fake fires on demand.
// A source delivers ticks on a fixed channel with capacity 1, so ticks
// coalesce when the consumer lags instead of queueing.
package sched

import (
	"sync"
	"time"
)

// Source is a periodic tick source that can be started and stopped
// repeatedly. Start while running restarts with the new period.
type Source interface {
	// Start begins (or restarts) ticking with the given period.
	Start(period time.Duration)

	// Stop halts ticking. Any undelivered tick is discarded.
	Stop()

	// C returns the tick channel. The channel is fixed for the lifetime
	// of the source and never closed.
	C() <-chan time.Time

	// Running reports whether the source is currently ticking.
	Running() bool
}

// TickerSource is the real Source backed by time.Ticker.
type TickerSource struct {
	mu      sync.Mutex
	out     chan time.Time
	stop    chan struct{}
	running bool
}

// NewTickerSource creates a stopped TickerSource.
func NewTickerSource() *TickerSource {
	return &TickerSource{
		out: make(chan time.Time, 1),
	}
}

// Start begins ticking with the given period, replacing any previous run.
func (s *TickerSource) Start(period time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		close(s.stop)
	}
	s.stop = make(chan struct{})
	s.running = true
	go s.relay(period, s.stop)
}

// Stop halts ticking and discards any buffered tick.
func (s *TickerSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.stop)
	s.running = false

	// Drain a tick that raced in before the relay saw the stop.
	select {
	case <-s.out:
	default:
	}
}

// C returns the tick channel.
func (s *TickerSource) C() <-chan time.Time { return s.out }

// Running reports whether the source is ticking.
func (s *TickerSource) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// relay copies ticker ticks to the output channel until stopped.
// Sends are non-blocking: a slow consumer sees coalesced ticks.
func (s *TickerSource) relay(period time.Duration, stop chan struct{}) {
	t := time.NewTicker(period)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case tm := <-t.C:
			select {
			case s.out <- tm:
			default:
			}
		}
	}
}
