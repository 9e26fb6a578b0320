// Package controller runs the main control loop. Each poll tick it
// folds any pending hardware edge into the button monitor, runs one
// state-machine iteration against the latched events, then clears the
// latches and publishes a status snapshot.
package controller

import (
	"context"
	"log"
	"time"

	"github.com/ramos-ahron/Led-Intensity-Controller/internal/button"
	"github.com/ramos-ahron/Led-Intensity-Controller/internal/fsm"
	"github.com/ramos-ahron/Led-Intensity-Controller/internal/hw"
	"github.com/ramos-ahron/Led-Intensity-Controller/internal/pwm"
	"github.com/ramos-ahron/Led-Intensity-Controller/internal/sched"
	"github.com/ramos-ahron/Led-Intensity-Controller/internal/status"
)

// DefaultPollInterval is the loop period. Edges latched by the wake
// watcher survive until the next iteration, so the interval bounds
// reaction latency, not event capture.
const DefaultPollInterval = 10 * time.Millisecond

// Config wires a Loop.
type Config struct {
	IO hw.IO

	// Monitor holds the edge-detection state. Nil means a fresh one.
	Monitor *button.Monitor

	Machine *fsm.Machine
	State   *pwm.State
	Tracker *status.Tracker

	// Poll is the tick source driving iterations. Nil means a real
	// ticker.
	Poll sched.Source

	// Interval is the poll period. Zero means DefaultPollInterval.
	Interval time.Duration
}

// Loop owns the button monitor and the state machine. All mode logic
// runs on the goroutine calling Run; the PWM tick goroutines only ever
// touch the shared pwm.State.
type Loop struct {
	io       hw.IO
	monitor  *button.Monitor
	machine  *fsm.Machine
	state    *pwm.State
	tracker  *status.Tracker
	poll     sched.Source
	interval time.Duration
}

// NewLoop creates a Loop from the given collaborators.
func NewLoop(cfg Config) *Loop {
	poll := cfg.Poll
	if poll == nil {
		poll = sched.NewTickerSource()
	}
	monitor := cfg.Monitor
	if monitor == nil {
		monitor = button.NewMonitor()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Loop{
		io:       cfg.IO,
		monitor:  monitor,
		machine:  cfg.Machine,
		state:    cfg.State,
		tracker:  cfg.Tracker,
		poll:     poll,
		interval: interval,
	}
}

// Run iterates until the context is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	l.poll.Start(l.interval)
	defer l.poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.poll.C():
			l.step()
		}
	}
}

// step runs one loop iteration.
func (l *Loop) step() {
	// A pending wake means at least one button line changed level since
	// the last poll. Multiple changes collapse into one wake; sampling
	// the current levels is still correct because the monitor latches
	// on the observed transition.
	select {
	case <-l.io.Edges():
		levels, err := l.io.Buttons()
		if err != nil {
			log.Printf("controller: read buttons: %v", err)
		} else {
			l.monitor.Poll(levels)
		}
	default:
	}

	pressed := l.monitor.Pressed()
	l.tracker.CountPresses(pressed)

	if err := l.machine.Tick(pressed); err != nil {
		log.Printf("controller: tick: %v", err)
	}

	// Events are consumed exactly once per iteration, whether or not the
	// state machine acted on them.
	l.monitor.Clear()

	l.tracker.Update(l.machine.Mode().String(), l.state.Snapshot())
}

// TelemetryCounter wraps an emitter so successful transmissions bump
// the tracker's record counter.
type TelemetryCounter struct {
	Emitter fsm.Emitter
	Tracker *status.Tracker
}

// Emit forwards to the wrapped emitter and counts successes.
func (c TelemetryCounter) Emit() error {
	if err := c.Emitter.Emit(); err != nil {
		return err
	}
	c.Tracker.CountTelemetry()
	return nil
}
