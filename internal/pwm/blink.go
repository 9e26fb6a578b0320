package pwm

import (
	"context"
	"time"

	"github.com/ramos-ahron/Led-Intensity-Controller/internal/sched"
)

// DefaultBlinkPeriod is the slow-tick half-cycle.
const DefaultBlinkPeriod = 500 * time.Millisecond

// Blink is the slow-tick overlay that alternates the duty cycle between
// the stored blink duty and zero.
type Blink struct {
	state  *State
	slow   sched.Source
	period time.Duration
}

// NewBlink creates a stopped overlay on the given slow-tick source.
func NewBlink(state *State, slow sched.Source, period time.Duration) *Blink {
	if period <= 0 {
		period = DefaultBlinkPeriod
	}
	return &Blink{state: state, slow: slow, period: period}
}

// Start enables the overlay and starts the slow tick. Blink modes call
// this every iteration, so a source already ticking keeps its phase
// timing rather than being restarted.
func (b *Blink) Start() {
	b.state.EnableBlink()
	if !b.slow.Running() {
		b.slow.Start(b.period)
	}
}

// Stop disables the overlay and stops the slow tick. currentDuty is left
// for the brightness controller to restore on the next update.
func (b *Blink) Stop() {
	b.state.DisableBlink()
	b.slow.Stop()
}

// Tick toggles the blink phase.
func (b *Blink) Tick() {
	b.state.BlinkTick()
}

// Run consumes slow ticks until the context is cancelled.
func (b *Blink) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-b.slow.C():
			b.Tick()
		}
	}
}
