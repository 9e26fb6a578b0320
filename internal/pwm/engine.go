package pwm

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ramos-ahron/Led-Intensity-Controller/internal/sched"
)

// Output drives the LED pin. hw.IO satisfies it.
type Output interface {
	LED(on bool) error
}

// DefaultTickPeriod is the fast-tick period. With the default frame
// length of 50 this gives a ~40 Hz PWM carrier.
const DefaultTickPeriod = 500 * time.Microsecond

// Engine is the free-running software PWM comparator. On each fast tick
// it advances a counter modulo the frame length and drives the output
// high while the counter is below currentDuty. The engine only reads the
// duty cell, never writes it.
type Engine struct {
	state *State
	out   Output
	fast  sched.Source
	tick  time.Duration

	mu      sync.Mutex
	counter uint8
	running bool
}

// NewEngine creates a stopped engine on the given fast-tick source.
func NewEngine(state *State, out Output, fast sched.Source, tick time.Duration) *Engine {
	if tick <= 0 {
		tick = DefaultTickPeriod
	}
	return &Engine{state: state, out: out, fast: fast, tick: tick}
}

// Start seeds the counter and activates the fast-tick source. Calling
// Start on a running engine is a no-op, so the brightness controller can
// use it as an ensure-running step every iteration.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return
	}
	e.counter = 0
	e.running = true
	e.fast.Start(e.tick)
}

// Stop deactivates the fast-tick source and forces the output low.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.fast.Stop()
	e.running = false
	e.counter = 0
	return e.out.LED(false)
}

// Running reports whether the engine is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Tick advances the counter one step and updates the output pin. A tick
// that arrives after Stop is ignored.
func (e *Engine) Tick() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return nil
	}
	e.counter = (e.counter + 1) % e.state.Period()
	return e.out.LED(e.counter < e.state.CurrentDuty())
}

// Run consumes fast ticks until the context is cancelled. Output errors
// are logged and do not stop the engine.
func (e *Engine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-e.fast.C():
			if err := e.Tick(); err != nil {
				log.Printf("pwm tick: %v", err)
			}
		}
	}
}
