package fsm

import (
	"errors"
	"time"
)

// Brightness updates the duty cycle from the ADC (override 0) or an
// explicit duty value.
type Brightness interface {
	Update(override uint8) error
}

// Blinker controls the blink overlay.
type Blinker interface {
	Start()
	Stop()
}

// Engine is the PWM engine surface the Off mode needs.
type Engine interface {
	Stop() error
}

// Emitter sends one telemetry record.
type Emitter interface {
	Emit() error
}

// DefaultSettleDelay is the fixed delay the Off mode applies before
// shutting the output down.
const DefaultSettleDelay = 20 * time.Millisecond

// Machine executes the current mode's continuous action once per loop
// iteration, then applies the transition table to the latched button
// events. Owned by the main loop; never touched from tick goroutines.
type Machine struct {
	mode      Mode
	period    uint8
	settle    time.Duration
	sleep     func(time.Duration)
	bright    Brightness
	blink     Blinker
	engine    Engine
	telemetry Emitter
}

// Config wires a Machine.
type Config struct {
	Period    uint8
	Settle    time.Duration
	Sleep     func(time.Duration) // nil means time.Sleep
	Bright    Brightness
	Blink     Blinker
	Engine    Engine
	Telemetry Emitter
}

// NewMachine creates a Machine in the Off mode.
func NewMachine(cfg Config) *Machine {
	settle := cfg.Settle
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Machine{
		mode:      Off,
		period:    cfg.Period,
		settle:    settle,
		sleep:     sleep,
		bright:    cfg.Bright,
		blink:     cfg.Blink,
		engine:    cfg.Engine,
		telemetry: cfg.Telemetry,
	}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode { return m.mode }

// Tick runs one iteration: the current mode's continuous action, then
// the transition. Action errors are reported but never block the
// transition — the loop logs and carries on.
func (m *Machine) Tick(pressed [3]bool) error {
	if !m.mode.Valid() {
		// Not reachable through defined transitions; self-heal.
		m.mode = Off
		return nil
	}

	var err error
	switch m.mode {
	case Off:
		m.sleep(m.settle)
		m.blink.Stop()
		err = m.engine.Stop()
	case OffBlink:
		m.blink.Start()
		err = m.bright.Update(m.period)
	case On:
		err = m.bright.Update(0)
	case OnBlink:
		m.blink.Start()
		err = m.bright.Update(0)
	case TransmitOn:
		err = m.bright.Update(0)
		err = errors.Join(err, m.telemetry.Emit())
	case TransmitBlink:
		m.blink.Start()
		err = m.bright.Update(0)
		err = errors.Join(err, m.telemetry.Emit())
	}

	next, stopBlink := Next(m.mode, pressed)
	if stopBlink {
		m.blink.Stop()
	}
	m.mode = next
	return err
}

// Reset forces the machine into a mode. Used by tests.
func (m *Machine) Reset(mode Mode) {
	m.mode = mode
}
