// Package pwm implements the software PWM core: the shared duty-cycle
// state cell, the fast-tick engine that drives the LED pin, the slow-tick
// blink overlay, and the brightness controller that folds analog readings
// into a duty cycle.
package pwm

import (
	"sync"

	"github.com/ramos-ahron/Led-Intensity-Controller/internal/mathx"
)

// analogMax is the full-scale raw ADC reading.
const analogMax = 1023

// DefaultPeriod is the PWM frame length in fast ticks.
const DefaultPeriod = 50

// State is the duty-cycle cell shared between the tick goroutines and the
// main loop. Every field lives behind one mutex: the blink toggle and the
// brightness update mutate currentDuty through the same lock, so the two
// writers can never interleave mid-update. currentDuty is the only field
// the engine's comparator reads, and the engine never writes it.
type State struct {
	mu           sync.Mutex
	period       uint8
	baseDuty     uint8
	blinkDuty    uint8
	currentDuty  uint8
	blinkEnabled bool
	blinkPhase   bool
	lastAnalog   uint16
}

// Snapshot is a point-in-time copy of the cell, safe to use after the
// lock is released.
type Snapshot struct {
	Period       uint8
	BaseDuty     uint8
	BlinkDuty    uint8
	CurrentDuty  uint8
	BlinkEnabled bool
	BlinkPhase   bool
	LastAnalog   uint16
}

// NewState creates a cell with the given frame length, zero duty, and
// blink disabled.
func NewState(period uint8) *State {
	if period == 0 {
		period = DefaultPeriod
	}
	return &State{period: period}
}

// Period returns the PWM frame length. Fixed at configuration time.
func (s *State) Period() uint8 { return s.period }

// CurrentDuty returns the duty value the engine compares its counter
// against.
func (s *State) CurrentDuty() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentDuty
}

// Snapshot returns a copy of the whole cell.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Period:       s.period,
		BaseDuty:     s.baseDuty,
		BlinkDuty:    s.blinkDuty,
		CurrentDuty:  s.currentDuty,
		BlinkEnabled: s.blinkEnabled,
		BlinkPhase:   s.blinkPhase,
		LastAnalog:   s.lastAnalog,
	}
}

// ApplyReading records one analog sample and derives the new duty cycle.
// A zero override scales the sample linearly into [0, period]; a nonzero
// override is used directly (clamped to period). With blink disabled the
// new base takes effect immediately; with blink enabled it is stored as
// the blink duty and currentDuty follows the current phase, so brightness
// changes show without waiting for the next blink tick.
func (s *State) ApplyReading(raw uint16, override uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw > analogMax {
		raw = analogMax
	}
	s.lastAnalog = raw

	base := override
	if base == 0 {
		base = uint8(mathx.Scale(raw, analogMax, uint16(s.period)))
	}
	base = mathx.Clamp(base, 0, s.period)
	s.baseDuty = base

	if !s.blinkEnabled {
		s.currentDuty = base
		return
	}
	s.blinkDuty = base
	if s.blinkPhase {
		s.currentDuty = base
	} else {
		s.currentDuty = 0
	}
}

// BlinkTick toggles the blink phase and applies the phase's duty. It is a
// no-op while blink is disabled; the return value reports whether the
// toggle was applied.
func (s *State) BlinkTick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.blinkEnabled {
		return false
	}
	s.blinkPhase = !s.blinkPhase
	if s.blinkPhase {
		s.currentDuty = s.blinkDuty
	} else {
		s.currentDuty = 0
	}
	return true
}

// EnableBlink marks the overlay active. The phase keeps its previous
// value; the next BlinkTick toggles from there.
func (s *State) EnableBlink() {
	s.mu.Lock()
	s.blinkEnabled = true
	s.mu.Unlock()
}

// DisableBlink marks the overlay inactive. currentDuty is left as is for
// the brightness controller to restore.
func (s *State) DisableBlink() {
	s.mu.Lock()
	s.blinkEnabled = false
	s.mu.Unlock()
}

// BlinkEnabled reports whether the overlay is active.
func (s *State) BlinkEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blinkEnabled
}
