package fsm

import (
	"errors"
	"testing"
	"time"
)

// fakeActions records every action call, standing in for the brightness
// controller, blink overlay, engine, and telemetry emitter at once.
type fakeActions struct {
	updates     []uint8
	blinkStarts int
	blinkStops  int
	engineStops int
	emits       int
	updateErr   error
	emitErr     error
}

func (f *fakeActions) Update(override uint8) error {
	f.updates = append(f.updates, override)
	return f.updateErr
}
func (f *fakeActions) Start()      { f.blinkStarts++ }
func (f *fakeActions) Stop()       { f.blinkStops++ }
func (f *fakeActions) StopEngine() error {
	f.engineStops++
	return nil
}
func (f *fakeActions) Emit() error {
	f.emits++
	return f.emitErr
}

// engineAdapter lets fakeActions satisfy the Engine interface without
// colliding with the Blinker Stop method.
type engineAdapter struct{ f *fakeActions }

func (e engineAdapter) Stop() error { return e.f.StopEngine() }

func newTestMachine(period uint8) (*Machine, *fakeActions, *[]time.Duration) {
	f := &fakeActions{}
	var sleeps []time.Duration
	m := NewMachine(Config{
		Period:    period,
		Settle:    20 * time.Millisecond,
		Sleep:     func(d time.Duration) { sleeps = append(sleeps, d) },
		Bright:    f,
		Blink:     f,
		Engine:    engineAdapter{f},
		Telemetry: f,
	})
	return m, f, &sleeps
}

func none() [3]bool { return [3]bool{} }

func TestMachineStartsOff(t *testing.T) {
	m, _, _ := newTestMachine(50)
	if m.Mode() != Off {
		t.Errorf("initial mode = %v, want Off", m.Mode())
	}
}

func TestOffAction(t *testing.T) {
	m, f, sleeps := newTestMachine(50)
	if err := m.Tick(none()); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if len(*sleeps) != 1 || (*sleeps)[0] != 20*time.Millisecond {
		t.Errorf("sleeps = %v, want one 20ms settle delay", *sleeps)
	}
	if f.blinkStops != 1 {
		t.Errorf("blinkStops = %d, want 1", f.blinkStops)
	}
	if f.engineStops != 1 {
		t.Errorf("engineStops = %d, want 1", f.engineStops)
	}
	if len(f.updates) != 0 {
		t.Errorf("Off must not update brightness, got %v", f.updates)
	}
	if m.Mode() != Off {
		t.Errorf("mode = %v, want Off (no press)", m.Mode())
	}
}

func TestOffBlinkAction(t *testing.T) {
	m, f, _ := newTestMachine(50)
	m.Reset(OffBlink)
	m.Tick(none())

	if f.blinkStarts != 1 {
		t.Errorf("blinkStarts = %d, want 1", f.blinkStarts)
	}
	if len(f.updates) != 1 || f.updates[0] != 50 {
		t.Errorf("updates = %v, want one override at period (max brightness)", f.updates)
	}
}

func TestOnAction(t *testing.T) {
	m, f, _ := newTestMachine(50)
	m.Reset(On)
	m.Tick(none())

	if len(f.updates) != 1 || f.updates[0] != 0 {
		t.Errorf("updates = %v, want one ADC-driven update", f.updates)
	}
	if f.blinkStarts != 0 || f.emits != 0 {
		t.Error("On must not blink or emit telemetry")
	}
}

func TestOnBlinkAction(t *testing.T) {
	m, f, _ := newTestMachine(50)
	m.Reset(OnBlink)
	m.Tick(none())

	if f.blinkStarts != 1 {
		t.Errorf("blinkStarts = %d, want 1", f.blinkStarts)
	}
	if len(f.updates) != 1 || f.updates[0] != 0 {
		t.Errorf("updates = %v, want one ADC-driven update", f.updates)
	}
}

func TestTransmitActionsEmit(t *testing.T) {
	m, f, _ := newTestMachine(50)
	m.Reset(TransmitOn)
	m.Tick(none())
	if f.emits != 1 {
		t.Errorf("TransmitOn emits = %d, want 1", f.emits)
	}

	m.Reset(TransmitBlink)
	m.Tick(none())
	if f.emits != 2 {
		t.Errorf("TransmitBlink emits = %d, want 2", f.emits)
	}
	if f.blinkStarts != 1 {
		t.Errorf("blinkStarts = %d, want 1 (TransmitBlink only)", f.blinkStarts)
	}
}

func TestTransitionStopsBlink(t *testing.T) {
	m, f, _ := newTestMachine(50)
	m.Reset(OnBlink)

	// Button 1 in OnBlink: action starts blink, transition stops it.
	m.Tick([3]bool{false, true, false})
	if m.Mode() != On {
		t.Errorf("mode = %v, want On", m.Mode())
	}
	if f.blinkStops != 1 {
		t.Errorf("blinkStops = %d, want 1 (transition side effect)", f.blinkStops)
	}
}

func TestPrecedenceInOn(t *testing.T) {
	// Both button 0 and button 1 pressed in On lands in Off, never
	// OnBlink.
	m, _, _ := newTestMachine(50)
	m.Reset(On)
	m.Tick([3]bool{true, true, false})
	if m.Mode() != Off {
		t.Errorf("mode = %v, want Off", m.Mode())
	}
}

func TestInvalidModeSelfHeals(t *testing.T) {
	m, f, sleeps := newTestMachine(50)
	m.Reset(Mode(42))

	if err := m.Tick([3]bool{true, false, false}); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if m.Mode() != Off {
		t.Errorf("mode = %v, want Off after self-heal", m.Mode())
	}
	// The healing iteration runs no actions and consumes no events.
	if len(f.updates) != 0 || f.emits != 0 || len(*sleeps) != 0 {
		t.Error("healing iteration must not execute actions")
	}
}

func TestActionErrorDoesNotBlockTransition(t *testing.T) {
	m, f, _ := newTestMachine(50)
	f.updateErr = errors.New("adc fault")
	m.Reset(On)

	err := m.Tick([3]bool{false, true, false})
	if err == nil {
		t.Error("expected propagated action error")
	}
	if m.Mode() != OnBlink {
		t.Errorf("mode = %v, want OnBlink despite action error", m.Mode())
	}
}

func TestEmitErrorJoined(t *testing.T) {
	m, f, _ := newTestMachine(50)
	f.emitErr = errors.New("serial fault")
	m.Reset(TransmitOn)

	if err := m.Tick(none()); err == nil {
		t.Error("expected emit error")
	}
	if len(f.updates) != 1 {
		t.Error("brightness update must still run before the failing emit")
	}
}

func TestFullButtonTour(t *testing.T) {
	// Off -> On -> OnBlink -> TransmitBlink -> TransmitOn -> Off.
	m, _, _ := newTestMachine(50)

	steps := []struct {
		press [3]bool
		want  Mode
	}{
		{[3]bool{true, false, false}, On},
		{[3]bool{false, true, false}, OnBlink},
		{[3]bool{false, false, true}, TransmitBlink},
		{[3]bool{false, true, false}, TransmitOn},
		{[3]bool{true, false, false}, Off},
	}
	for i, st := range steps {
		m.Tick(st.press)
		if m.Mode() != st.want {
			t.Fatalf("step %d: mode = %v, want %v", i, m.Mode(), st.want)
		}
	}
}
