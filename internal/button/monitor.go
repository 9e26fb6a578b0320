// Package button latches release-edge events for the three push-buttons.
// With pull-ups a released button reads high, so the trigger edge is a
// low-to-high transition of the raw level. No debouncing is performed:
// a single-sample glitch counts as a legitimate edge.
package button

// Count is the number of physical buttons.
const Count = 3

// Event tracks one button's edge-detection state.
type Event struct {
	// Pressed is the latched release-edge flag. The monitor only ever
	// sets it; Clear (called by the loop after all consumers ran)
	// resets it.
	Pressed bool

	// Level is the raw level from the most recent poll.
	Level bool

	// PrevLevel is the raw level from the poll before that.
	PrevLevel bool
}

// Monitor holds edge-detection state for all three buttons. It is not
// safe for concurrent use: the main loop is its only caller, and the
// hardware edge watcher never touches it (it only raises the wake flag).
type Monitor struct {
	events [Count]Event
}

// NewMonitor creates a Monitor with all buttons released.
func NewMonitor() *Monitor {
	m := &Monitor{}
	for i := range m.events {
		m.events[i] = Event{Level: true, PrevLevel: true}
	}
	return m
}

// Poll samples the given raw levels. A low-to-high transition latches
// Pressed; the previous level is updated unconditionally. Pressed flags
// already set stay set, so edges survive until the next Clear even if
// further polls happen first.
func (m *Monitor) Poll(levels [Count]bool) {
	for i := range m.events {
		e := &m.events[i]
		e.Level = levels[i]
		if !e.PrevLevel && e.Level {
			e.Pressed = true
		}
		e.PrevLevel = e.Level
	}
}

// Pressed returns the latched press flags.
func (m *Monitor) Pressed() [Count]bool {
	var p [Count]bool
	for i := range m.events {
		p[i] = m.events[i].Pressed
	}
	return p
}

// Clear unconditionally resets all press flags. Edges not consumed by
// the state machine this iteration are dropped here.
func (m *Monitor) Clear() {
	for i := range m.events {
		m.events[i].Pressed = false
	}
}
