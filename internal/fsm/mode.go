// Package fsm holds the top-level mode state machine. The transition
// rules live in a pure function over (mode, pressed flags) so the graph
// can be tested table-driven, separate from action execution.
package fsm

// Mode is the controller's operating mode.
type Mode uint8

const (
	// Off: LED forced off, all tick sources stopped.
	Off Mode = iota
	// OffBlink: blinking at maximum brightness.
	OffBlink
	// On: steady LED, brightness tracking the potentiometer.
	On
	// OnBlink: blinking at potentiometer brightness.
	OnBlink
	// TransmitOn: steady LED plus one telemetry record per iteration.
	TransmitOn
	// TransmitBlink: blinking LED plus telemetry.
	TransmitBlink
)

// Valid reports whether m is one of the six defined modes.
func (m Mode) Valid() bool { return m <= TransmitBlink }

func (m Mode) String() string {
	switch m {
	case Off:
		return "OFF"
	case OffBlink:
		return "OFF_BLINK"
	case On:
		return "ON"
	case OnBlink:
		return "ON_BLINK"
	case TransmitOn:
		return "TRANSMIT_ON"
	case TransmitBlink:
		return "TRANSMIT_BLINK"
	}
	return "INVALID"
}

// Next computes the successor mode for the latched button events.
// Buttons are evaluated in fixed precedence order 0, 1, 2; only the first
// satisfied rule fires, so simultaneous presses act on the highest-
// precedence one. The second result reports whether the transition must
// stop the blink overlay. Unmatched events are left for the loop's Clear
// to drop. An invalid mode falls back to Off.
func Next(m Mode, pressed [3]bool) (Mode, bool) {
	switch m {
	case Off:
		if pressed[0] {
			return On, false
		}
		if pressed[1] {
			return OffBlink, false
		}
	case OffBlink:
		if pressed[1] {
			return Off, true
		}
	case On:
		if pressed[0] {
			return Off, false
		}
		if pressed[1] {
			return OnBlink, false
		}
		if pressed[2] {
			return TransmitOn, false
		}
	case OnBlink:
		if pressed[1] {
			return On, true
		}
		if pressed[2] {
			return TransmitBlink, false
		}
	case TransmitOn:
		if pressed[0] {
			return Off, false
		}
		if pressed[1] {
			return TransmitBlink, false
		}
		if pressed[2] {
			return On, false
		}
	case TransmitBlink:
		if pressed[1] {
			return TransmitOn, true
		}
		if pressed[2] {
			return OnBlink, false
		}
	default:
		return Off, false
	}
	return m, false
}
