// Package hw provides the hardware collaborators consumed by the control
// core: digital I/O (one LED output, three button inputs, an edge wake
// signal) and the analog input. The real implementations use the Linux
// GPIO character device and the IIO sysfs ADC interface; the fakes allow
// testing without hardware.
package hw

// IO is the digital I/O surface.
type IO interface {
	// LED drives the LED output pin.
	LED(on bool) error

	// Buttons returns the raw levels of the three button inputs.
	// With pull-ups, a released button reads high (true).
	Buttons() ([3]bool, error)

	// Edges returns the wake channel. The hardware edge watcher performs
	// no button logic; it only delivers a coalesced wake token whenever
	// any button line changes level. Capacity is 1: edges occurring
	// before the consumer polls collapse into a single wake.
	Edges() <-chan struct{}

	// Close releases hardware resources.
	Close() error
}

// Analog reads the potentiometer.
type Analog interface {
	// Read returns one raw sample in [0, 1023], blocking until the
	// conversion completes.
	Read() (uint16, error)
}

// AnalogMax is the full-scale raw ADC reading.
const AnalogMax = 1023

// Default pin assignments (BCM numbering).
const (
	DefaultPinLED     = 8
	DefaultPinButton0 = 2
	DefaultPinButton1 = 4
	DefaultPinButton2 = 17
)
