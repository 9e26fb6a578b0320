package hw

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultAnalogPath is the IIO sysfs attribute for the first ADC channel
// (e.g. an MCP3008 or the built-in ADC exposed through the iio subsystem).
const DefaultAnalogPath = "/sys/bus/iio/devices/iio:device0/in_voltage0_raw"

// SysfsAnalog reads raw samples from a Linux IIO sysfs attribute. Reading
// the attribute triggers one conversion and blocks until it completes.
type SysfsAnalog struct {
	path string
}

// NewSysfsAnalog creates a reader for the given sysfs attribute path.
func NewSysfsAnalog(path string) *SysfsAnalog {
	return &SysfsAnalog{path: path}
}

// Read returns one raw sample clamped to [0, AnalogMax].
func (a *SysfsAnalog) Read() (uint16, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return 0, fmt.Errorf("read adc %s: %w", a.path, err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse adc reading %q: %w", data, err)
	}
	if v < 0 {
		v = 0
	}
	if v > AnalogMax {
		v = AnalogMax
	}
	return uint16(v), nil
}
