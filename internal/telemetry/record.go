// Package telemetry formats and transmits the serial telemetry stream:
// one record per transmit-mode iteration, a 3-digit zero-padded duty
// percentage, a space, a 4-digit zero-padded raw analog value, and a
// newline — e.g. "045 0512\n".
package telemetry

import (
	"fmt"
	"time"
)

// DutyPercent converts a duty count against the period into an integer
// percentage, truncating.
func DutyPercent(duty, period uint8) uint8 {
	if period == 0 {
		return 0
	}
	return uint8(uint32(duty) * 100 / uint32(period))
}

// FormatRecord renders one wire record.
func FormatRecord(duty, period uint8, analog uint16) []byte {
	return []byte(fmt.Sprintf("%03d %04d\n", DutyPercent(duty, period), analog))
}

// Record is the structured form of one telemetry sample, used by the
// MQTT mirror and the status page.
type Record struct {
	Timestamp   time.Time
	Mode        string
	DutyPercent uint8
	RawAnalog   uint16
}
