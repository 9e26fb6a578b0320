// Package status provides a thread-safe status tracker for the ledctl
// daemon. It is read by HTTP handlers while the control loop updates it.
package status

import (
	"sync"
	"time"

	"github.com/ramos-ahron/Led-Intensity-Controller/internal/pwm"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs     int64
	FastTickUs int64
	SlowTickMs int64
	SettleMs   int64
	Period     uint8
	Broker     string
	HTTPPort   string
	SerialDev  string
	AnalogPath string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Mode          string
	PWM           pwm.Snapshot
	Iterations    uint64
	Presses       [3]uint64
	Telemetry     uint64 // records emitted
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// DutyPercent returns the current duty as an integer percentage.
func (s Snapshot) DutyPercent() uint8 {
	if s.PWM.Period == 0 {
		return 0
	}
	return uint8(uint32(s.PWM.CurrentDuty) * 100 / uint32(s.PWM.Period))
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Mode:      "OFF",
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the mode and PWM view and bumps the iteration counter.
// Called from the control loop on every iteration.
func (t *Tracker) Update(mode string, p pwm.Snapshot) {
	t.mu.Lock()
	t.snap.Mode = mode
	t.snap.PWM = p
	t.snap.Iterations++
	t.mu.Unlock()
}

// CountPresses bumps the per-button press counters for each latched
// event.
func (t *Tracker) CountPresses(pressed [3]bool) {
	t.mu.Lock()
	for i, p := range pressed {
		if p {
			t.snap.Presses[i]++
		}
	}
	t.mu.Unlock()
}

// CountTelemetry bumps the emitted-record counter.
func (t *Tracker) CountTelemetry() {
	t.mu.Lock()
	t.snap.Telemetry++
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
