package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Mode          string     `json:"mode"`
	DutyPercent   uint8      `json:"duty_percent"`
	PWM           PWMJSON    `json:"pwm"`
	Iterations    uint64     `json:"iterations"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"counts"`
	Config        ConfigJSON `json:"config"`
}

// PWMJSON is the JSON view of the duty-cycle cell.
type PWMJSON struct {
	Period       uint8  `json:"period"`
	BaseDuty     uint8  `json:"base_duty"`
	BlinkDuty    uint8  `json:"blink_duty"`
	CurrentDuty  uint8  `json:"current_duty"`
	BlinkEnabled bool   `json:"blink_enabled"`
	BlinkPhase   string `json:"blink_phase"`
	LastAnalog   uint16 `json:"last_analog"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of the event counters.
type CountsJSON struct {
	Button0   uint64 `json:"button0_presses"`
	Button1   uint64 `json:"button1_presses"`
	Button2   uint64 `json:"button2_presses"`
	Telemetry uint64 `json:"telemetry_records"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs     int64  `json:"poll_ms"`
	FastTickUs int64  `json:"fast_tick_us"`
	SlowTickMs int64  `json:"slow_tick_ms"`
	SettleMs   int64  `json:"settle_ms"`
	Period     uint8  `json:"period"`
	Broker     string `json:"broker,omitempty"`
	HTTPPort   string `json:"http_port,omitempty"`
	SerialDev  string `json:"serial_dev,omitempty"`
	AnalogPath string `json:"analog_path,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	phase := "OFF"
	if snap.PWM.BlinkPhase {
		phase = "ON"
	}

	return StatusInner{
		Mode:        snap.Mode,
		DutyPercent: snap.DutyPercent(),
		PWM: PWMJSON{
			Period:       snap.PWM.Period,
			BaseDuty:     snap.PWM.BaseDuty,
			BlinkDuty:    snap.PWM.BlinkDuty,
			CurrentDuty:  snap.PWM.CurrentDuty,
			BlinkEnabled: snap.PWM.BlinkEnabled,
			BlinkPhase:   phase,
			LastAnalog:   snap.PWM.LastAnalog,
		},
		Iterations:    snap.Iterations,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Button0:   snap.Presses[0],
			Button1:   snap.Presses[1],
			Button2:   snap.Presses[2],
			Telemetry: snap.Telemetry,
		},
		Config: ConfigJSON{
			PollMs:     snap.Config.PollMs,
			FastTickUs: snap.Config.FastTickUs,
			SlowTickMs: snap.Config.SlowTickMs,
			SettleMs:   snap.Config.SettleMs,
			Period:     snap.Config.Period,
			Broker:     snap.Config.Broker,
			HTTPPort:   snap.Config.HTTPPort,
			SerialDev:  snap.Config.SerialDev,
			AnalogPath: snap.Config.AnalogPath,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}
