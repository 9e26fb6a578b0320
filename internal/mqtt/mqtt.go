// Package mqtt mirrors telemetry records and system lifecycle events to
// an MQTT broker, with abstraction for testing. The serial line stays
// the primary telemetry channel; the mirror is best-effort.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/ramos-ahron/Led-Intensity-Controller/internal/telemetry"
)

// Topic is the MQTT topic for telemetry records.
const Topic = "home/ledctl/telemetry"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "home/ledctl/system"

// Publisher publishes to MQTT.
type Publisher interface {
	// Publish mirrors one telemetry record to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(rec telemetry.Record) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown).
type SystemEvent struct {
	Timestamp time.Time
	Event     string // e.g., "STARTUP", "SHUTDOWN"
	Reason    string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	Mode      string // controller mode at event time
	Retained  bool   // Whether the message should be retained by the broker
}

// Payload represents the telemetry MQTT message structure.
type Payload struct {
	LED LEDPayload `json:"led"`
}

// LEDPayload contains one mirrored telemetry record.
type LEDPayload struct {
	Timestamp   string `json:"timestamp"`
	Mode        string `json:"mode"`
	DutyPercent uint8  `json:"duty_percent"`
	RawAnalog   uint16 `json:"raw_analog"`
}

// FormatPayload creates the JSON payload for a telemetry record.
func FormatPayload(rec telemetry.Record) ([]byte, error) {
	payload := Payload{
		LED: LEDPayload{
			Timestamp:   rec.Timestamp.UTC().Format(time.RFC3339),
			Mode:        rec.Mode,
			DutyPercent: rec.DutyPercent,
			RawAnalog:   rec.RawAnalog,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
	Mode      string `json:"mode,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
			Mode:      event.Mode,
		},
	}
	return json.Marshal(payload)
}
