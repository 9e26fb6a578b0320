package mqtt

import (
	"github.com/ramos-ahron/Led-Intensity-Controller/internal/telemetry"
)

// FakePublisher is a test double Publisher. It keeps both the structured
// messages and the rendered JSON payloads so tests can assert on either.
type FakePublisher struct {
	// Telemetry mirror calls, in order, with their rendered payloads.
	Records  []telemetry.Record
	Payloads [][]byte

	// System lifecycle calls, in order, with their rendered payloads.
	SystemEvents   []SystemEvent
	SystemPayloads [][]byte

	// PublishError and PublishSystemError, when set, fail the
	// corresponding call before anything is recorded.
	PublishError       error
	PublishSystemError error

	// Connected is what IsConnected reports.
	Connected bool

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakePublisher creates a FakePublisher.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// Publish records the telemetry record and its rendered payload.
func (f *FakePublisher) Publish(rec telemetry.Record) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	payload, err := FormatPayload(rec)
	if err != nil {
		return err
	}
	f.Records = append(f.Records, rec)
	f.Payloads = append(f.Payloads, payload)
	return nil
}

// PublishSystem records the system event and its rendered payload.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemEvents = append(f.SystemEvents, event)
	f.SystemPayloads = append(f.SystemPayloads, payload)
	return nil
}

// IsConnected reports the scripted connection state.
func (f *FakePublisher) IsConnected() bool { return f.Connected }

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// Reset returns the fake to its initial state.
func (f *FakePublisher) Reset() {
	*f = FakePublisher{}
}
