package telemetry

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/ramos-ahron/Led-Intensity-Controller/internal/pwm"
)

type fakeMirror struct {
	records []Record
	err     error
}

func (m *fakeMirror) Publish(rec Record) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func TestEmitWireFormat(t *testing.T) {
	state := pwm.NewState(50)
	state.ApplyReading(512, 0) // duty 25, 50%
	tx := NewFakeTransmitter()
	e := NewEmitter(state, tx, nil, nil)

	if err := e.Emit(); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(tx.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(tx.Records))
	}
	if got := string(tx.Records[0]); got != "050 0512\n" {
		t.Errorf("record = %q, want %q", got, "050 0512\n")
	}
}

func TestEmitOnePerCall(t *testing.T) {
	state := pwm.NewState(50)
	tx := NewFakeTransmitter()
	e := NewEmitter(state, tx, nil, nil)

	for i := 0; i < 3; i++ {
		if err := e.Emit(); err != nil {
			t.Fatalf("Emit %d: %v", i, err)
		}
	}
	if len(tx.Records) != 3 {
		t.Errorf("got %d records, want 3", len(tx.Records))
	}
}

func TestEmitTransmitError(t *testing.T) {
	state := pwm.NewState(50)
	tx := NewFakeTransmitter()
	tx.TransmitError = errors.New("uart busy")
	e := NewEmitter(state, tx, nil, nil)

	if err := e.Emit(); err == nil {
		t.Error("expected transmit error")
	}
}

func TestEmitMirrors(t *testing.T) {
	state := pwm.NewState(50)
	state.ApplyReading(1023, 0)
	tx := NewFakeTransmitter()
	mirror := &fakeMirror{}
	e := NewEmitter(state, tx, mirror, func() string { return "TRANSMIT_ON" })
	e.now = func() time.Time { return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC) }

	if err := e.Emit(); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(mirror.records) != 1 {
		t.Fatalf("got %d mirrored records, want 1", len(mirror.records))
	}
	rec := mirror.records[0]
	if rec.DutyPercent != 100 {
		t.Errorf("DutyPercent = %d, want 100", rec.DutyPercent)
	}
	if rec.RawAnalog != 1023 {
		t.Errorf("RawAnalog = %d, want 1023", rec.RawAnalog)
	}
	if rec.Mode != "TRANSMIT_ON" {
		t.Errorf("Mode = %q, want TRANSMIT_ON", rec.Mode)
	}
	if rec.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestEmitMirrorFailureDoesNotFail(t *testing.T) {
	state := pwm.NewState(50)
	tx := NewFakeTransmitter()
	mirror := &fakeMirror{err: errors.New("broker down")}
	e := NewEmitter(state, tx, mirror, nil)

	if err := e.Emit(); err != nil {
		t.Errorf("mirror failure must not fail Emit, got %v", err)
	}
	if len(tx.Records) != 1 {
		t.Error("primary record should still be transmitted")
	}
}

func TestWriterTransmitter(t *testing.T) {
	var buf bytes.Buffer
	tx := NewWriterTransmitter(&buf)
	if err := tx.Transmit([]byte("045 0512\n")); err != nil {
		t.Fatalf("Transmit: %v", err)
	}
	if buf.String() != "045 0512\n" {
		t.Errorf("wrote %q", buf.String())
	}
	if err := tx.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
