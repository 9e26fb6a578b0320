package telemetry

import (
	"fmt"
	"log"
	"time"

	"github.com/ramos-ahron/Led-Intensity-Controller/internal/pwm"
)

// Mirror republishes records on a secondary channel (the MQTT bridge).
// A nil Mirror disables mirroring.
type Mirror interface {
	Publish(rec Record) error
}

// Emitter renders the current PWM state as a wire record and hands it to
// the transmitter, optionally mirroring it. One Emit per transmit-mode
// iteration.
type Emitter struct {
	state  *pwm.State
	tx     Transmitter
	mirror Mirror
	mode   func() string
	now    func() time.Time
}

// NewEmitter creates an Emitter. mode supplies the current mode name for
// mirrored records; mirror and mode may be nil.
func NewEmitter(state *pwm.State, tx Transmitter, mirror Mirror, mode func() string) *Emitter {
	return &Emitter{
		state:  state,
		tx:     tx,
		mirror: mirror,
		mode:   mode,
		now:    time.Now,
	}
}

// Emit transmits one record. A serial failure is the caller's problem; a
// mirror failure is only logged, so the primary stream never stalls on
// the broker.
func (e *Emitter) Emit() error {
	snap := e.state.Snapshot()
	if err := e.tx.Transmit(FormatRecord(snap.CurrentDuty, snap.Period, snap.LastAnalog)); err != nil {
		return fmt.Errorf("transmit: %w", err)
	}

	if e.mirror != nil {
		rec := Record{
			Timestamp:   e.now(),
			DutyPercent: DutyPercent(snap.CurrentDuty, snap.Period),
			RawAnalog:   snap.LastAnalog,
		}
		if e.mode != nil {
			rec.Mode = e.mode()
		}
		if err := e.mirror.Publish(rec); err != nil {
			log.Printf("telemetry mirror: %v", err)
		}
	}
	return nil
}
