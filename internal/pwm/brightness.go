package pwm

import (
	"fmt"

	"github.com/ramos-ahron/Led-Intensity-Controller/internal/hw"
)

// Brightness converts analog readings (or an explicit override) into the
// duty cycle. Called once per loop iteration by every mode except the
// fully-off one.
type Brightness struct {
	state  *State
	adc    hw.Analog
	engine *Engine
}

// NewBrightness creates a controller reading from the given ADC.
func NewBrightness(state *State, adc hw.Analog, engine *Engine) *Brightness {
	return &Brightness{state: state, adc: adc, engine: engine}
}

// Update ensures the engine is running, takes one analog sample, and
// applies the derived duty cycle. A zero override means ADC-driven
// brightness; a nonzero override bypasses the scaling for this call.
func (b *Brightness) Update(override uint8) error {
	b.engine.Start()

	raw, err := b.adc.Read()
	if err != nil {
		return fmt.Errorf("read analog: %w", err)
	}
	b.state.ApplyReading(raw, override)
	return nil
}
