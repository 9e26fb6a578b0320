package telemetry

// FakeTransmitter records transmitted records for test assertions.
type FakeTransmitter struct {
	// Records contains every transmitted byte slice, in order.
	Records [][]byte

	// TransmitError, if set, will be returned by Transmit.
	TransmitError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeTransmitter creates a FakeTransmitter.
func NewFakeTransmitter() *FakeTransmitter {
	return &FakeTransmitter{}
}

// Transmit records a copy of p.
func (f *FakeTransmitter) Transmit(p []byte) error {
	if f.TransmitError != nil {
		return f.TransmitError
	}
	f.Records = append(f.Records, append([]byte(nil), p...))
	return nil
}

// Close marks the transmitter as closed.
func (f *FakeTransmitter) Close() error {
	f.Closed = true
	return nil
}

// Lines returns the recorded records as strings.
func (f *FakeTransmitter) Lines() []string {
	out := make([]string, len(f.Records))
	for i, r := range f.Records {
		out[i] = string(r)
	}
	return out
}
