package telemetry

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// Transmitter sends raw record bytes down the serial line. Transmit
// blocks until the hardware has accepted the bytes.
type Transmitter interface {
	Transmit(p []byte) error
	Close() error
}

// SerialTransmitter writes records to a real serial port.
type SerialTransmitter struct {
	port serial.Port
}

// NewSerialTransmitter opens the given device at the given baud rate,
// 8N1.
func NewSerialTransmitter(device string, baud int) (*SerialTransmitter, error) {
	port, err := serial.Open(device, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}
	return &SerialTransmitter{port: port}, nil
}

// Transmit writes the record, returning an error on a short write.
func (t *SerialTransmitter) Transmit(p []byte) error {
	n, err := t.port.Write(p)
	if err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	if n != len(p) {
		return fmt.Errorf("serial write: short write %d of %d", n, len(p))
	}
	return nil
}

// Close closes the port.
func (t *SerialTransmitter) Close() error {
	return t.port.Close()
}

// WriterTransmitter adapts any io.Writer (stdout, a pipe) as a
// Transmitter, for bench use without a serial line.
type WriterTransmitter struct {
	w io.Writer
}

// NewWriterTransmitter wraps w.
func NewWriterTransmitter(w io.Writer) *WriterTransmitter {
	return &WriterTransmitter{w: w}
}

// Transmit writes the record to the underlying writer.
func (t *WriterTransmitter) Transmit(p []byte) error {
	_, err := t.w.Write(p)
	return err
}

// Close is a no-op.
func (t *WriterTransmitter) Close() error { return nil }
