package telemetry

import (
	"bytes"
	"testing"
)

func TestDutyPercent(t *testing.T) {
	tests := []struct {
		duty, period, want uint8
	}{
		{25, 50, 50},
		{0, 50, 0},
		{50, 50, 100},
		{1, 50, 2},
		{33, 100, 33},
		{1, 3, 33}, // truncation
		{10, 0, 0}, // degenerate period
	}
	for _, tt := range tests {
		if got := DutyPercent(tt.duty, tt.period); got != tt.want {
			t.Errorf("DutyPercent(%d, %d) = %d, want %d", tt.duty, tt.period, got, tt.want)
		}
	}
}

func TestFormatRecord(t *testing.T) {
	tests := []struct {
		duty, period uint8
		analog       uint16
		want         string
	}{
		{25, 50, 512, "050 0512\n"},
		{0, 50, 0, "000 0000\n"},
		{50, 50, 1023, "100 1023\n"},
		{22, 50, 7, "044 0007\n"},
		{23, 50, 33, "046 0033\n"},
	}
	for _, tt := range tests {
		got := FormatRecord(tt.duty, tt.period, tt.analog)
		if string(got) != tt.want {
			t.Errorf("FormatRecord(%d, %d, %d) = %q, want %q",
				tt.duty, tt.period, tt.analog, got, tt.want)
		}
	}
}

func TestFormatRecordFixedWidth(t *testing.T) {
	for _, rec := range [][]byte{
		FormatRecord(0, 50, 0),
		FormatRecord(50, 50, 1023),
		FormatRecord(7, 50, 42),
	} {
		if len(rec) != 9 {
			t.Errorf("record %q has length %d, want 9", rec, len(rec))
		}
		if !bytes.HasSuffix(rec, []byte("\n")) {
			t.Errorf("record %q missing trailing newline", rec)
		}
		if rec[3] != ' ' {
			t.Errorf("record %q missing separator at offset 3", rec)
		}
	}
}
