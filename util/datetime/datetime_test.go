package datetime

import (
	"testing"
	"time"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		name     string
		wire     string
		expected string
	}{
		{
			name:     "midnight UTC shifts to 3 AM",
			wire:     "2024-01-01T00:00:00Z",
			expected: "2024-01-01, 03:00 AM",
		},
		{
			name:     "missing Z is treated as UTC",
			wire:     "2024-01-01T00:00:00",
			expected: "2024-01-01, 03:00 AM",
		},
		{
			name:     "afternoon crosses into PM",
			wire:     "2024-06-15T13:30:00Z",
			expected: "2024-06-15, 04:30 PM",
		},
		{
			name:     "late evening rolls to next day",
			wire:     "2024-03-31T22:15:00Z",
			expected: "2024-04-01, 01:15 AM",
		},
		{
			name:     "empty input",
			wire:     "",
			expected: "",
		},
		{
			name:     "garbage passes through",
			wire:     "not-a-time",
			expected: "not-a-time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Display(tt.wire); got != tt.expected {
				t.Errorf("Display(%q) = %q, expected %q", tt.wire, got, tt.expected)
			}
		})
	}
}

func TestDisplayIgnoresHostZone(t *testing.T) {
	// The conversion must not consult the process-local zone.
	orig := time.Local
	time.Local = time.FixedZone("FAKE", -8*60*60)
	defer func() { time.Local = orig }()

	if got := Display("2024-01-01T00:00:00Z"); got != "2024-01-01, 03:00 AM" {
		t.Errorf("Display under fake local zone = %q", got)
	}
}

func TestDisplayDate(t *testing.T) {
	if got := DisplayDate("2024-03-31T22:15:00Z"); got != "2024-04-01" {
		t.Errorf("DisplayDate() = %q, expected %q", got, "2024-04-01")
	}
}

func TestParseWireKeepsExplicitOffset(t *testing.T) {
	got, err := ParseWire("2024-01-01T05:00:00+02:00")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseWire with offset = %v", got)
	}
}
