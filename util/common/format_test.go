package common

import "testing"

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{"zero", 0, "0.0 B"},
		{"below one KB", 1023, "1023.0 B"},
		{"exactly one KB", 1024, "1.0 KB"},
		{"megabytes", 5 * 1024 * 1024, "5.0 MB"},
		{"fractional GB", 1610612736, "1.5 GB"},
		{"terabytes", 1099511627776, "1.0 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBytes(tt.bytes); got != tt.expected {
				t.Errorf("FormatBytes(%d) = %q, expected %q", tt.bytes, got, tt.expected)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(12.3456, 2); got != "12.35%" {
		t.Errorf("FormatPercent() = %q, expected %q", got, "12.35%")
	}
	if got := FormatPercent(100, 0); got != "100%" {
		t.Errorf("FormatPercent() = %q, expected %q", got, "100%")
	}
}

func TestCombine(t *testing.T) {
	if err := Combine(nil, nil); err != nil {
		t.Errorf("Combine(nil, nil) = %v, expected nil", err)
	}
	err := Combine(nil, NewError("first"), NewErrorf("second %d", 2))
	if err == nil {
		t.Fatal("Combine with errors returned nil")
	}
}
