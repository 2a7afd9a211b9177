// Package datetime converts wire timestamps to the panel's display zone.
//
// The billing API sends ISO-8601 strings that are UTC whether or not they
// carry a trailing Z. Display is always East Africa Time, a fixed +03:00
// shift with no DST, applied by offset arithmetic so the host timezone
// never leaks in.
package datetime

import (
	"strings"
	"time"
)

const (
	displayOffsetHours = 3
	displayFormat      = "2006-01-02, 03:04 PM"
	dateFormat         = "2006-01-02"
)

var displayZone = time.FixedZone("EAT", displayOffsetHours*60*60)

// ParseWire parses a wire timestamp, appending the Z the API sometimes
// omits.
func ParseWire(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if !strings.HasSuffix(value, "Z") && !strings.ContainsAny(value[strings.LastIndex(value, "T")+1:], "+-") {
		value += "Z"
	}
	return time.Parse(time.RFC3339, value)
}

// Display renders a wire timestamp at the fixed +3 offset, e.g.
// "2024-01-01, 03:00 AM". Unparseable input is returned verbatim so a bad
// record never blanks a whole list.
func Display(value string) string {
	t, err := ParseWire(value)
	if err != nil {
		return value
	}
	if t.IsZero() {
		return ""
	}
	return t.In(displayZone).Format(displayFormat)
}

// DisplayDate renders only the date portion at the fixed offset.
func DisplayDate(value string) string {
	t, err := ParseWire(value)
	if err != nil {
		return value
	}
	if t.IsZero() {
		return ""
	}
	return t.In(displayZone).Format(dateFormat)
}

// Zone returns the fixed display zone for callers doing their own
// formatting.
func Zone() *time.Location {
	return displayZone
}
