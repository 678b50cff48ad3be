// Package tz normalizes timezones to fixed UTC-offset labels and converts
// appointment wall-clock times between a client's and a notary's offset.
//
// The platform deliberately collapses geographic zones to fixed offsets:
// scheduling only needs wall-clock equivalence, not daylight-saving rules.
package tz

import (
	"fmt"
	"strconv"
	"strings"
)

// Offset is a wall-clock displacement from UTC in minutes.
// Supported granularity is the quarter hour (:00, :15, :30, :45); the
// fractional zones in use today are :30 and :45.
type Offset int

// Common bounds for offset labels, in hours.
const (
	minOffsetHours = -12
	maxOffsetHours = 14
)

// UTC is the zero offset, the fallback when detection fails entirely.
const UTC Offset = 0

// NewOffset builds an Offset from whole hours and a minute component.
// The sign of hours applies to the whole offset (UTC-3:30 is -210 minutes).
func NewOffset(hours, minutes int) Offset {
	total := hours * 60
	if hours < 0 {
		total -= minutes
	} else {
		total += minutes
	}
	return Offset(total)
}

// Minutes returns the offset as signed minutes from UTC.
func (o Offset) Minutes() int { return int(o) }

// Hours returns the offset as fractional hours (e.g. 5.5 for UTC+5:30).
func (o Offset) Hours() float64 { return float64(o) / 60 }

// Label renders the offset in the platform's canonical UTC±H[:MM] form.
// Whole-hour offsets omit the minute component: UTC+2, UTC-7, UTC+5:45.
func (o Offset) Label() string {
	m := int(o)
	sign := "+"
	if m < 0 {
		sign = "-"
		m = -m
	}
	h, rem := m/60, m%60
	if rem == 0 {
		return fmt.Sprintf("UTC%s%d", sign, h)
	}
	return fmt.Sprintf("UTC%s%d:%02d", sign, h, rem)
}

// ParseLabel parses a UTC±H[:MM] label into an Offset. Hours must lie in
// [0,14] and the minute component, when present, must be a quarter hour.
func ParseLabel(label string) (Offset, error) {
	s := strings.TrimSpace(label)
	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "UTC") {
		return 0, fmt.Errorf("tz: not an offset label: %q", label)
	}
	rest := upper[3:]
	if rest == "" {
		return UTC, nil
	}
	sign := 1
	switch rest[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, fmt.Errorf("tz: offset label %q missing sign", label)
	}
	rest = rest[1:]

	hourPart, minutePart := rest, ""
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		hourPart, minutePart = rest[:i], rest[i+1:]
	}
	hours, err := strconv.Atoi(hourPart)
	if err != nil || hours < 0 || hours > maxOffsetHours {
		return 0, fmt.Errorf("tz: offset label %q has invalid hours", label)
	}
	minutes := 0
	if minutePart != "" {
		minutes, err = strconv.Atoi(minutePart)
		if err != nil {
			return 0, fmt.Errorf("tz: offset label %q has invalid minutes", label)
		}
		switch minutes {
		case 0, 15, 30, 45:
		default:
			return 0, fmt.Errorf("tz: offset label %q minutes must be a quarter hour", label)
		}
	}
	return NewOffset(sign*hours, minutes), nil
}

// roundToQuarter snaps minutes to the nearest supported quarter-hour step.
func roundToQuarter(minutes int) Offset {
	const step = 15
	q := minutes / step
	rem := minutes % step
	if rem >= step/2 {
		q++
	} else if rem <= -step/2 {
		q--
	}
	return Offset(q * step)
}
