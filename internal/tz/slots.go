package tz

import "fmt"

// The bookable day is defined once, in the platform's reference offset, and
// every other offset's grid is a linear shift of it.
const (
	anchorStartMinutes = 9 * 60  // 09:00
	anchorEndMinutes   = 17 * 60 // exclusive
	slotStepMinutes    = 30
)

// AnchorOffset is the reference offset the canonical schedule is defined in.
var AnchorOffset = NewOffset(-5, 0)

// Slot is one bookable appointment time in a viewer's offset.
type Slot struct {
	// Value is the machine form, 24-hour HH:MM.
	Value string `json:"value"`
	// Label is the human form, 12-hour with AM/PM.
	Label string `json:"label"`
}

// SlotsFor produces the bookable slot grid for a target offset by shifting
// the anchor grid by (target - anchor). Times wrap at the 0/24h boundary;
// the calendar date is left untouched even when a slot crosses midnight,
// matching how stored appointments are keyed by the date the client picked.
func SlotsFor(target Offset) []Slot {
	shift := target.Minutes() - AnchorOffset.Minutes()
	slots := make([]Slot, 0, (anchorEndMinutes-anchorStartMinutes)/slotStepMinutes)
	for m := anchorStartMinutes; m < anchorEndMinutes; m += slotStepMinutes {
		shifted := wrapMinutes(m + shift)
		slots = append(slots, Slot{
			Value: formatClock(shifted),
			Label: formatClock12(shifted),
		})
	}
	return slots
}

// ConvertWallClock re-renders an HH:MM wall-clock time recorded in source
// into the equivalent wall-clock time in target. Either side may be a
// UTC±H[:MM] label or a geographic zone identifier. If anything is
// unresolvable the input is returned unchanged: display conversion is
// best-effort and must never break a dashboard.
func ConvertWallClock(hhmm, source, target string) string {
	srcOffset, err := ResolveOffsetOrZone(source)
	if err != nil {
		return hhmm
	}
	dstOffset, err := ResolveOffsetOrZone(target)
	if err != nil {
		return hhmm
	}
	minutes, err := clockMinutes(hhmm)
	if err != nil {
		return hhmm
	}
	delta := dstOffset.Minutes() - srcOffset.Minutes()
	return formatClock(wrapMinutes(minutes + delta))
}

// ResolveOffsetOrZone accepts either a UTC±H[:MM] label or a geographic
// zone identifier and resolves it to a fixed offset.
func ResolveOffsetOrZone(s string) (Offset, error) {
	if o, err := ParseLabel(s); err == nil {
		return o, nil
	}
	return ResolveZoneOffset(s, timeNow())
}

func wrapMinutes(m int) int {
	const day = 24 * 60
	m %= day
	if m < 0 {
		m += day
	}
	return m
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func formatClock12(minutes int) string {
	h, m := minutes/60, minutes%60
	suffix := "AM"
	switch {
	case h == 0:
		h = 12
	case h == 12:
		suffix = "PM"
	case h > 12:
		h -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}
