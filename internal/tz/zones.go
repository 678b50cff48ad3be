package tz

// zoneOffsets maps common IANA zone identifiers to their standard fixed
// offset. The mapping is intentionally lossy: every zone sharing an offset
// collapses to the same label, and daylight-saving shifts are ignored.
// Zones absent here are resolved dynamically (see detect.go).
var zoneOffsets = map[string]Offset{
	// UTC-12 .. UTC-9
	"Etc/GMT+12":        NewOffset(-12, 0),
	"Pacific/Pago_Pago": NewOffset(-11, 0),
	"Pacific/Midway":    NewOffset(-11, 0),
	"Pacific/Honolulu":  NewOffset(-10, 0),
	"Pacific/Marquesas": NewOffset(-9, 30),
	"America/Anchorage": NewOffset(-9, 0),

	// North America
	"America/Los_Angeles": NewOffset(-8, 0),
	"America/Vancouver":   NewOffset(-8, 0),
	"America/Tijuana":     NewOffset(-8, 0),
	"America/Denver":      NewOffset(-7, 0),
	"America/Phoenix":     NewOffset(-7, 0),
	"America/Edmonton":    NewOffset(-7, 0),
	"America/Chicago":     NewOffset(-6, 0),
	"America/Winnipeg":    NewOffset(-6, 0),
	"America/Mexico_City": NewOffset(-6, 0),
	"America/Guatemala":   NewOffset(-6, 0),
	"America/New_York":    NewOffset(-5, 0),
	"America/Toronto":     NewOffset(-5, 0),
	"America/Bogota":      NewOffset(-5, 0),
	"America/Lima":        NewOffset(-5, 0),
	"America/Panama":      NewOffset(-5, 0),
	"America/Halifax":     NewOffset(-4, 0),
	"America/Puerto_Rico": NewOffset(-4, 0),
	"America/Santiago":    NewOffset(-4, 0),
	"America/La_Paz":      NewOffset(-4, 0),
	"America/St_Johns":    NewOffset(-3, 30),

	// South America / Atlantic
	"America/Sao_Paulo":            NewOffset(-3, 0),
	"America/Argentina/Buenos_Aires": NewOffset(-3, 0),
	"America/Montevideo":           NewOffset(-3, 0),
	"America/Noronha":              NewOffset(-2, 0),
	"Atlantic/South_Georgia":       NewOffset(-2, 0),
	"Atlantic/Azores":              NewOffset(-1, 0),
	"Atlantic/Cape_Verde":          NewOffset(-1, 0),

	// UTC+0
	"UTC":                NewOffset(0, 0),
	"Etc/UTC":            NewOffset(0, 0),
	"Europe/London":      NewOffset(0, 0),
	"Europe/Lisbon":      NewOffset(0, 0),
	"Atlantic/Reykjavik": NewOffset(0, 0),
	"Africa/Accra":       NewOffset(0, 0),

	// Europe / Africa
	"Europe/Paris":        NewOffset(1, 0),
	"Europe/Berlin":       NewOffset(1, 0),
	"Europe/Madrid":       NewOffset(1, 0),
	"Europe/Rome":         NewOffset(1, 0),
	"Europe/Amsterdam":    NewOffset(1, 0),
	"Europe/Warsaw":       NewOffset(1, 0),
	"Europe/Stockholm":    NewOffset(1, 0),
	"Africa/Lagos":        NewOffset(1, 0),
	"Europe/Athens":       NewOffset(2, 0),
	"Europe/Helsinki":     NewOffset(2, 0),
	"Europe/Kyiv":         NewOffset(2, 0),
	"Africa/Cairo":        NewOffset(2, 0),
	"Africa/Johannesburg": NewOffset(2, 0),
	"Asia/Jerusalem":      NewOffset(2, 0),
	"Europe/Moscow":       NewOffset(3, 0),
	"Europe/Istanbul":     NewOffset(3, 0),
	"Asia/Riyadh":         NewOffset(3, 0),
	"Asia/Baghdad":        NewOffset(3, 0),
	"Africa/Nairobi":      NewOffset(3, 0),
	"Asia/Tehran":         NewOffset(3, 30),

	// Middle East / Central & South Asia
	"Asia/Dubai":       NewOffset(4, 0),
	"Asia/Baku":        NewOffset(4, 0),
	"Indian/Mauritius": NewOffset(4, 0),
	"Asia/Kabul":       NewOffset(4, 30),
	"Asia/Karachi":     NewOffset(5, 0),
	"Asia/Tashkent":    NewOffset(5, 0),
	"Asia/Kolkata":     NewOffset(5, 30),
	"Asia/Colombo":     NewOffset(5, 30),
	"Asia/Kathmandu":   NewOffset(5, 45),
	"Asia/Dhaka":       NewOffset(6, 0),
	"Asia/Almaty":      NewOffset(6, 0),
	"Asia/Yangon":      NewOffset(6, 30),

	// East Asia / Oceania
	"Asia/Bangkok":         NewOffset(7, 0),
	"Asia/Jakarta":         NewOffset(7, 0),
	"Asia/Ho_Chi_Minh":     NewOffset(7, 0),
	"Asia/Shanghai":        NewOffset(8, 0),
	"Asia/Hong_Kong":       NewOffset(8, 0),
	"Asia/Singapore":       NewOffset(8, 0),
	"Asia/Taipei":          NewOffset(8, 0),
	"Asia/Manila":          NewOffset(8, 0),
	"Asia/Kuala_Lumpur":    NewOffset(8, 0),
	"Australia/Perth":      NewOffset(8, 0),
	"Australia/Eucla":      NewOffset(8, 45),
	"Asia/Tokyo":           NewOffset(9, 0),
	"Asia/Seoul":           NewOffset(9, 0),
	"Australia/Adelaide":   NewOffset(9, 30),
	"Australia/Darwin":     NewOffset(9, 30),
	"Australia/Sydney":     NewOffset(10, 0),
	"Australia/Melbourne":  NewOffset(10, 0),
	"Australia/Brisbane":   NewOffset(10, 0),
	"Pacific/Port_Moresby": NewOffset(10, 0),
	"Australia/Lord_Howe":  NewOffset(10, 30),
	"Pacific/Guadalcanal":  NewOffset(11, 0),
	"Pacific/Noumea":       NewOffset(11, 0),
	"Pacific/Auckland":     NewOffset(12, 0),
	"Pacific/Fiji":         NewOffset(12, 0),
	"Pacific/Chatham":      NewOffset(12, 45),
	"Pacific/Tongatapu":    NewOffset(13, 0),
	"Pacific/Apia":         NewOffset(13, 0),
	"Pacific/Kiritimati":   NewOffset(14, 0),
}

// OffsetForZone looks a geographic zone identifier up in the static table.
func OffsetForZone(zone string) (Offset, bool) {
	o, ok := zoneOffsets[zone]
	return o, ok
}

// ZoneTable returns a copy of the static zone table, for pickers and tests.
func ZoneTable() map[string]Offset {
	out := make(map[string]Offset, len(zoneOffsets))
	for k, v := range zoneOffsets {
		out[k] = v
	}
	return out
}
