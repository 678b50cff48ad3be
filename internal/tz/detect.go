package tz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sealbook/notary-platform/pkg/logging"
)

// geoTimeout bounds the IP-geolocation fallback. The lookup is best-effort;
// a hung call must never stall offset detection.
const geoTimeout = 4 * time.Second

// timeNow is overridable in tests.
var timeNow = time.Now

// GeoResolver resolves the caller's geographic zone from their IP address.
type GeoResolver interface {
	ZoneForIP(ctx context.Context, ip string) (string, error)
}

// Detector produces the UTC-offset label for the current viewer. Resolution
// order: static zone table, dynamic offset computation, IP geolocation,
// then UTC+0.
type Detector struct {
	// ResolveZone returns the runtime environment's zone identifier
	// (empty string when unavailable). Defaults to the process-local zone.
	ResolveZone func() string

	Geo    GeoResolver
	Logger *logging.Logger

	now func() time.Time
}

// NewDetector builds a Detector using the process-local timezone and an
// optional IP-geolocation fallback.
func NewDetector(geo GeoResolver, logger *logging.Logger) *Detector {
	return &Detector{
		ResolveZone: func() string { return time.Now().Location().String() },
		Geo:         geo,
		Logger:      logger,
		now:         time.Now,
	}
}

// Detect resolves the viewer's offset. clientIP may be empty; it is only
// used for the geolocation fallback. Detect never fails: every unresolvable
// path degrades to UTC+0.
func (d *Detector) Detect(ctx context.Context, clientIP string) Offset {
	if d.ResolveZone != nil {
		if zone := d.ResolveZone(); zone != "" {
			if o, err := ResolveZoneOffset(zone, d.clock()); err == nil {
				return o
			}
		}
	}
	if d.Geo != nil && clientIP != "" {
		geoCtx, cancel := context.WithTimeout(ctx, geoTimeout)
		defer cancel()
		zone, err := d.Geo.ZoneForIP(geoCtx, clientIP)
		if err == nil {
			if o, err := ResolveZoneOffset(zone, d.clock()); err == nil {
				return o
			}
		} else if d.Logger != nil {
			d.Logger.Warn("geolocation lookup failed", "error", err)
		}
	}
	return UTC
}

func (d *Detector) clock() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}

// ResolveZoneOffset turns a geographic zone identifier into a fixed offset:
// static table first, then a dynamic computation against the zone database.
func ResolveZoneOffset(zone string, now time.Time) (Offset, error) {
	if o, ok := OffsetForZone(zone); ok {
		return o, nil
	}
	return computeZoneOffset(zone, now)
}

// computeZoneOffset derives a zone's offset by formatting the same instant
// as HH:MM in the zone and in UTC and subtracting. The difference is
// normalized into (-12h, +12h] to absorb date-boundary wraparound, then
// snapped to the nearest quarter hour.
func computeZoneOffset(zone string, now time.Time) (Offset, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return 0, fmt.Errorf("tz: unknown zone %q: %w", zone, err)
	}
	local := now.In(loc).Format("15:04")
	utc := now.UTC().Format("15:04")

	localMin, err := clockMinutes(local)
	if err != nil {
		return 0, err
	}
	utcMin, err := clockMinutes(utc)
	if err != nil {
		return 0, err
	}

	diff := localMin - utcMin
	if diff > 12*60 {
		diff -= 24 * 60
	} else if diff <= -12*60 {
		diff += 24 * 60
	}
	return roundToQuarter(diff), nil
}

// clockMinutes parses an HH:MM or H:MM clock string into minutes past midnight.
func clockMinutes(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("tz: malformed clock time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("tz: malformed clock hour %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("tz: malformed clock minute %q", s)
	}
	return h*60 + m, nil
}

// HTTPGeoResolver queries an ip-api style JSON endpoint for the zone of an
// IP address. The endpoint URL receives the IP as a path suffix.
type HTTPGeoResolver struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPGeoResolver builds a resolver with a bounded-timeout HTTP client.
func NewHTTPGeoResolver(baseURL string) *HTTPGeoResolver {
	return &HTTPGeoResolver{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: geoTimeout},
	}
}

// ZoneForIP implements GeoResolver.
func (r *HTTPGeoResolver) ZoneForIP(ctx context.Context, ip string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+"/"+ip, nil)
	if err != nil {
		return "", fmt.Errorf("tz: build geolocation request: %w", err)
	}
	resp, err := r.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("tz: geolocation request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tz: geolocation status %d", resp.StatusCode)
	}
	var payload struct {
		Timezone string `json:"timezone"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("tz: decode geolocation response: %w", err)
	}
	if payload.Timezone == "" {
		return "", fmt.Errorf("tz: geolocation response missing timezone")
	}
	return payload.Timezone, nil
}

func (r *HTTPGeoResolver) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return &http.Client{Timeout: geoTimeout}
}
