package handlers

import (
	"net/http"
	"strings"

	"github.com/sealbook/notary-platform/internal/observability/metrics"
	"github.com/sealbook/notary-platform/internal/tz"
	"github.com/sealbook/notary-platform/pkg/logging"
)

// SlotsHandler serves the bookable time grid in the viewer's timezone.
type SlotsHandler struct {
	detector *tz.Detector
	metrics  *metrics.IntakeMetrics
	logger   *logging.Logger
}

// NewSlotsHandler creates the slot endpoint. detector may be nil, in which
// case requests without an explicit tz parameter fall back to UTC+0.
func NewSlotsHandler(detector *tz.Detector, m *metrics.IntakeMetrics, logger *logging.Logger) *SlotsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &SlotsHandler{detector: detector, metrics: m, logger: logger}
}

type slotsResponse struct {
	Timezone string    `json:"timezone"`
	Detected bool      `json:"detected"`
	Slots    []tz.Slot `json:"slots"`
}

// GetSlots returns the slot grid for ?tz=UTC±H[:MM] (label or geographic
// zone), or for the detected viewer offset when the parameter is absent.
// GET /intake/slots
func (h *SlotsHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	var (
		offset   tz.Offset
		detected bool
	)
	if param := strings.TrimSpace(r.URL.Query().Get("tz")); param != "" {
		o, err := tz.ResolveOffsetOrZone(param)
		if err != nil {
			jsonError(w, "unrecognized timezone", http.StatusBadRequest)
			return
		}
		offset = o
	} else {
		detected = true
		if h.detector != nil {
			offset = h.detector.Detect(r.Context(), clientIP(r))
		}
		h.metrics.ObserveDetection(offset.Label())
	}

	writeJSON(w, http.StatusOK, slotsResponse{
		Timezone: offset.Label(),
		Detected: detected,
		Slots:    tz.SlotsFor(offset),
	})
}
