package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sealbook/notary-platform/internal/appointments"
	"github.com/sealbook/notary-platform/internal/tenancy"
	"github.com/sealbook/notary-platform/internal/tz"
	"github.com/sealbook/notary-platform/pkg/logging"
)

// DashboardHandler serves the notary's upcoming-appointments view.
type DashboardHandler struct {
	store    *appointments.Store
	detector *tz.Detector
	logger   *logging.Logger
}

// NewDashboardHandler creates the dashboard endpoints. store may be nil when
// no database is configured.
func NewDashboardHandler(store *appointments.Store, detector *tz.Detector, logger *logging.Logger) *DashboardHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DashboardHandler{store: store, detector: detector, logger: logger}
}

type dashboardResponse struct {
	OrgID        string                     `json:"org_id"`
	Timezone     string                     `json:"timezone"`
	Appointments []appointments.Appointment `json:"appointments"`
}

// ListAppointments returns upcoming bookings with each appointment time
// re-rendered in the viewer's timezone.
// GET /portal/appointments
// Query params:
//   - from: YYYY-MM-DD lower bound (optional, defaults to today)
//   - tz: viewer timezone, UTC±H[:MM] label or geographic zone (optional)
//   - limit: max rows (optional)
func (h *DashboardHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		jsonError(w, "dashboard disabled", http.StatusServiceUnavailable)
		return
	}
	orgID, ok := tenancy.OrgIDFromContext(r.Context())
	if !ok {
		jsonError(w, "missing "+tenancy.HeaderOrgID+" header", http.StatusBadRequest)
		return
	}

	from := strings.TrimSpace(r.URL.Query().Get("from"))
	if from == "" {
		from = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", from); err != nil {
		jsonError(w, "from must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	viewerZone := strings.TrimSpace(r.URL.Query().Get("tz"))
	if viewerZone == "" && h.detector != nil {
		viewerZone = h.detector.Detect(r.Context(), clientIP(r)).Label()
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			jsonError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	rows, err := h.store.ListUpcoming(r.Context(), orgID, from, viewerZone, limit)
	if err != nil {
		h.logger.Error("failed to list appointments", "org_id", orgID, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []appointments.Appointment{}
	}
	writeJSON(w, http.StatusOK, dashboardResponse{OrgID: orgID, Timezone: viewerZone, Appointments: rows})
}
