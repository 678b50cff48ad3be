package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sealbook/notary-platform/internal/documents"
	"github.com/sealbook/notary-platform/internal/tenancy"
	"github.com/sealbook/notary-platform/pkg/logging"
)

// DocumentsHandler issues presigned upload URLs for intake documents.
type DocumentsHandler struct {
	store  *documents.Store
	logger *logging.Logger
}

// NewDocumentsHandler creates the document upload endpoint.
func NewDocumentsHandler(store *documents.Store, logger *logging.Logger) *DocumentsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DocumentsHandler{store: store, logger: logger}
}

// CreateUpload returns an upload ticket: the URL the browser PUTs the file
// to, plus the document reference to record on the form afterwards.
// POST /intake/documents
func (h *DocumentsHandler) CreateUpload(w http.ResponseWriter, r *http.Request) {
	if !h.store.Enabled() {
		jsonError(w, "document uploads are not configured", http.StatusServiceUnavailable)
		return
	}
	orgID, ok := tenancy.OrgIDFromContext(r.Context())
	if !ok {
		jsonError(w, "missing "+tenancy.HeaderOrgID+" header", http.StatusBadRequest)
		return
	}
	sessionID := strings.TrimSpace(r.Header.Get(HeaderSessionID))
	if sessionID == "" {
		jsonError(w, "missing "+HeaderSessionID+" header", http.StatusBadRequest)
		return
	}

	var req struct {
		ServiceID   string `json:"service_id"`
		FileName    string `json:"file_name"`
		ContentType string `json:"content_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ticket, err := h.store.CreateUpload(r.Context(), orgID, sessionID, req.ServiceID, req.FileName, req.ContentType)
	if err != nil {
		if strings.Contains(err.Error(), "required") {
			jsonError(w, "service_id and file_name are required", http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create upload", "org_id", orgID, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}
