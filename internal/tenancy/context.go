// Package tenancy carries the per-request notary-business scope. Every
// booking, document, and dashboard query is keyed by an org id.
package tenancy

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const orgKey ctxKey = "notary.org_id"

// HeaderOrgID is the HTTP header a tenant is selected with.
const HeaderOrgID = "X-Org-Id"

// WithOrgID stores the org id in context.
func WithOrgID(ctx context.Context, orgID string) context.Context {
	return context.WithValue(ctx, orgKey, orgID)
}

// OrgIDFromContext extracts the org id if present.
func OrgIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(orgKey)
	if val == nil {
		return "", false
	}
	orgID, ok := val.(string)
	return orgID, ok && orgID != ""
}

// Middleware reads the org header into context. Requests without a tenant
// still pass; handlers that require one reject them individually.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if orgID := strings.TrimSpace(r.Header.Get(HeaderOrgID)); orgID != "" {
			r = r.WithContext(WithOrgID(r.Context(), orgID))
		}
		next.ServeHTTP(w, r)
	})
}
