package middleware

import (
	"context"
	"net/http"

	"github.com/propmate/propmate/internal/logger"
)

// HeaderOrgID carries the caller's organization identity. Every directory
// and issue route is scoped by it; the upstream client forwards it on
// org-scoped calls.
const HeaderOrgID = "X-Org-ID"

// OrgID is middleware that extracts the organization ID from the X-Org-ID
// header and stores it in the request context. Falls back to defaultOrg when
// the header is absent, which keeps single-org deployments working without
// an identity provider in front. The ID lives in the logger context so
// request log lines carry it automatically.
func OrgID(defaultOrg string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			org := r.Header.Get(HeaderOrgID)
			if org == "" {
				org = defaultOrg
			}
			next.ServeHTTP(w, r.WithContext(logger.WithOrgID(r.Context(), org)))
		})
	}
}

// OrgIDFromContext returns the organization ID stored in ctx, or an empty
// string if absent.
func OrgIDFromContext(ctx context.Context) string {
	return logger.OrgID(ctx)
}
