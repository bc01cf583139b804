package http

import (
	"context"
	"net/http"

	"github.com/pipehq/workboard/pkg/domain/types"
)

const tenantHeader = "X-Tenant-ID"

type ctxTenantKey struct{}

// tenantMiddleware requires the tenant header on every API request and embeds
// the tenant ID into the request context. Authentication happens upstream;
// the header is the trusted result of it.
func tenantMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.Header.Get(tenantHeader)
		if tenantID == "" {
			http.Error(w, "missing "+tenantHeader+" header", http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), ctxTenantKey{}, types.TenantID(tenantID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tenantFromContext(ctx context.Context) types.TenantID {
	if v, ok := ctx.Value(ctxTenantKey{}).(types.TenantID); ok {
		return v
	}
	return ""
}
