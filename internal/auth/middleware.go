package auth

import (
	"net/http"
	"strings"

	"github.com/sylohq/sylo-catalog-service/pkg/httpx"
)

// Middleware verifies the Bearer token and injects the claims into the
// request context. Business scope is derived here and only here; request
// bodies are never trusted for tenant identity.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" || token == r.Header.Get("Authorization") {
				httpx.Unauthorized(w)
				return
			}

			claims, err := ValidateToken(secret, token)
			if err != nil || claims.BusinessID == "" {
				httpx.Unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
