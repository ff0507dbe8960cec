package security

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/xo-club/storefront-api/internal/common"
)

// AdminToken guards the admin console routes with a static bearer token.
// Comparison is constant time. An empty configured token rejects every
// request.
type AdminToken struct {
	Token string
}

// Middleware rejects requests that do not carry the admin bearer token.
func (a AdminToken) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimSpace(a.Token) == "" {
			common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "admin access not configured", nil)
			return
		}
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token", nil)
			return
		}
		provided := strings.TrimSpace(strings.TrimPrefix(header, prefix))
		if subtle.ConstantTimeCompare([]byte(provided), []byte(a.Token)) != 1 {
			common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid bearer token", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
