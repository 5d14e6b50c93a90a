package gate

import "net/http"

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, PATCH, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization"
	corsMaxAge       = "86400"
)

// CorsPolicy validates request origins against a single configured
// allowed origin. Matching is exact string equality; there is no
// wildcard or multi-origin support.
type CorsPolicy struct {
	allowedOrigin string
}

// NewCorsPolicy creates a policy for the given allowed origin.
func NewCorsPolicy(allowedOrigin string) *CorsPolicy {
	return &CorsPolicy{allowedOrigin: allowedOrigin}
}

// Preflight answers browser OPTIONS probes. It reports true when the
// request was a preflight and a terminal response has been written:
// 204 with the full CORS header set for the allowed origin, 403 with no
// CORS headers for anything else.
func (p *CorsPolicy) Preflight(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodOptions {
		return false
	}
	origin := r.Header.Get("Origin")
	if origin != p.allowedOrigin {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("Forbidden"))
		return true
	}
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	h.Set("Access-Control-Max-Age", corsMaxAge)
	h.Set("Access-Control-Allow-Credentials", "true")
	w.WriteHeader(http.StatusNoContent)
	return true
}

// Decorate adds CORS response headers iff the echoed origin exactly
// equals the configured allowed origin. Disallowed origins get no CORS
// headers at all, not a partial set.
func (p *CorsPolicy) Decorate(h http.Header, origin string) {
	if origin == "" || origin != p.allowedOrigin {
		return
	}
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Credentials", "true")
	h.Set("Vary", "Origin")
}
