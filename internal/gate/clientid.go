package gate

import (
	"net/http"
	"strings"
)

// trustedIPHeader carries the client IP supplied by the network edge.
const trustedIPHeader = "CF-Connecting-IP"

// ClientID derives the rate-limit identity for a request. It prefers the
// trusted edge-supplied client IP and falls back to a composite of user
// agent and origin. The fallback is spoofable and collapses distinct
// clients behind a shared proxy or identical browser; it is kept as
// documented best-effort behavior rather than rejecting such requests.
func ClientID(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get(trustedIPHeader)); ip != "" {
		return ip
	}
	return "ua:" + r.Header.Get("User-Agent") + "|origin:" + r.Header.Get("Origin")
}
