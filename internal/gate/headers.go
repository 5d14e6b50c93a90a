package gate

import "net/http"

// securityHeaders is the fixed protective header set applied to every
// outbound response. Order matters only for readability.
var securityHeaders = [...][2]string{
	{"X-Frame-Options", "DENY"},
	{"X-Content-Type-Options", "nosniff"},
	{"X-XSS-Protection", "1; mode=block"},
	{"Strict-Transport-Security", "max-age=31536000; includeSubDomains"},
	{"Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; font-src 'self' https://fonts.gstatic.com"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=(), usb=(), magnetometer=(), gyroscope=(), speaker=()"},
}

// SecurityHeaderPolicy adds the fixed protective header set. Only the
// named headers are ever written; anything else set by the downstream
// handler is left untouched.
type SecurityHeaderPolicy struct {
	enabled bool
}

// NewSecurityHeaderPolicy creates the policy. A disabled policy is a no-op.
func NewSecurityHeaderPolicy(enabled bool) SecurityHeaderPolicy {
	return SecurityHeaderPolicy{enabled: enabled}
}

// Decorate sets the protective headers on h.
func (p SecurityHeaderPolicy) Decorate(h http.Header) {
	if !p.enabled {
		return
	}
	for _, kv := range securityHeaders {
		h.Set(kv[0], kv[1])
	}
}
