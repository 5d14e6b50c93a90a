package gate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testOrigin = "https://app.example.com"

func preflight(t *testing.T, origin string) *httptest.ResponseRecorder {
	t.Helper()
	policy := NewCorsPolicy(testOrigin)
	req := httptest.NewRequest(http.MethodOptions, "http://example.com/api/explain", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	resp := httptest.NewRecorder()
	if handled := policy.Preflight(resp, req); !handled {
		t.Fatalf("OPTIONS request must be handled as preflight")
	}
	return resp
}

func TestPreflightAllowedOrigin(t *testing.T) {
	resp := preflight(t, testOrigin)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	headers := map[string]string{
		"Access-Control-Allow-Origin":      testOrigin,
		"Access-Control-Allow-Methods":     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
		"Access-Control-Allow-Headers":     "Content-Type, Authorization",
		"Access-Control-Max-Age":           "86400",
		"Access-Control-Allow-Credentials": "true",
	}
	for key, want := range headers {
		if got := resp.Header().Get(key); got != want {
			t.Fatalf("%s: expected %q, got %q", key, want, got)
		}
	}
	if resp.Body.Len() != 0 {
		t.Fatalf("preflight success must have an empty body, got %q", resp.Body.String())
	}
}

func TestPreflightRejectsOtherOrigins(t *testing.T) {
	for _, origin := range []string{"https://evil.example.com", "https://app.example.com/", ""} {
		resp := preflight(t, origin)

		if resp.Code != http.StatusForbidden {
			t.Fatalf("origin %q: expected 403, got %d", origin, resp.Code)
		}
		if resp.Body.String() != "Forbidden" {
			t.Fatalf("origin %q: expected plain Forbidden body, got %q", origin, resp.Body.String())
		}
		for key := range resp.Header() {
			if strings.HasPrefix(key, "Access-Control-") {
				t.Fatalf("origin %q: CORS header %s leaked on rejection", origin, key)
			}
		}
	}
}

func TestPreflightIgnoresNonOptions(t *testing.T) {
	policy := NewCorsPolicy(testOrigin)
	req := httptest.NewRequest(http.MethodPost, "http://example.com/api/explain", nil)
	req.Header.Set("Origin", testOrigin)
	resp := httptest.NewRecorder()

	if policy.Preflight(resp, req) {
		t.Fatalf("POST must not be treated as preflight")
	}
}

func TestDecorateMatchingOrigin(t *testing.T) {
	policy := NewCorsPolicy(testOrigin)
	h := http.Header{}

	policy.Decorate(h, testOrigin)

	if got := h.Get("Access-Control-Allow-Origin"); got != testOrigin {
		t.Fatalf("expected allow-origin %q, got %q", testOrigin, got)
	}
	if got := h.Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("expected credentials true, got %q", got)
	}
	if got := h.Get("Vary"); got != "Origin" {
		t.Fatalf("expected Vary: Origin, got %q", got)
	}
}

func TestDecorateOtherOriginsUntouched(t *testing.T) {
	policy := NewCorsPolicy(testOrigin)
	for _, origin := range []string{"https://evil.example.com", ""} {
		h := http.Header{}
		policy.Decorate(h, origin)
		if len(h) != 0 {
			t.Fatalf("origin %q: expected no headers, got %v", origin, h)
		}
	}
}
