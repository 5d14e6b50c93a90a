// Package gate implements the edge request gate: every inbound request
// passes a fixed chain of checks (CORS preflight, payload size, per-client
// rate limit) before reaching application logic, and every outbound
// response is decorated with the security and CORS header policies,
// short-circuit rejections included.
package gate

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Config wires the gate's checks.
type Config struct {
	// MaxBodyBytes rejects requests declaring a larger body. Zero disables
	// the size check.
	MaxBodyBytes int64
	// MaxRequests is the per-client quota within one window.
	MaxRequests int
	// Window is the fixed rate-limit window length.
	Window time.Duration
	// AllowedOrigin is the single origin granted CORS access.
	AllowedOrigin string
	// SecurityHeaders toggles the protective header set.
	SecurityHeaders bool
	// Clock overrides time for tests. Nil means wall clock.
	Clock Clock
	// Logger receives admission decisions. Nil means slog.Default.
	Logger *slog.Logger
}

// Gate orchestrates the request checks in fixed order.
type Gate struct {
	size     *SizeGuard
	limiter  *RateLimiter
	cors     *CorsPolicy
	security SecurityHeaderPolicy
	logger   *slog.Logger
}

// New builds a gate from cfg. Callers must Close it to stop the rate
// limiter's janitor.
func New(cfg Config) *Gate {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		size:     NewSizeGuard(cfg.MaxBodyBytes),
		limiter:  NewRateLimiter(cfg.MaxRequests, cfg.Window, cfg.Clock),
		cors:     NewCorsPolicy(cfg.AllowedOrigin),
		security: NewSecurityHeaderPolicy(cfg.SecurityHeaders),
		logger:   logger,
	}
}

// Close releases gate resources.
func (g *Gate) Close() {
	g.limiter.Close()
}

// Wrap returns a handler that applies the gate around next. Checks run
// in fixed order and each may terminate the request; the outbound header
// policies apply to every response regardless of which stage produced it.
func (g *Gate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		dw := &decoratedWriter{
			ResponseWriter: w,
			security:       g.security,
			cors:           g.cors,
			origin:         r.Header.Get("Origin"),
		}
		defer g.recoverPanic(dw, r, requestID)

		if g.cors.Preflight(dw, r) {
			return
		}

		if err := g.size.Check(r.ContentLength); err != nil {
			g.logger.Warn("payload too large",
				"request_id", requestID,
				"path", r.URL.Path,
				"content_length", r.ContentLength,
			)
			writeError(dw, http.StatusRequestEntityTooLarge, "Payload too large", err.Error())
			return
		}

		clientID := ClientID(r)
		verdict := g.limiter.Admit(clientID)
		setRateLimitHeaders(dw.Header(), g.limiter.Max(), verdict)
		if !verdict.Allowed {
			retryAfter := retryAfterSeconds(verdict.ResetAt, g.limiter.clock.Now())
			dw.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			g.logger.Warn("rate limit exceeded",
				"request_id", requestID,
				"client", clientID,
				"path", r.URL.Path,
				"retry_after_s", retryAfter,
			)
			writeError(dw, http.StatusTooManyRequests, "Too many requests",
				fmt.Sprintf("rate limit exceeded, retry in %d seconds", retryAfter))
			return
		}

		next.ServeHTTP(dw, r)
	})
}

// recoverPanic turns an unexpected downstream or gate panic into a
// logged generic 500 instead of a dropped connection.
func (g *Gate) recoverPanic(dw *decoratedWriter, r *http.Request, requestID string) {
	rec := recover()
	if rec == nil {
		return
	}
	g.logger.Error("panic while handling request",
		"request_id", requestID,
		"path", r.URL.Path,
		"panic", rec,
	)
	if !dw.wrote {
		writeError(dw, http.StatusInternalServerError, "Internal server error", "unexpected error")
	}
}

// setRateLimitHeaders exposes the quota state on every gated response.
func setRateLimitHeaders(h http.Header, limit int, verdict Verdict) {
	h.Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
	h.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", verdict.Remaining))
	h.Set("X-RateLimit-Reset", verdict.ResetAt.UTC().Format(time.RFC3339))
}

// retryAfterSeconds computes the whole seconds until resetAt, rounded up.
func retryAfterSeconds(resetAt, now time.Time) int64 {
	remaining := resetAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int64((remaining + time.Second - 1) / time.Second)
}

// decoratedWriter injects the outbound header policies immediately
// before the first WriteHeader, so they reach short-circuit and
// downstream responses alike while leaving other downstream headers
// untouched.
type decoratedWriter struct {
	http.ResponseWriter
	security SecurityHeaderPolicy
	cors     *CorsPolicy
	origin   string
	wrote    bool
}

func (w *decoratedWriter) WriteHeader(status int) {
	if !w.wrote {
		w.wrote = true
		w.security.Decorate(w.Header())
		w.cors.Decorate(w.Header(), w.origin)
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *decoratedWriter) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
