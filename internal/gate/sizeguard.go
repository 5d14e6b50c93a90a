package gate

import "fmt"

// SizeGuard rejects requests whose declared body size exceeds a limit.
// It never reads or buffers the body; requests without a declared
// Content-Length (chunked uploads) pass through unchecked, an accepted
// gap left to the downstream body reader.
type SizeGuard struct {
	maxBytes int64
}

// NewSizeGuard creates a guard for the given byte limit.
func NewSizeGuard(maxBytes int64) *SizeGuard {
	return &SizeGuard{maxBytes: maxBytes}
}

// Check validates a declared content length. A negative length means the
// request did not declare one. The returned error message names both the
// observed size and the limit.
func (g *SizeGuard) Check(contentLength int64) error {
	if g.maxBytes <= 0 || contentLength < 0 {
		return nil
	}
	if contentLength > g.maxBytes {
		return fmt.Errorf("request size %d exceeds limit of %d bytes", contentLength, g.maxBytes)
	}
	return nil
}
