// Package slogevents is an Events consumer that records circuit breaker
// transitions to a slog.Logger, with optional key redaction for logs that
// leave the trust boundary.
package slogevents

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/oasaleh/FusionCache"
)

type Options struct {
	// Redact rewrites keys before logging. Defaults to a SHA-256 prefix.
	Redact func(string) string
}

type Events struct {
	l    *slog.Logger
	opts Options
}

var _ fusioncache.Events = (*Events)(nil)

func New(l *slog.Logger, opts Options) *Events {
	return &Events{l: l, opts: opts}
}

func (e *Events) redact(k string) string {
	if e.opts.Redact != nil {
		return e.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func (e *Events) CircuitBreakerChanged(operationID, key string, usable bool) {
	if e.l == nil {
		return
	}
	e.l.Warn("fusioncache.circuit_breaker_changed",
		"operation", operationID,
		"key", e.redact(key),
		"usable", usable)
}
