// Package provider defines the distributed backend abstraction the accessor
// gates. The accessor never calls a Provider itself; callers do, using the
// physical keys produced by ProcessCacheKey and wrapping each call with the
// accessor's IsCurrentlyUsable gate and ReportFailure hook.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte previously passed to Set for a key (no prepended/appended
// metadata, no re-encoding, no mutation). Internal transforms such as
// compression must be fully reversed before returning.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with TTLs. Must be safe for concurrent
// use and byte-for-byte transparent (see package doc).
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. May ignore cost if unsupported.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
