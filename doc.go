// Package fusioncache implements a resilient accessor that mediates traffic
// between a local caching layer and an external distributed cache backend.
// The accessor never calls the backend itself; callers wrap their own
// get/set/remove around its gate and error hooks.
//
// Components:
//   - Accessor: gate check, key transformation, failure reporting.
//   - Circuit breaker: two-state (closed/open) timed breaker behind the gate.
//   - Key transformer: embeds a wire-format version token into physical keys
//     so a future format change never collides with previously written entries.
//   - Failure classifier: caller-imposed synthetic timeouts are logged and
//     ignored; genuine backend failures trip the breaker and fire an event.
//
// Call pattern:
//
//	if acc.IsCurrentlyUsable(opID, key) {
//	    raw, ok, err := acc.Backend().Get(ctx, acc.ProcessCacheKey(key))
//	    if err != nil {
//	        acc.ReportFailure(opID, key, err, "getting entry from distributed cache")
//	        // fall back to the local tier
//	    }
//	    ...
//	}
//
// Collaborators are pluggable: Provider (byte store, e.g. Redis, BigCache,
// Ristretto), Codec (value serialization), Logger (leveled sink) and Events
// (breaker change notifications).
package fusioncache
