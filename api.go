package fusioncache

import (
	"time"

	c "github.com/oasaleh/FusionCache/codec"
	pr "github.com/oasaleh/FusionCache/provider"
)

// Accessor is the protective shim between a caller and its distributed cache
// backend. It owns the circuit breaker and the key transformer; the raw
// get/set/remove calls stay with the caller, wrapped around the gate and
// error hooks below. V is the caller's value type, serialized by a pluggable
// Codec[V].
type Accessor[V any] interface {
	// ProcessCacheKey deterministically rewrites a logical cache key into
	// the wire-compatible physical key. Pure and side-effect free.
	ProcessCacheKey(key string) string

	// IsCurrentlyUsable reports whether the backend may be attempted right
	// now. false means "do not attempt the backend call this time"; the
	// caller falls back to its own degradation policy (e.g. local tier only).
	IsCurrentlyUsable(operationID, key string) bool

	// ReportFailure classifies a failure caught around a backend call.
	// Synthetic timeouts are logged and ignored; genuine failures trip the
	// breaker. Never panics; logging and notification are best-effort.
	// action describes what the caller was doing, e.g. "setting entry in
	// distributed cache".
	ReportFailure(operationID, key string, failure error, action string)

	// Backend and Codec expose the collaborators fixed at construction, so
	// callers can issue their own backend calls around the gate.
	Backend() pr.Provider
	Codec() c.Codec[V]
}

// Options configure an Accessor. Only Backend and Codec are required; all
// values are immutable after construction.
type Options[V any] struct {
	// Required
	Backend pr.Provider
	Codec   c.Codec[V]

	Logger Logger // if nil, NopLogger is used
	Events Events // if nil, NopEvents is used

	// BreakDuration is the cooldown before the backend is re-probed after
	// the breaker opens. 0 disables the breaker (backend always usable).
	BreakDuration time.Duration

	KeyModifierMode   KeyModifierMode // default KeyModifierNone
	WireFormatVersion string          // version marker; default "v1"
	KeySeparator      string          // marker/key separator; default ":"

	SyntheticTimeoutLogLevel Level // default LevelWarn
	FailureLogLevel          Level // default LevelError
}

// New validates opts and builds an Accessor. It fails fast on a missing
// backend or codec and on an unrecognized key modifier mode; no
// configuration error can surface later at call time.
func New[V any](opts Options[V]) (Accessor[V], error) {
	return newAccessor[V](opts)
}
