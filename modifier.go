package fusioncache

import "fmt"

// KeyModifierMode controls whether and how the wire-format version token is
// attached to logical keys. Fixed at construction.
type KeyModifierMode int

const (
	// KeyModifierNone leaves keys untouched (identity transform).
	KeyModifierNone KeyModifierMode = iota
	// KeyModifierPrefix prepends "<marker><separator>" to every key.
	KeyModifierPrefix
	// KeyModifierSuffix appends "<separator><marker>" to every key.
	KeyModifierSuffix
)

// String returns a human-readable mode name.
func (m KeyModifierMode) String() string {
	switch m {
	case KeyModifierNone:
		return "none"
	case KeyModifierPrefix:
		return "prefix"
	case KeyModifierSuffix:
		return "suffix"
	default:
		return "unknown"
	}
}

// newKeyTransform resolves mode into a precomputed wire token and a pure
// transform, so no mode branching happens per call. An unrecognized mode is
// a programming-contract violation and fails here, never at call time.
func newKeyTransform(mode KeyModifierMode, marker, separator string) (func(string) string, error) {
	switch mode {
	case KeyModifierNone:
		return func(key string) string { return key }, nil
	case KeyModifierPrefix:
		token := marker + separator
		return func(key string) string { return token + key }, nil
	case KeyModifierSuffix:
		token := separator + marker
		return func(key string) string { return key + token }, nil
	default:
		return nil, fmt.Errorf("fusioncache: unrecognized key modifier mode %d", mode)
	}
}
