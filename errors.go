package fusioncache

import (
	"errors"
	"fmt"
	"time"
)

// ErrSyntheticTimeout marks a failure manufactured by the caller's own
// soft-deadline enforcement. The backend may still be healthy, so such
// failures never contribute to breaker state. Match with errors.Is.
var ErrSyntheticTimeout = errors.New("fusioncache: synthetic timeout")

// SyntheticTimeoutError is a synthetic-timeout failure carrying the soft
// budget that was exceeded. It matches ErrSyntheticTimeout via errors.Is.
type SyntheticTimeoutError struct {
	Budget time.Duration
}

func (e *SyntheticTimeoutError) Error() string {
	return fmt.Sprintf("fusioncache: synthetic timeout after %s", e.Budget)
}

func (e *SyntheticTimeoutError) Is(target error) bool {
	return target == ErrSyntheticTimeout
}

// IsSyntheticTimeout reports whether err was caused by a caller-imposed
// soft deadline rather than a genuine backend failure.
func IsSyntheticTimeout(err error) bool {
	return errors.Is(err, ErrSyntheticTimeout)
}
