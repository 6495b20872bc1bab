package fusioncache

import (
	"fmt"

	"github.com/oasaleh/FusionCache/codec"
	"github.com/oasaleh/FusionCache/internal/breaker"
	"github.com/oasaleh/FusionCache/provider"
)

type accessor[V any] struct {
	backend provider.Provider
	codec   codec.Codec[V]
	log     Logger
	events  Events

	brk      *breaker.Breaker
	applyKey func(string) string

	syntheticLevel Level
	failureLevel   Level
}

func newAccessor[V any](opts Options[V]) (*accessor[V], error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("fusioncache: backend is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("fusioncache: codec is required")
	}

	marker := coalesce(opts.WireFormatVersion, "v1")
	separator := coalesce(opts.KeySeparator, ":")
	applyKey, err := newKeyTransform(opts.KeyModifierMode, marker, separator)
	if err != nil {
		return nil, err
	}

	return &accessor[V]{
		backend:        opts.Backend,
		codec:          opts.Codec,
		log:            coalesce[Logger](opts.Logger, NopLogger{}),
		events:         coalesce[Events](opts.Events, NopEvents{}),
		brk:            breaker.New(opts.BreakDuration),
		applyKey:       applyKey,
		syntheticLevel: coalesce(opts.SyntheticTimeoutLogLevel, LevelWarn),
		failureLevel:   coalesce(opts.FailureLogLevel, LevelError),
	}, nil
}

func (a *accessor[V]) Backend() provider.Provider { return a.backend }
func (a *accessor[V]) Codec() codec.Codec[V]      { return a.codec }

func (a *accessor[V]) ProcessCacheKey(key string) string {
	return a.applyKey(key)
}

func (a *accessor[V]) IsCurrentlyUsable(operationID, key string) bool {
	closed, changed := a.brk.IsClosed()
	if changed {
		a.log.Warn("distributed cache activated again after circuit breaker cooldown", Fields{
			"operation": operationID,
			"key":       key,
		})
		a.events.CircuitBreakerChanged(operationID, key, true)
	}
	return closed
}

func (a *accessor[V]) ReportFailure(operationID, key string, failure error, action string) {
	if failure == nil {
		return
	}

	if IsSyntheticTimeout(failure) {
		// Caller-imposed soft deadline; backend health unknown. Breaker
		// state must not be touched.
		logAt(a.log, a.syntheticLevel, "synthetic timeout while "+action, Fields{
			"operation": operationID,
			"key":       key,
			"err":       failure,
		})
		return
	}

	if open, changed := a.brk.TryOpen(); open && changed {
		a.log.Warn("distributed cache deactivated by circuit breaker", Fields{
			"operation": operationID,
			"key":       key,
			"duration":  a.brk.BreakDuration(),
		})
		a.events.CircuitBreakerChanged(operationID, key, false)
	}

	logAt(a.log, a.failureLevel, "error while "+action, Fields{
		"operation": operationID,
		"key":       key,
		"err":       failure,
	})
}
