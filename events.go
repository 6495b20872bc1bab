package fusioncache

// Events receives lightweight callbacks on high-signal accessor events.
// Implementations MUST be cheap and non-blocking; the accessor calls them
// synchronously on hot paths. Wrap with events/async if the consumer may
// be slow.
type Events interface {
	// CircuitBreakerChanged fires exactly once per breaker transition edge:
	// usable=false when the breaker opens, usable=true when it closes again.
	// operationID and key identify the call that observed the edge.
	CircuitBreakerChanged(operationID, key string, usable bool)
}

// NopEvents is the default no-op consumer.
type NopEvents struct{}

func (NopEvents) CircuitBreakerChanged(string, string, bool) {}
