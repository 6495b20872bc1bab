package fusioncache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	c "github.com/oasaleh/FusionCache/codec"
	pr "github.com/oasaleh/FusionCache/provider"
)

type memEntry struct {
	v   []byte
	exp time.Time // zero => no TTL
}

type memProvider struct {
	mu sync.Mutex
	m  map[string]memEntry
}

var _ pr.Provider = (*memProvider)(nil)

func newMemProvider() *memProvider { return &memProvider{m: make(map[string]memEntry)} }

func (p *memProvider) Get(_ context.Context, key string) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.m[key]
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		delete(p.m, key)
		return nil, false, nil
	}
	return e.v, true, nil
}

func (p *memProvider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	p.mu.Lock()
	p.m[key] = memEntry{v: value, exp: exp}
	p.mu.Unlock()
	return true, nil
}

func (p *memProvider) Del(_ context.Context, key string) error {
	p.mu.Lock()
	delete(p.m, key)
	p.mu.Unlock()
	return nil
}

func (p *memProvider) Close(_ context.Context) error { return nil }

type logEntry struct {
	level Level
	msg   string
	f     Fields
}

type recordLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordLogger) add(lvl Level, msg string, f Fields) {
	l.mu.Lock()
	l.entries = append(l.entries, logEntry{lvl, msg, f})
	l.mu.Unlock()
}

func (l *recordLogger) Debug(msg string, f Fields) { l.add(LevelDebug, msg, f) }
func (l *recordLogger) Info(msg string, f Fields)  { l.add(LevelInfo, msg, f) }
func (l *recordLogger) Warn(msg string, f Fields)  { l.add(LevelWarn, msg, f) }
func (l *recordLogger) Error(msg string, f Fields) { l.add(LevelError, msg, f) }

func (l *recordLogger) atLevel(lvl Level) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range l.entries {
		if e.level == lvl {
			out = append(out, e)
		}
	}
	return out
}

type breakerChange struct {
	op     string
	key    string
	usable bool
}

type recordEvents struct {
	mu      sync.Mutex
	changes []breakerChange
}

func (e *recordEvents) CircuitBreakerChanged(op, key string, usable bool) {
	e.mu.Lock()
	e.changes = append(e.changes, breakerChange{op, key, usable})
	e.mu.Unlock()
}

func (e *recordEvents) all() []breakerChange {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]breakerChange(nil), e.changes...)
}

type user struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestAccessor(t *testing.T, mut func(*Options[user])) (Accessor[user], *recordLogger, *recordEvents) {
	t.Helper()
	log := &recordLogger{}
	ev := &recordEvents{}
	opts := Options[user]{
		Backend: newMemProvider(),
		Codec:   c.JSON[user]{},
		Logger:  log,
		Events:  ev,
	}
	if mut != nil {
		mut(&opts)
	}
	acc, err := New[user](opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return acc, log, ev
}

// ==============================
// Construction
// ==============================

func TestNewFailsFast(t *testing.T) {
	if _, err := New[user](Options[user]{Codec: c.JSON[user]{}}); err == nil {
		t.Fatalf("expected error for missing backend")
	}
	if _, err := New[user](Options[user]{Backend: newMemProvider()}); err == nil {
		t.Fatalf("expected error for missing codec")
	}
	_, err := New[user](Options[user]{
		Backend:         newMemProvider(),
		Codec:           c.JSON[user]{},
		KeyModifierMode: KeyModifierMode(42),
	})
	if err == nil {
		t.Fatalf("expected error for unrecognized key modifier mode")
	}
}

func TestCollaboratorsExposed(t *testing.T) {
	backend := newMemProvider()
	acc, err := New[user](Options[user]{Backend: backend, Codec: c.JSON[user]{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if acc.Backend() != backend {
		t.Fatalf("Backend() did not return the configured provider")
	}
	if _, ok := acc.Codec().(c.JSON[user]); !ok {
		t.Fatalf("Codec() did not return the configured codec")
	}
}

// ==============================
// Key transformation
// ==============================

func TestProcessCacheKeyModes(t *testing.T) {
	cases := []struct {
		name string
		mode KeyModifierMode
		want string
	}{
		{"prefix", KeyModifierPrefix, "v1:user:1"},
		{"suffix", KeyModifierSuffix, "user:1:v1"},
		{"none", KeyModifierNone, "user:1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			acc, _, _ := newTestAccessor(t, func(o *Options[user]) {
				o.KeyModifierMode = tc.mode
				o.WireFormatVersion = "v1"
				o.KeySeparator = ":"
			})
			if got := acc.ProcessCacheKey("user:1"); got != tc.want {
				t.Fatalf("ProcessCacheKey: got %q want %q", got, tc.want)
			}
			// Deterministic: same input, same output.
			if got := acc.ProcessCacheKey("user:1"); got != tc.want {
				t.Fatalf("ProcessCacheKey not deterministic: got %q", got)
			}
		})
	}
}

func TestProcessCacheKeyDefaults(t *testing.T) {
	acc, _, _ := newTestAccessor(t, func(o *Options[user]) {
		o.KeyModifierMode = KeyModifierPrefix // marker/separator left to defaults
	})
	if got, want := acc.ProcessCacheKey("k"), "v1:k"; got != want {
		t.Fatalf("default token: got %q want %q", got, want)
	}
}

// ==============================
// Failure classification
// ==============================

func TestSyntheticTimeoutNeverTripsBreaker(t *testing.T) {
	acc, log, ev := newTestAccessor(t, func(o *Options[user]) {
		o.BreakDuration = time.Minute
		o.SyntheticTimeoutLogLevel = LevelDebug
	})

	failures := []error{
		&SyntheticTimeoutError{Budget: 100 * time.Millisecond},
		fmt.Errorf("get budget exceeded: %w", ErrSyntheticTimeout),
	}
	for i := 0; i < 10; i++ {
		acc.ReportFailure("op-1", "k", failures[i%len(failures)], "getting entry from distributed cache")
	}

	if !acc.IsCurrentlyUsable("op-2", "k") {
		t.Fatalf("synthetic timeouts must not open the breaker")
	}
	if got := ev.all(); len(got) != 0 {
		t.Fatalf("no breaker change events expected, got %v", got)
	}
	entries := log.atLevel(LevelDebug)
	if len(entries) != 10 {
		t.Fatalf("expected 10 synthetic timeout entries at configured level, got %d", len(entries))
	}
	if want := "synthetic timeout while getting entry from distributed cache"; entries[0].msg != want {
		t.Fatalf("log message: got %q want %q", entries[0].msg, want)
	}
	if entries[0].f["operation"] != "op-1" || entries[0].f["key"] != "k" {
		t.Fatalf("log correlation fields missing: %v", entries[0].f)
	}
}

func TestGenuineFailureOpensBreakerOnce(t *testing.T) {
	acc, log, ev := newTestAccessor(t, func(o *Options[user]) {
		o.BreakDuration = time.Minute
	})

	boom := errors.New("connection refused")
	acc.ReportFailure("op-1", "k", boom, "setting entry in distributed cache")
	acc.ReportFailure("op-1", "k", boom, "setting entry in distributed cache")
	acc.ReportFailure("op-1", "k", boom, "setting entry in distributed cache")

	if acc.IsCurrentlyUsable("op-2", "k") {
		t.Fatalf("breaker should be open after a genuine failure")
	}

	changes := ev.all()
	if len(changes) != 1 || changes[0].usable {
		t.Fatalf("expected exactly one opened event, got %v", changes)
	}
	if changes[0].op != "op-1" || changes[0].key != "k" {
		t.Fatalf("event correlation: got %+v", changes[0])
	}

	// Failure log fires for every report; deactivation warn only on the edge.
	if got := len(log.atLevel(LevelError)); got != 3 {
		t.Fatalf("expected 3 failure entries, got %d", got)
	}
	if got := len(log.atLevel(LevelWarn)); got != 1 {
		t.Fatalf("expected 1 deactivation warning, got %d", got)
	}
}

func TestFailureLogLevelConfigurable(t *testing.T) {
	acc, log, _ := newTestAccessor(t, func(o *Options[user]) {
		o.BreakDuration = time.Minute
		o.FailureLogLevel = LevelInfo
	})
	acc.ReportFailure("op-1", "k", errors.New("boom"), "removing entry from distributed cache")
	if got := len(log.atLevel(LevelInfo)); got != 1 {
		t.Fatalf("expected failure entry at info level, got %d", got)
	}
	if got := len(log.atLevel(LevelError)); got != 0 {
		t.Fatalf("no error-level entries expected, got %d", got)
	}
}

func TestReportFailureIgnoresNil(t *testing.T) {
	acc, log, ev := newTestAccessor(t, func(o *Options[user]) {
		o.BreakDuration = time.Minute
	})
	acc.ReportFailure("op-1", "k", nil, "getting entry from distributed cache")
	if len(ev.all()) != 0 {
		t.Fatalf("nil failure must not fire events")
	}
	log.mu.Lock()
	n := len(log.entries)
	log.mu.Unlock()
	if n != 0 {
		t.Fatalf("nil failure must not log, got %d entries", n)
	}
}

// ==============================
// Breaker lifecycle through the accessor
// ==============================

func TestReactivationAfterCooldown(t *testing.T) {
	const cooldown = 40 * time.Millisecond
	acc, log, ev := newTestAccessor(t, func(o *Options[user]) {
		o.BreakDuration = cooldown
	})

	acc.ReportFailure("op-1", "k", errors.New("boom"), "getting entry from distributed cache")

	// Within the cooldown: unusable, no reactivation event.
	if acc.IsCurrentlyUsable("op-2", "k") {
		t.Fatalf("breaker should still be open inside cooldown")
	}
	if got := ev.all(); len(got) != 1 {
		t.Fatalf("no reactivation event expected inside cooldown, got %v", got)
	}

	time.Sleep(cooldown + 20*time.Millisecond)

	if !acc.IsCurrentlyUsable("op-3", "k") {
		t.Fatalf("breaker should close after cooldown")
	}
	changes := ev.all()
	if len(changes) != 2 || !changes[1].usable {
		t.Fatalf("expected exactly one reactivation event, got %v", changes)
	}
	if changes[1].op != "op-3" {
		t.Fatalf("reactivation event correlation: got %+v", changes[1])
	}

	// Edge consumed: further checks fire nothing.
	for i := 0; i < 3; i++ {
		if !acc.IsCurrentlyUsable("op-4", "k") {
			t.Fatalf("breaker should stay closed")
		}
	}
	if got := ev.all(); len(got) != 2 {
		t.Fatalf("no further events expected, got %v", got)
	}

	// One deactivation + one reactivation warning.
	if got := len(log.atLevel(LevelWarn)); got != 2 {
		t.Fatalf("expected 2 warnings (deactivated, reactivated), got %d", got)
	}
}

func TestZeroBreakDurationKeepsBackendUsable(t *testing.T) {
	acc, _, ev := newTestAccessor(t, nil) // BreakDuration zero => breaker disabled

	acc.ReportFailure("op-1", "k", errors.New("boom"), "getting entry from distributed cache")
	if !acc.IsCurrentlyUsable("op-2", "k") {
		t.Fatalf("disabled breaker must keep the backend usable")
	}
	if got := ev.all(); len(got) != 0 {
		t.Fatalf("disabled breaker must not fire events, got %v", got)
	}
}

func TestConcurrentReportFailureSingleTransition(t *testing.T) {
	acc, _, ev := newTestAccessor(t, func(o *Options[user]) {
		o.BreakDuration = time.Minute
	})

	const callers = 64
	var wg sync.WaitGroup
	start := make(chan struct{})
	boom := errors.New("boom")

	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(n int) {
			defer wg.Done()
			<-start
			acc.ReportFailure(fmt.Sprintf("op-%d", n), "k", boom, "getting entry from distributed cache")
		}(i)
	}
	close(start)
	wg.Wait()

	if acc.IsCurrentlyUsable("op-final", "k") {
		t.Fatalf("breaker must end open")
	}
	changes := ev.all()
	if len(changes) != 1 || changes[0].usable {
		t.Fatalf("expected exactly one opened event under the race, got %v", changes)
	}
}

// ==============================
// Caller integration
// ==============================

// TestCallerRoundTrip exercises the intended call pattern: gate check,
// key transformation, codec encode/decode around the backend, failure
// reporting on error.
func TestCallerRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := newMemProvider()
	acc, _, _ := newTestAccessor(t, func(o *Options[user]) {
		o.Backend = backend
		o.KeyModifierMode = KeyModifierPrefix
	})

	v := user{ID: "1", Name: "Ada"}
	key := "user:1"

	if !acc.IsCurrentlyUsable("op-set", key) {
		t.Fatalf("fresh accessor must be usable")
	}
	raw, err := acc.Codec().Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := acc.Backend().Set(ctx, acc.ProcessCacheKey(key), raw, 1, time.Minute); err != nil {
		acc.ReportFailure("op-set", key, err, "setting entry in distributed cache")
		t.Fatalf("Set: %v", err)
	}

	// Stored under the versioned physical key, not the logical one.
	if _, ok, _ := backend.Get(ctx, key); ok {
		t.Fatalf("entry must not exist under the logical key")
	}
	got, ok, err := acc.Backend().Get(ctx, acc.ProcessCacheKey(key))
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	decoded, err := acc.Codec().Decode(got)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded != v {
		t.Fatalf("round trip mismatch: got %+v want %+v", decoded, v)
	}
}
