// Package async decouples a slow Events consumer from the accessor's hot
// paths. Events are queued to a bounded channel and delivered by a small
// worker pool; when the queue is full the event is dropped rather than
// blocking the caller.
//
// Usage:
//
//	ev := async.New(consumer, 1, 1000) // 1 worker; queue 1000 events
//	defer ev.Close()
//
//	acc, _ := fusioncache.New[User](fusioncache.Options[User]{
//	    Backend: backend,
//	    Codec:   codec.JSON[User]{},
//	    Events:  ev,
//	})
package async

import (
	"sync"

	"github.com/oasaleh/FusionCache"
)

type Events struct {
	inner fusioncache.Events
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ fusioncache.Events = (*Events)(nil)

func New(inner fusioncache.Events, workers, qlen int) *Events {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	e := &Events{inner: inner, q: make(chan func(), qlen)}
	e.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer e.wg.Done()
			for f := range e.q {
				f()
			}
		}()
	}
	return e
}

// Close drains the queue and stops the workers. Events submitted after
// Close panic; close only after the accessor is no longer in use.
func (e *Events) Close() {
	e.once.Do(func() {
		close(e.q)
		e.wg.Wait()
	})
}

func (e *Events) try(f func()) {
	select {
	case e.q <- f:
	default: // drop
	}
}

func (e *Events) CircuitBreakerChanged(operationID, key string, usable bool) {
	e.try(func() { e.inner.CircuitBreakerChanged(operationID, key, usable) })
}
