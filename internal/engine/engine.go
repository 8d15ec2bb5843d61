package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"residencia-backend/internal/metrics"
	"residencia-backend/internal/store"
	"residencia-backend/internal/timeutil"
)

// Engine owns the application state. Dispatches are serialized under a
// mutex, computed synchronously by the pure reducer, and the resulting
// persistence ops are fired asynchronously against the gateway without
// blocking the caller. Gateway failures are logged and counted, never
// propagated: the snapshot a dispatch returned stays authoritative.
type Engine struct {
	mu    sync.Mutex
	state State
	store store.Store
	subs  []func(State)

	// nowFn is swappable for tests.
	nowFn func() time.Time

	inflight sync.WaitGroup
}

func New(st store.Store) *Engine {
	return &Engine{
		state: InitialState(),
		store: st,
		nowFn: timeutil.Now,
	}
}

// Dispatch applies one action and returns the next snapshot before any
// persistence call settles.
func (e *Engine) Dispatch(action Action) State {
	e.mu.Lock()
	next, ops := reduce(e.state, action, e.nowFn())
	e.state = next
	subs := e.subs
	e.mu.Unlock()

	metrics.ActionsTotal.WithLabelValues(actionName(action)).Inc()

	for _, op := range ops {
		e.inflight.Add(1)
		go e.runOp(op)
	}
	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Snapshot returns the current state. Collections inside it are never
// mutated in place by the reducer, so callers may read them freely.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Subscribe registers a callback invoked after every dispatch with the new
// snapshot. Callbacks run on the dispatching goroutine; keep them cheap.
func (e *Engine) Subscribe(fn func(State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	subs := make([]func(State), 0, len(e.subs)+1)
	subs = append(subs, e.subs...)
	e.subs = append(subs, fn)
}

// Drain blocks until every in-flight persistence call has settled. Used by
// tests and graceful shutdown; normal dispatching never waits.
func (e *Engine) Drain() {
	e.inflight.Wait()
}

// Store exposes the configured gateway for read-side collaborators
// (health checks, statistics).
func (e *Engine) Store() store.Store {
	return e.store
}

func (e *Engine) runOp(op store.Op) {
	defer e.inflight.Done()
	if err := store.Apply(context.Background(), e.store, op); err != nil {
		log.Printf("[Engine] %s %s failed: %v", op.Kind, op.Table, err)
		metrics.PersistenceFailures.WithLabelValues(op.Table, op.Kind).Inc()
	}
}

func actionName(a Action) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", a), "engine.")
}
