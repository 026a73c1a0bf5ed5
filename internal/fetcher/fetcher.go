package fetcher

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// FetchFunc is one upstream call. The context bounds the caller's wait, not
// the call itself: once launched, a fetch runs to completion or natural
// failure.
type FetchFunc[T any] func(ctx context.Context) (T, error)

const memoKey = "result"

type result[T any] struct {
	value T
	err   error
}

type call[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Memoized wraps exactly one upstream call with two time-based guards.
//
// Debounce window: callers arriving before the window elapses all resolve
// against the single call launched when the window ends; each new caller
// restarts the window. This absorbs refresh spamming into one round trip.
//
// Memo window: once a call completes, its (value, error) outcome is served
// to every caller for the window's duration without touching the network.
// A failure occupies the memo slot like a success and ages out the same way.
type Memoized[T any] struct {
	mu       sync.Mutex
	fn       FetchFunc[T]
	debounce time.Duration
	memo     *gocache.Cache

	pending  *call[T]
	inflight *call[T]
	timer    *time.Timer
}

func New[T any](fn FetchFunc[T], debounce, memoTTL time.Duration) *Memoized[T] {
	return &Memoized[T]{
		fn:       fn,
		debounce: debounce,
		// cleanup interval 0 disables the janitor goroutine; the single
		// memo slot is overwritten in place and expiry is checked on Get
		memo:     gocache.New(memoTTL, 0),
	}
}

// Fetch resolves against the memoized result, an in-flight call, or a newly
// scheduled one, in that order.
func (m *Memoized[T]) Fetch(ctx context.Context) (T, error) {
	m.mu.Lock()

	if cached, ok := m.memo.Get(memoKey); ok {
		res := cached.(result[T])
		m.mu.Unlock()
		return res.value, res.err
	}

	var c *call[T]
	switch {
	case m.pending != nil:
		c = m.pending
		m.timer.Reset(m.debounce)
	case m.inflight != nil:
		c = m.inflight
	default:
		c = &call[T]{done: make(chan struct{})}
		m.pending = c
		launch := c
		m.timer = time.AfterFunc(m.debounce, func() { m.run(launch) })
	}
	m.mu.Unlock()

	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// run launches the call c was scheduled for. A Reset that lands after the
// timer already fired delivers a second, stale invocation; launching is keyed
// to the exact pending call so a stale fire is a no-op rather than a
// duplicate round trip.
func (m *Memoized[T]) run(c *call[T]) {
	m.mu.Lock()
	if m.pending != c {
		m.mu.Unlock()
		return
	}
	m.pending = nil
	m.inflight = c
	m.mu.Unlock()

	value, err := m.fn(context.Background())

	m.mu.Lock()
	m.memo.SetDefault(memoKey, result[T]{value: value, err: err})
	m.inflight = nil
	m.mu.Unlock()

	c.value = value
	c.err = err
	close(c.done)
}
