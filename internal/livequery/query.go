// Package livequery keeps the result of a read query in step with the rows
// it was read from. Every change notification on the bound table triggers a
// full refetch; results are sequenced so a slow fetch can never overwrite a
// newer one.
package livequery

import (
	"context"
	"errors"
	"sync"

	"backend-vietrip/internal/logger"
	"backend-vietrip/internal/metrics"
	"backend-vietrip/internal/stream"

	"github.com/rs/zerolog"
)

type State int

const (
	Loading State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "loading"
}

// Feed is an open change subscription.
type Feed interface {
	Events() <-chan stream.Change
	Errors() <-chan error
	Close()
}

type Subscriber interface {
	Subscribe(table, filter string) (Feed, error)
}

// HubSubscriber opens feeds on a stream.Hub.
type HubSubscriber struct {
	Hub *stream.Hub
}

func (h HubSubscriber) Subscribe(table, filter string) (Feed, error) {
	sub, err := h.Hub.Subscribe(table, filter)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Binding is what a query reads and which rows it depends on. An empty
// Table means the query is fetched on demand only.
type Binding[T any] struct {
	Fetch  func(ctx context.Context) (T, error)
	Table  string
	Filter string
}

type Query[T any] struct {
	source Subscriber
	log    zerolog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	binding Binding[T]
	seq     uint64
	applied uint64
	floor   uint64
	value   T
	state   State
	feed    Feed
	stop    chan struct{}
	follows []Feed
	closed  bool
	changed chan struct{}
	wg      sync.WaitGroup

	afterFetch func(seq uint64, applied bool)
}

// New starts the first fetch and, when the binding names a table, opens
// its subscription.
func New[T any](ctx context.Context, source Subscriber, log zerolog.Logger, b Binding[T]) *Query[T] {
	ctx, cancel := context.WithCancel(ctx)
	q := &Query[T]{
		source:  source,
		log:     logger.Component(log, "livequery"),
		ctx:     ctx,
		cancel:  cancel,
		changed: make(chan struct{}, 1),
	}
	q.Rebind(b)
	return q
}

// Rebind switches the query to new dependencies. The snapshot goes back to
// Loading and results of fetches issued under the old binding are dropped.
// The subscription is replaced only when the table or filter changed.
func (q *Query[T]) Rebind(b Binding[T]) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	resubscribe := q.feed == nil || b.Table != q.binding.Table || b.Filter != q.binding.Filter
	q.binding = b
	q.floor = q.seq + 1
	var zero T
	q.value = zero
	q.state = Loading

	if resubscribe {
		q.detachLocked()
		if b.Table != "" {
			q.attachLocked()
		}
	}
	q.mu.Unlock()

	q.notify()
	q.Refresh()
}

// Snapshot returns the latest applied result.
func (q *Query[T]) Snapshot() (T, State) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.value, q.state
}

// Latest is Snapshot plus the sequence number of the fetch that produced
// the value. Zero means nothing has been applied yet.
func (q *Query[T]) Latest() (T, State, uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.value, q.state, q.applied
}

// Changed fires after a new result or a rebind. Notifications coalesce and
// the channel is closed by Close.
func (q *Query[T]) Changed() <-chan struct{} {
	return q.changed
}

// Refresh issues a fetch under the current binding.
func (q *Query[T]) Refresh() {
	q.mu.Lock()
	if q.closed || q.binding.Fetch == nil {
		q.mu.Unlock()
		return
	}
	q.seq++
	seq := q.seq
	fetch := q.binding.Fetch
	q.wg.Add(1)
	q.mu.Unlock()

	go func() {
		defer q.wg.Done()
		v, err := fetch(q.ctx)
		q.settle(seq, v, err)
	}()
}

// Close releases the subscription and waits for in-flight fetches.
func (q *Query[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.detachLocked()
	for _, f := range q.follows {
		f.Close()
	}
	q.follows = nil
	q.mu.Unlock()

	q.cancel()
	q.wg.Wait()
	close(q.changed)
}

// Follow refetches on changes to a second table as well. The extra feed
// survives rebinds and is released by Close.
func (q *Query[T]) Follow(table, filter string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	feed, err := q.source.Subscribe(table, filter)
	if err != nil {
		return err
	}
	q.follows = append(q.follows, feed)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		events, errs := feed.Events(), feed.Errors()
		for {
			select {
			case <-q.ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				q.Refresh()
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				q.log.Warn().Err(err).Str("table", table).Msg("followed feed failed, snapshot may go stale")
				if errors.Is(err, stream.ErrTimedOut) {
					return
				}
			}
		}
	}()
	return nil
}

func (q *Query[T]) settle(seq uint64, v T, err error) {
	q.mu.Lock()
	applied := false
	switch {
	case q.closed:
	case err != nil:
		metrics.Refetch("error")
		q.log.Warn().Err(err).Str("table", q.binding.Table).Uint64("seq", seq).Msg("refetch failed, keeping last snapshot")
	case seq > q.applied && seq >= q.floor:
		q.value = v
		q.state = Ready
		q.applied = seq
		applied = true
		metrics.Refetch("applied")
	default:
		metrics.Refetch("stale")
	}
	hook := q.afterFetch
	q.mu.Unlock()

	if applied {
		q.notify()
	}
	if hook != nil {
		hook(seq, applied)
	}
}

func (q *Query[T]) notify() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	select {
	case q.changed <- struct{}{}:
	default:
	}
}

func (q *Query[T]) attachLocked() {
	feed, err := q.source.Subscribe(q.binding.Table, q.binding.Filter)
	if err != nil {
		q.log.Warn().Err(err).Str("table", q.binding.Table).Str("filter", q.binding.Filter).Msg("subscribe failed, serving fetched snapshots only")
		return
	}
	stop := make(chan struct{})
	q.feed, q.stop = feed, stop
	q.wg.Add(1)
	go q.watch(feed, stop)
}

func (q *Query[T]) detachLocked() {
	if q.stop != nil {
		close(q.stop)
	}
	if q.feed != nil {
		q.feed.Close()
	}
	q.feed, q.stop = nil, nil
}

func (q *Query[T]) watch(feed Feed, stop chan struct{}) {
	defer q.wg.Done()

	events, errs := feed.Events(), feed.Errors()
	for {
		select {
		case <-stop:
			return
		case <-q.ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			q.Refresh()
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if !errors.Is(err, stream.ErrTimedOut) {
				q.log.Warn().Err(err).Msg("change feed failed, snapshot may go stale")
				continue
			}
			next, ok := q.resubscribe(feed, stop)
			if !ok {
				return
			}
			feed = next
			events, errs = feed.Events(), feed.Errors()
			q.Refresh()
		}
	}
}

// resubscribe replaces a timed out feed once. It reports false when the
// watcher should stop.
func (q *Query[T]) resubscribe(old Feed, stop chan struct{}) (Feed, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	select {
	case <-stop:
		return nil, false
	default:
	}
	old.Close()
	q.feed = nil

	next, err := q.source.Subscribe(q.binding.Table, q.binding.Filter)
	if err != nil {
		q.log.Warn().Err(err).Str("table", q.binding.Table).Msg("resubscribe failed, snapshot may go stale")
		return nil, false
	}
	q.feed = next
	return next, true
}
