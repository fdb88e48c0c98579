package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"backend-vietrip/internal/logger"
	"backend-vietrip/internal/metrics"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var (
	// ErrTimedOut reports a dropped link that the hub is re-establishing.
	ErrTimedOut = errors.New("realtime channel timed out")
	// ErrChannelClosed reports that the hub gave up on the shared channel.
	ErrChannelClosed = errors.New("realtime channel closed")
)

const redisPattern = "realtime:*"

var newBackOff = func() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 2 * time.Minute
	return b
}

type Publisher interface {
	Publish(ctx context.Context, ch Change)
}

// Hub fans change events out to local subscriptions and, when Redis is
// configured, to every other instance.
type Hub struct {
	redis  *redis.Client
	log    zerolog.Logger
	origin string
	buffer int
	subs   map[string]map[*Subscription]struct{}
	mu     sync.RWMutex
	cancel context.CancelFunc
	done   chan struct{}
}

type Subscription struct {
	Table  string
	Filter Filter
	events chan Change
	errs   chan error
	hub    *Hub
	once   sync.Once
}

func (s *Subscription) Events() <-chan Change { return s.events }
func (s *Subscription) Errors() <-chan error  { return s.errs }

// Close detaches the subscription and closes its channels. Safe to call more
// than once.
func (s *Subscription) Close() {
	s.once.Do(func() { s.hub.unsubscribe(s) })
}

func NewHub(redisClient *redis.Client, log zerolog.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		redis:  redisClient,
		log:    logger.Component(log, "realtime"),
		origin: uuid.NewString(),
		buffer: buffer,
		subs:   map[string]map[*Subscription]struct{}{},
		cancel: cancel,
		done:   make(chan struct{}),
	}

	if redisClient != nil {
		go h.listen(ctx)
	} else {
		close(h.done)
	}
	return h
}

// Close stops the Redis listener. Open subscriptions stay usable for local
// events.
func (h *Hub) Close() {
	h.cancel()
	<-h.done
}

func (h *Hub) Subscribe(table, filter string) (*Subscription, error) {
	if !knownTables[table] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	f, err := ParseFilter(filter)
	if err != nil {
		return nil, err
	}
	sub := &Subscription{
		Table:  table,
		Filter: f,
		events: make(chan Change, h.buffer),
		errs:   make(chan error, 1),
		hub:    h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[table] == nil {
		h.subs[table] = map[*Subscription]struct{}{}
	}
	h.subs[table][sub] = struct{}{}
	metrics.SubscriptionOpened()
	return sub, nil
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if tableSubs, ok := h.subs[sub.Table]; ok {
		delete(tableSubs, sub)
		if len(tableSubs) == 0 {
			delete(h.subs, sub.Table)
		}
	}
	close(sub.events)
	close(sub.errs)
	metrics.SubscriptionClosed()
}

// Publish delivers ch locally and forwards it to the other instances.
func (h *Hub) Publish(ctx context.Context, ch Change) {
	ch.Origin = h.origin
	metrics.EventPublished(ch.Table)
	h.deliver(ch)

	if h.redis == nil {
		return
	}
	payload, err := json.Marshal(ch)
	if err != nil {
		h.log.Error().Err(err).Str("table", ch.Table).Msg("encode change")
		return
	}
	if err := h.redis.Publish(ctx, redisChannel(ch.Table), payload).Err(); err != nil {
		h.log.Warn().Err(err).Str("table", ch.Table).Msg("redis publish failed")
	}
}

func (h *Hub) deliver(ch Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[ch.Table] {
		if !sub.Filter.Matches(ch) {
			continue
		}
		select {
		case sub.events <- ch:
			metrics.EventDelivered(ch.Table)
		default:
			// A queued event already forces a refetch.
			metrics.EventDropped(ch.Table)
		}
	}
}

func (h *Hub) broadcastErr(err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, tableSubs := range h.subs {
		for sub := range tableSubs {
			select {
			case sub.errs <- err:
			default:
				// Keep only the most recent error.
				select {
				case <-sub.errs:
				default:
				}
				select {
				case sub.errs <- err:
				default:
				}
			}
		}
	}
}

func (h *Hub) listen(ctx context.Context) {
	defer close(h.done)

	b := backoff.WithContext(newBackOff(), ctx)
	for {
		err := h.pump(ctx, b.Reset)
		if ctx.Err() != nil {
			return
		}
		h.log.Warn().Err(err).Msg("redis subscription dropped")
		h.broadcastErr(fmt.Errorf("%w: %v", ErrTimedOut, err))

		wait := b.NextBackOff()
		if wait == backoff.Stop {
			h.log.Error().Msg("redis subscription abandoned")
			h.broadcastErr(ErrChannelClosed)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

func (h *Hub) pump(ctx context.Context, onReady func()) error {
	pubsub := h.redis.PSubscribe(ctx, redisPattern)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	onReady()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			return err
		}
		var ch Change
		if err := json.Unmarshal([]byte(msg.Payload), &ch); err != nil {
			h.log.Warn().Err(err).Str("channel", msg.Channel).Msg("discarding malformed change")
			continue
		}
		if ch.Origin == h.origin {
			continue
		}
		if ch.Table == "" {
			ch.Table = tableFromChannel(msg.Channel)
		}
		h.deliver(ch)
	}
}

func redisChannel(table string) string {
	return "realtime:" + table
}

func tableFromChannel(ch string) string {
	const prefix = "realtime:"
	if len(ch) <= len(prefix) {
		return ""
	}
	return ch[len(prefix):]
}
