package ai

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Recommender is the upstream surface the coordinator drives. *Client
// implements it; tests substitute a stub.
type Recommender interface {
	SubmitProfile(ctx context.Context, req *ProcessAttendeeRequest) (*ProcessAttendeeResponse, error)
	FetchRecommendations(ctx context.Context, req *ProcessAttendeeRequest) (*RecommendationsResponse, error)
}

type cacheEntry struct {
	data     *RecommendationsResponse
	storedAt time.Time
}

type outcome struct {
	data *RecommendationsResponse
	err  error
}

// waiter is a caller queued behind an in-flight round trip for its event.
// The channel is buffered so broadcasting never blocks the leader, even if
// the waiter has already given up.
type waiter struct {
	ch         chan outcome
	enqueuedAt time.Time
}

// inflightCall tracks one event's round trip and everyone waiting on it.
// Waiters are keyed by cache key (eventId:attendeeId) so the janitor can
// drop individual stale entries.
type inflightCall struct {
	waiters map[string]*waiter
}

// Coordinator deduplicates concurrent AI-service calls per event, spaces
// outbound round trips with a process-wide rate limit, caches successful
// results with a TTL and fans one upstream result out to every caller
// waiting on the same event.
//
// There is one Coordinator per process. It is constructed explicitly in main
// and injected into the controllers that need it; it exclusively owns the
// cache and in-flight maps.
type Coordinator struct {
	client  Recommender
	limiter *rate.Limiter
	now     func() time.Time

	cacheTTL        time.Duration
	pendingTimeout  time.Duration
	rateInterval    time.Duration
	janitorInterval time.Duration

	mu       sync.Mutex
	cache    map[string]cacheEntry
	inflight map[string]*inflightCall
}

// NewCoordinator builds a coordinator around the given upstream client.
func NewCoordinator(client Recommender, opts ...Option) *Coordinator {
	c := &Coordinator{
		client:          client,
		now:             time.Now,
		cacheTTL:        defaultCacheTTL,
		pendingTimeout:  defaultPendingTimeout,
		rateInterval:    defaultRateInterval,
		janitorInterval: defaultJanitorInterval,
		cache:           make(map[string]cacheEntry),
		inflight:        make(map[string]*inflightCall),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.limiter = rate.NewLimiter(rate.Every(c.rateInterval), 1)
	return c
}

// GetRecommendations returns recommendations for the request's attendee.
//
// A live cache entry for eventId:attendeeId is returned immediately. If a
// round trip for the same event is already in flight the call queues behind
// it and receives that round trip's result or error. Otherwise this call
// becomes the leader: it waits out the global rate limit, submits the
// profile, fetches recommendations, caches the result under its own cache
// key and broadcasts the outcome to every queued caller for the event.
//
// Failures propagate the client's error untouched; the only error minted
// here is ErrRequestTimeout for callers swept by the janitor.
func (c *Coordinator) GetRecommendations(ctx context.Context, req *ProcessAttendeeRequest) (*RecommendationsResponse, error) {
	if req == nil {
		return nil, &ValidationError{Field: "request", Reason: "payload must not be empty"}
	}
	if strings.TrimSpace(req.EventID) == "" {
		return nil, &ValidationError{Field: "eventId", Reason: "eventId is required"}
	}
	if strings.TrimSpace(req.Attendee.AttendeeID) == "" {
		return nil, &ValidationError{Field: "attendee.attendeeId", Reason: "attendeeId is required"}
	}

	cacheKey := req.EventID + ":" + req.Attendee.AttendeeID

	c.mu.Lock()
	if entry, ok := c.cache[cacheKey]; ok && c.now().Sub(entry.storedAt) < c.cacheTTL {
		c.mu.Unlock()
		log.Debug().Str("cacheKey", cacheKey).Msg("Returning cached recommendations")
		return entry.data, nil
	}

	if call, ok := c.inflight[req.EventID]; ok {
		w := &waiter{ch: make(chan outcome, 1), enqueuedAt: c.now()}
		call.waiters[cacheKey] = w
		c.mu.Unlock()
		log.Debug().Str("eventId", req.EventID).Msg("Event already being processed, queuing request")

		select {
		case out := <-w.ch:
			return out.data, out.err
		case <-ctx.Done():
			c.removeWaiter(req.EventID, cacheKey)
			return nil, ctx.Err()
		}
	}

	c.inflight[req.EventID] = &inflightCall{waiters: make(map[string]*waiter)}
	c.mu.Unlock()

	data, err := c.process(ctx, req)

	// Settle everyone, success or failure; the in-flight mark always clears.
	c.mu.Lock()
	if err == nil {
		c.cache[cacheKey] = cacheEntry{data: data, storedAt: c.now()}
	}
	if call, ok := c.inflight[req.EventID]; ok {
		for key, w := range call.waiters {
			w.ch <- outcome{data: data, err: err}
			delete(call.waiters, key)
		}
	}
	delete(c.inflight, req.EventID)
	c.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Str("eventId", req.EventID).Msg("AI processing failed")
		return nil, err
	}
	return data, nil
}

// process performs one rate-limited upstream round trip: profile submission
// followed by the recommendation fetch. Both must succeed.
func (c *Coordinator) process(ctx context.Context, req *ProcessAttendeeRequest) (*RecommendationsResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	log.Info().Str("eventId", req.EventID).Msg("Processing AI request")

	if _, err := c.client.SubmitProfile(ctx, req); err != nil {
		return nil, err
	}
	return c.client.FetchRecommendations(ctx, req)
}

func (c *Coordinator) removeWaiter(eventID, cacheKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if call, ok := c.inflight[eventID]; ok {
		delete(call.waiters, cacheKey)
	}
}

// Cleanup drops cache entries older than the TTL and rejects waiters queued
// longer than the pending timeout, so a hung upstream call cannot hold
// callers or memory indefinitely.
func (c *Coordinator) Cleanup() {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.cache {
		if now.Sub(entry.storedAt) > c.cacheTTL {
			delete(c.cache, key)
		}
	}

	for eventID, call := range c.inflight {
		for key, w := range call.waiters {
			if now.Sub(w.enqueuedAt) > c.pendingTimeout {
				w.ch <- outcome{err: ErrRequestTimeout}
				delete(call.waiters, key)
				log.Warn().Str("eventId", eventID).Str("cacheKey", key).Msg("Timed out pending recommendation request")
			}
		}
	}
}

// StartJanitor runs Cleanup on a fixed interval until ctx is done.
func (c *Coordinator) StartJanitor(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(c.janitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Cleanup()
			}
		}
	}()
}
