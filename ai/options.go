package ai

import "time"

// Defaults for the coordinator's timing knobs.
const (
	defaultCacheTTL        = 5 * time.Minute
	defaultPendingTimeout  = 30 * time.Second
	defaultRateInterval    = time.Second
	defaultJanitorInterval = 5 * time.Minute
)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithCacheTTL overrides how long a cached result stays valid.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Coordinator) { c.cacheTTL = ttl }
}

// WithPendingTimeout overrides how long a queued caller may wait before the
// janitor rejects it.
func WithPendingTimeout(timeout time.Duration) Option {
	return func(c *Coordinator) { c.pendingTimeout = timeout }
}

// WithRateInterval overrides the minimum spacing between upstream round
// trips across all events.
func WithRateInterval(interval time.Duration) Option {
	return func(c *Coordinator) { c.rateInterval = interval }
}

// WithJanitorInterval overrides how often the background sweep runs.
func WithJanitorInterval(interval time.Duration) Option {
	return func(c *Coordinator) { c.janitorInterval = interval }
}

// WithClock injects the time source used for cache and pending-request
// bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}
