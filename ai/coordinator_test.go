package ai

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRecommender is a controllable upstream. When release is set, profile
// submission blocks until the channel is closed.
type stubRecommender struct {
	mu          sync.Mutex
	submitCalls int
	fetchCalls  int
	submitErr   error
	response    *RecommendationsResponse

	started chan struct{}
	release chan struct{}
}

func (s *stubRecommender) SubmitProfile(ctx context.Context, req *ProcessAttendeeRequest) (*ProcessAttendeeResponse, error) {
	s.mu.Lock()
	s.submitCalls++
	err := s.submitErr
	started := s.started
	release := s.release
	s.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &ProcessAttendeeResponse{Message: "queued", Status: "ok"}, nil
}

func (s *stubRecommender) FetchRecommendations(ctx context.Context, req *ProcessAttendeeRequest) (*RecommendationsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchCalls++
	return s.response, nil
}

func (s *stubRecommender) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitCalls, s.fetchCalls
}

func (s *stubRecommender) setSubmitErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitErr = err
}

// fakeClock is a mutex-guarded manual time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func testRequest(eventID, attendeeID string) *ProcessAttendeeRequest {
	return &ProcessAttendeeRequest{
		EventID: eventID,
		Attendee: AttendeePayload{
			AttendeeID: attendeeID,
			Nickname:   "Alex",
		},
	}
}

func testResponse(eventID string) *RecommendationsResponse {
	return &RecommendationsResponse{
		EventID: eventID,
		Recommendations: []RecommendationItem{
			{SourceAttendeeID: "a-1", TargetAttendeeID: "a-2", Score: 0.91, Reasoning: "shared goals"},
		},
	}
}

func TestGetRecommendationsSingleRoundTrip(t *testing.T) {
	stub := &stubRecommender{response: testResponse("e-1")}
	coordinator := NewCoordinator(stub, WithRateInterval(time.Millisecond))

	got, err := coordinator.GetRecommendations(context.Background(), testRequest("e-1", "a-1"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "e-1", got.EventID)
	assert.Len(t, got.Recommendations, 1)

	submits, fetches := stub.counts()
	assert.Equal(t, 1, submits)
	assert.Equal(t, 1, fetches)
}

func TestGetRecommendationsValidatesInput(t *testing.T) {
	coordinator := NewCoordinator(&stubRecommender{})

	_, err := coordinator.GetRecommendations(context.Background(), nil)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = coordinator.GetRecommendations(context.Background(), testRequest("", "a-1"))
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "eventId", vErr.Field)

	_, err = coordinator.GetRecommendations(context.Background(), testRequest("e-1", "  "))
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "attendee.attendeeId", vErr.Field)
}

func TestConcurrentSameEventSharesOneRoundTrip(t *testing.T) {
	stub := &stubRecommender{
		response: testResponse("e-1"),
		started:  make(chan struct{}, 1),
		release:  make(chan struct{}),
	}
	coordinator := NewCoordinator(stub, WithRateInterval(time.Millisecond))

	type result struct {
		resp *RecommendationsResponse
		err  error
	}
	leaderDone := make(chan result, 1)
	go func() {
		resp, err := coordinator.GetRecommendations(context.Background(), testRequest("e-1", "a-1"))
		leaderDone <- result{resp, err}
	}()

	// Leader is now inside the upstream call.
	<-stub.started

	waiterDone := make(chan result, 3)
	for _, attendeeID := range []string{"a-2", "a-3", "a-4"} {
		go func(id string) {
			resp, err := coordinator.GetRecommendations(context.Background(), testRequest("e-1", id))
			waiterDone <- result{resp, err}
		}(attendeeID)
	}

	require.Eventually(t, func() bool {
		coordinator.mu.Lock()
		defer coordinator.mu.Unlock()
		call, ok := coordinator.inflight["e-1"]
		return ok && len(call.waiters) == 3
	}, 2*time.Second, 5*time.Millisecond, "waiters never queued behind the in-flight call")

	close(stub.release)

	leader := <-leaderDone
	require.NoError(t, leader.err)
	for i := 0; i < 3; i++ {
		waiter := <-waiterDone
		require.NoError(t, waiter.err)
		assert.Equal(t, leader.resp, waiter.resp)
	}

	submits, fetches := stub.counts()
	assert.Equal(t, 1, submits, "all callers must share one profile submission")
	assert.Equal(t, 1, fetches, "all callers must share one recommendation fetch")
}

func TestCacheServesRepeatCalls(t *testing.T) {
	stub := &stubRecommender{response: testResponse("e-1")}
	coordinator := NewCoordinator(stub, WithRateInterval(time.Millisecond))

	first, err := coordinator.GetRecommendations(context.Background(), testRequest("e-1", "a-1"))
	require.NoError(t, err)
	second, err := coordinator.GetRecommendations(context.Background(), testRequest("e-1", "a-1"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	submits, _ := stub.counts()
	assert.Equal(t, 1, submits, "second call must be served from cache")
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	clock := newFakeClock()
	stub := &stubRecommender{response: testResponse("e-1")}
	coordinator := NewCoordinator(stub,
		WithRateInterval(time.Millisecond),
		WithCacheTTL(5*time.Minute),
		WithClock(clock.Now),
	)

	_, err := coordinator.GetRecommendations(context.Background(), testRequest("e-1", "a-1"))
	require.NoError(t, err)

	clock.Advance(4 * time.Minute)
	_, err = coordinator.GetRecommendations(context.Background(), testRequest("e-1", "a-1"))
	require.NoError(t, err)
	submits, _ := stub.counts()
	assert.Equal(t, 1, submits, "entry still inside the TTL must be served from cache")

	clock.Advance(2 * time.Minute)
	_, err = coordinator.GetRecommendations(context.Background(), testRequest("e-1", "a-1"))
	require.NoError(t, err)
	submits, _ = stub.counts()
	assert.Equal(t, 2, submits, "expired entry must trigger a fresh round trip")
}

func TestFailuresAreNotCached(t *testing.T) {
	stub := &stubRecommender{response: testResponse("e-1")}
	stub.setSubmitErr(&UpstreamError{StatusCode: 500, Body: "boom"})
	coordinator := NewCoordinator(stub, WithRateInterval(time.Millisecond))

	_, err := coordinator.GetRecommendations(context.Background(), testRequest("e-1", "a-1"))
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, 500, upErr.StatusCode)

	// Upstream recovers; the next call must go out immediately.
	stub.setSubmitErr(nil)
	got, err := coordinator.GetRecommendations(context.Background(), testRequest("e-1", "a-1"))
	require.NoError(t, err)
	assert.Equal(t, "e-1", got.EventID)

	submits, _ := stub.counts()
	assert.Equal(t, 2, submits)
}

func TestRoundTripsAreSpacedAcrossEvents(t *testing.T) {
	interval := 150 * time.Millisecond
	stub := &stubRecommender{response: testResponse("e-1")}
	coordinator := NewCoordinator(stub, WithRateInterval(interval))

	start := time.Now()
	_, err := coordinator.GetRecommendations(context.Background(), testRequest("e-1", "a-1"))
	require.NoError(t, err)
	_, err = coordinator.GetRecommendations(context.Background(), testRequest("e-2", "b-1"))
	require.NoError(t, err)

	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, interval-20*time.Millisecond,
		"second round trip must wait out the global rate limit")
}

func TestCleanupTimesOutStaleWaiters(t *testing.T) {
	clock := newFakeClock()
	stub := &stubRecommender{
		response: testResponse("e-1"),
		started:  make(chan struct{}, 1),
		release:  make(chan struct{}),
	}
	coordinator := NewCoordinator(stub,
		WithRateInterval(time.Millisecond),
		WithPendingTimeout(30*time.Second),
		WithClock(clock.Now),
	)

	leaderDone := make(chan error, 1)
	go func() {
		_, err := coordinator.GetRecommendations(context.Background(), testRequest("e-1", "a-1"))
		leaderDone <- err
	}()
	<-stub.started

	waiterDone := make(chan error, 1)
	go func() {
		_, err := coordinator.GetRecommendations(context.Background(), testRequest("e-1", "a-2"))
		waiterDone <- err
	}()

	require.Eventually(t, func() bool {
		coordinator.mu.Lock()
		defer coordinator.mu.Unlock()
		call, ok := coordinator.inflight["e-1"]
		return ok && len(call.waiters) == 1
	}, 2*time.Second, 5*time.Millisecond)

	clock.Advance(31 * time.Second)
	coordinator.Cleanup()

	require.ErrorIs(t, <-waiterDone, ErrRequestTimeout)

	// The leader is unaffected and still completes normally.
	close(stub.release)
	require.NoError(t, <-leaderDone)
}

func TestCleanupEvictsExpiredCacheEntries(t *testing.T) {
	clock := newFakeClock()
	stub := &stubRecommender{response: testResponse("e-1")}
	coordinator := NewCoordinator(stub,
		WithRateInterval(time.Millisecond),
		WithCacheTTL(5*time.Minute),
		WithClock(clock.Now),
	)

	_, err := coordinator.GetRecommendations(context.Background(), testRequest("e-1", "a-1"))
	require.NoError(t, err)

	clock.Advance(6 * time.Minute)
	coordinator.Cleanup()

	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	assert.Empty(t, coordinator.cache)
}

func TestWaiterCanGiveUpViaContext(t *testing.T) {
	stub := &stubRecommender{
		response: testResponse("e-1"),
		started:  make(chan struct{}, 1),
		release:  make(chan struct{}),
	}
	coordinator := NewCoordinator(stub, WithRateInterval(time.Millisecond))

	leaderDone := make(chan error, 1)
	go func() {
		_, err := coordinator.GetRecommendations(context.Background(), testRequest("e-1", "a-1"))
		leaderDone <- err
	}()
	<-stub.started

	ctx, cancel := context.WithCancel(context.Background())
	waiterDone := make(chan error, 1)
	go func() {
		_, err := coordinator.GetRecommendations(ctx, testRequest("e-1", "a-2"))
		waiterDone <- err
	}()

	require.Eventually(t, func() bool {
		coordinator.mu.Lock()
		defer coordinator.mu.Unlock()
		call, ok := coordinator.inflight["e-1"]
		return ok && len(call.waiters) == 1
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-waiterDone, context.Canceled)

	close(stub.release)
	require.NoError(t, <-leaderDone)

	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	assert.Empty(t, coordinator.inflight, "in-flight mark must clear after the round trip")
}
