package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBaseURL(t *testing.T) {
	assert.Equal(t, "https://ai.example.com/api", normalizeBaseURL("https://ai.example.com"))
	assert.Equal(t, "https://ai.example.com/api", normalizeBaseURL("https://ai.example.com/"))
	assert.Equal(t, "https://ai.example.com/api", normalizeBaseURL("https://ai.example.com/api"))
	assert.Equal(t, "https://ai.example.com/api", normalizeBaseURL("https://ai.example.com/api/"))
}

func TestSubmitProfileSendsAuthenticatedPrunedPayload(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(ProcessAttendeeResponse{Message: "queued", Status: "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token")
	ack, err := client.SubmitProfile(context.Background(), testRequest("e-1", "a-1"))
	require.NoError(t, err)
	assert.Equal(t, "ok", ack.Status)

	assert.Equal(t, "/api/v1/ai/attendees/process", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assertNoNulls(t, gotBody)
	assert.Equal(t, "e-1", gotBody["eventId"])
}

func TestSubmitProfileValidatesBeforeSending(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token")
	var vErr *ValidationError

	_, err := client.SubmitProfile(context.Background(), nil)
	require.ErrorAs(t, err, &vErr)

	_, err = client.SubmitProfile(context.Background(), testRequest("e-1", ""))
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "attendee.attendeeId", vErr.Field)

	req := testRequest("e-1", "a-1")
	req.Attendee.Nickname = "   "
	_, err = client.SubmitProfile(context.Background(), req)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "attendee.nickname", vErr.Field)

	assert.Zero(t, atomic.LoadInt32(&hits), "invalid payloads must never reach the wire")
}

func TestSubmitProfileReportsUpstreamFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token")
	_, err := client.SubmitProfile(context.Background(), testRequest("e-1", "a-1"))

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusServiceUnavailable, upErr.StatusCode)
	assert.Contains(t, upErr.Body, "model unavailable")
}

func TestFetchRecommendationsHappyPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/ai/attendees/recommendations", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"eventId": "e-1",
			"recommendations": []map[string]interface{}{
				{"sourceAttendeeId": "a-1", "targetAttendeeId": "a-2", "score": 0.87, "reasoning": "both into fintech"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api", "secret-token")
	got, err := client.FetchRecommendations(context.Background(), testRequest("e-1", "a-1"))
	require.NoError(t, err)

	assert.Equal(t, "e-1", got.EventID)
	require.Len(t, got.Recommendations, 1)
	assert.Equal(t, "a-2", got.Recommendations[0].TargetAttendeeID)
	assert.InDelta(t, 0.87, got.Recommendations[0].Score, 1e-9)
}

func TestFetchRecommendationsRejectsContractViolations(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", `this is not json`},
		{"missing eventId", `{"recommendations": []}`},
		{"missing recommendations", `{"eventId": "e-1"}`},
		{"item missing score", `{"eventId": "e-1", "recommendations": [{"sourceAttendeeId": "a-1", "targetAttendeeId": "a-2", "reasoning": "x"}]}`},
		{"item missing reasoning", `{"eventId": "e-1", "recommendations": [{"sourceAttendeeId": "a-1", "targetAttendeeId": "a-2", "score": 0.5}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, "secret-token")
			_, err := client.FetchRecommendations(context.Background(), testRequest("e-1", "a-1"))

			var cErr *ContractError
			require.ErrorAs(t, err, &cErr)
		})
	}
}

func TestFetchRecommendationsAcceptsEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"eventId": "e-1", "recommendations": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token")
	got, err := client.FetchRecommendations(context.Background(), testRequest("e-1", "a-1"))
	require.NoError(t, err)
	assert.Empty(t, got.Recommendations)
}

// assertNoNulls walks a decoded JSON tree and fails on any null value.
func assertNoNulls(t *testing.T, value interface{}) {
	t.Helper()
	switch v := value.(type) {
	case map[string]interface{}:
		for key, val := range v {
			require.NotNil(t, val, "field %q must be omitted, not null", key)
			assertNoNulls(t, val)
		}
	case []interface{}:
		for _, val := range v {
			require.NotNil(t, val)
			assertNoNulls(t, val)
		}
	}
}
