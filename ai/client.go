package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// Endpoint sub-paths under the versioned API base.
const (
	processPath         = "v1/ai/attendees/process"
	recommendationsPath = "v1/ai/attendees/recommendations"
)

// Client talks to the external AI matching service. Both endpoints take the
// same normalized attendee payload as an authenticated JSON POST.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient builds a client for the given base URL and static bearer token.
// The base URL is normalized to end in /api, matching the service's
// versioned path layout.
func NewClient(rawBaseURL, token string) *Client {
	return &Client{
		baseURL: normalizeBaseURL(rawBaseURL),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SubmitProfile sends attendee data for processing. Only the acknowledgment
// status matters; the response carries no recommendation data.
func (c *Client) SubmitProfile(ctx context.Context, req *ProcessAttendeeRequest) (*ProcessAttendeeResponse, error) {
	payload, err := normalizePayload(req)
	if err != nil {
		return nil, err
	}

	var ack ProcessAttendeeResponse
	if err := c.postJSON(ctx, joinURL(c.baseURL, processPath), payload, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// FetchRecommendations requests scored peer matches for the attendee. The
// response is contract-checked before being returned: a 2xx body that does
// not match the documented shape fails with a ContractError.
func (c *Client) FetchRecommendations(ctx context.Context, req *ProcessAttendeeRequest) (*RecommendationsResponse, error) {
	payload, err := normalizePayload(req)
	if err != nil {
		return nil, err
	}

	var raw rawRecommendationsResponse
	if err := c.postJSON(ctx, joinURL(c.baseURL, recommendationsPath), payload, &raw); err != nil {
		return nil, err
	}
	return raw.validate()
}

// normalizePayload validates required identifiers, then round-trips the
// request through JSON and strips null fields recursively so optional values
// are omitted rather than sent as null.
func normalizePayload(req *ProcessAttendeeRequest) (map[string]interface{}, error) {
	if req == nil {
		return nil, &ValidationError{Field: "request", Reason: "payload must not be empty"}
	}
	if strings.TrimSpace(req.EventID) == "" {
		return nil, &ValidationError{Field: "eventId", Reason: "eventId is required"}
	}
	if strings.TrimSpace(req.Attendee.AttendeeID) == "" {
		return nil, &ValidationError{Field: "attendee.attendeeId", Reason: "attendeeId is required"}
	}
	if strings.TrimSpace(req.Attendee.Nickname) == "" {
		return nil, &ValidationError{Field: "attendee.nickname", Reason: "nickname is required"}
	}

	encoded, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode AI payload: %w", err)
	}
	var tree map[string]interface{}
	if err := json.Unmarshal(encoded, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode AI payload: %w", err)
	}

	pruned, ok := PruneDeep(tree).(map[string]interface{})
	if !ok {
		return nil, &ValidationError{Field: "request", Reason: "payload must be an object"}
	}
	return pruned, nil
}

func (c *Client) postJSON(ctx context.Context, url string, body interface{}, out interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ai service request failed: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read AI service response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().
			Int("status", resp.StatusCode).
			Str("url", url).
			Str("body", string(rawBody)).
			Msg("AI service returned an error")
		return &UpstreamError{StatusCode: resp.StatusCode, Body: string(rawBody)}
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		log.Error().Str("url", url).Msg("AI service returned non-JSON body")
		return &ContractError{Detail: "response body is not valid JSON"}
	}
	return nil
}

// rawRecommendationsResponse mirrors the documented response with pointer
// fields so missing values can be told apart from zero values.
type rawRecommendationsResponse struct {
	EventID         *string                  `json:"eventId"`
	Recommendations *[]rawRecommendationItem `json:"recommendations"`
}

type rawRecommendationItem struct {
	SourceAttendeeID *string  `json:"sourceAttendeeId"`
	TargetAttendeeID *string  `json:"targetAttendeeId"`
	Score            *float64 `json:"score"`
	Reasoning        *string  `json:"reasoning"`
}

func (r *rawRecommendationsResponse) validate() (*RecommendationsResponse, error) {
	if r.EventID == nil || strings.TrimSpace(*r.EventID) == "" {
		return nil, &ContractError{Detail: "missing eventId"}
	}
	if r.Recommendations == nil {
		return nil, &ContractError{Detail: "missing recommendations array"}
	}

	out := &RecommendationsResponse{
		EventID:         *r.EventID,
		Recommendations: make([]RecommendationItem, 0, len(*r.Recommendations)),
	}
	for i, item := range *r.Recommendations {
		if item.SourceAttendeeID == nil || *item.SourceAttendeeID == "" {
			return nil, &ContractError{Detail: fmt.Sprintf("recommendations[%d] missing sourceAttendeeId", i)}
		}
		if item.TargetAttendeeID == nil || *item.TargetAttendeeID == "" {
			return nil, &ContractError{Detail: fmt.Sprintf("recommendations[%d] missing targetAttendeeId", i)}
		}
		if item.Score == nil {
			return nil, &ContractError{Detail: fmt.Sprintf("recommendations[%d] missing score", i)}
		}
		if item.Reasoning == nil {
			return nil, &ContractError{Detail: fmt.Sprintf("recommendations[%d] missing reasoning", i)}
		}
		out.Recommendations = append(out.Recommendations, RecommendationItem{
			SourceAttendeeID: *item.SourceAttendeeID,
			TargetAttendeeID: *item.TargetAttendeeID,
			Score:            *item.Score,
			Reasoning:        *item.Reasoning,
		})
	}
	return out, nil
}

// normalizeBaseURL ensures the base ends with /api; the AI endpoints live
// under /api/v1/. A base already ending in /api is kept as-is.
func normalizeBaseURL(raw string) string {
	base := strings.TrimRight(raw, "/")
	if strings.HasSuffix(base, "/api") {
		return base
	}
	return base + "/api"
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
