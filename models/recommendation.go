package models

import "time"

// Recommendation is a persisted peer-matching edge between two attendees of
// the same event. Stored so clients can fall back to previously computed
// matches when the AI service is unavailable.
type Recommendation struct {
	EventID          string    `json:"eventId" dynamodbav:"eventId"`
	EdgeID           string    `json:"-" dynamodbav:"edgeId"` // sourceAttendeeId#targetAttendeeId
	SourceAttendeeID string    `json:"sourceAttendeeId" dynamodbav:"sourceAttendeeId"`
	TargetAttendeeID string    `json:"targetAttendeeId" dynamodbav:"targetAttendeeId"`
	Score            float64   `json:"score" dynamodbav:"score"`
	Reasoning        string    `json:"reasoning" dynamodbav:"reasoning"`
	IsActive         bool      `json:"isActive" dynamodbav:"isActive"`
	CreatedAt        time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// RecommendationsTable is the DynamoDB table name for recommendation edges
const RecommendationsTable = "Recommendations"
