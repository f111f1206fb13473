package models

import "time"

// Event defines the structure for networking events
type Event struct {
	ID                  string    `json:"id" dynamodbav:"id"`
	Name                string    `json:"name" dynamodbav:"name"`
	Start               time.Time `json:"start" dynamodbav:"start"`
	End                 time.Time `json:"end" dynamodbav:"end"`
	Detail              string    `json:"detail,omitempty" dynamodbav:"detail,omitempty"`
	LocationName        string    `json:"locationName,omitempty" dynamodbav:"locationName,omitempty"`
	Latitude            float64   `json:"latitude,omitempty" dynamodbav:"latitude,omitempty"`
	Longitude           float64   `json:"longitude,omitempty" dynamodbav:"longitude,omitempty"`
	Status              string    `json:"status" dynamodbav:"status"`
	CurrentParticipants int       `json:"currentParticipants" dynamodbav:"currentParticipants"`
	CreatedBy           string    `json:"createdBy" dynamodbav:"createdBy"`
	IsActive            bool      `json:"isActive" dynamodbav:"isActive"`
	CreatedAt           time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// EventsTable is the DynamoDB table name for events
const EventsTable = "Events"
