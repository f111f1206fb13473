package models

import "time"

// Attendee defines the structure for event attendees. An attendee may be
// linked to a registered user or represent an anonymous visitor.
type Attendee struct {
	ID               string    `json:"id" dynamodbav:"id"`
	EventID          string    `json:"eventId" dynamodbav:"eventId"`
	UserID           string    `json:"userId,omitempty" dynamodbav:"userId,omitempty"`
	UserEmail        string    `json:"userEmail,omitempty" dynamodbav:"userEmail,omitempty"`
	Nickname         string    `json:"nickname" dynamodbav:"nickname"`
	ProfessionID     string    `json:"professionId" dynamodbav:"professionId"`
	LinkedinUsername string    `json:"linkedinUsername,omitempty" dynamodbav:"linkedinUsername,omitempty"`
	PhotoLink        string    `json:"photoLink,omitempty" dynamodbav:"photoLink,omitempty"`
	GoalsCategoryID  string    `json:"goalsCategoryId,omitempty" dynamodbav:"goalsCategoryId,omitempty"`
	IsActive         bool      `json:"isActive" dynamodbav:"isActive"`
	CreatedAt        time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// AttendeesTable is the DynamoDB table name for attendees
const AttendeesTable = "Attendees"

// AttendeeEventIndex is the GSI used to list attendees of an event
const AttendeeEventIndex = "event-index"
