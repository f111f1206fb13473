package ai

// Wire types for the external AI matching service. Optional fields are
// pointers so that absent values are omitted from the JSON payload entirely;
// the upstream schema rejects explicit nulls.

// AttendeeAnswer is one normalized questionnaire answer.
type AttendeeAnswer struct {
	Question     string   `json:"question"`
	QuestionType string   `json:"questionType"`
	AnswerLabel  *string  `json:"answerLabel,omitempty"`
	Rank         *int     `json:"rank,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	TextValue    *string  `json:"textValue,omitempty"`
	NumberValue  *float64 `json:"numberValue,omitempty"`
	DateValue    *string  `json:"dateValue,omitempty"`
}

// Profession carries the attendee's profession and its category.
type Profession struct {
	Name         string `json:"name,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
}

// GoalsCategory carries the attendee's chosen networking goal.
type GoalsCategory struct {
	Name string `json:"name,omitempty"`
}

// AttendeePayload is the normalized profile the AI service scores.
type AttendeePayload struct {
	AttendeeID    string           `json:"attendeeId"`
	Nickname      string           `json:"nickname"` // required upstream; must be a realistic name
	Profession    *Profession      `json:"profession,omitempty"`
	GoalsCategory *GoalsCategory   `json:"goalsCategory,omitempty"`
	Answers       []AttendeeAnswer `json:"answers,omitempty"`
}

// ProcessAttendeeRequest identifies one unit of recommendation work.
type ProcessAttendeeRequest struct {
	EventID  string          `json:"eventId"`
	Attendee AttendeePayload `json:"attendee"`
}

// ProcessAttendeeResponse acknowledges a profile submission.
type ProcessAttendeeResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// RecommendationItem is one scored edge from a source attendee to a peer.
type RecommendationItem struct {
	SourceAttendeeID string  `json:"sourceAttendeeId"`
	TargetAttendeeID string  `json:"targetAttendeeId"`
	Score            float64 `json:"score"`
	Reasoning        string  `json:"reasoning"`
}

// RecommendationsResponse is the AI service's answer for one event.
type RecommendationsResponse struct {
	EventID         string               `json:"eventId"`
	Recommendations []RecommendationItem `json:"recommendations"`
}
