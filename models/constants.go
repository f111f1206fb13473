package models

// Question types
const (
	QuestionTypeMultiSelect  = "MULTI_SELECT"
	QuestionTypeSingleChoice = "SINGLE_CHOICE"
	QuestionTypeFreeText     = "FREE_TEXT"
	QuestionTypeNumber       = "NUMBER"
	QuestionTypeScale        = "SCALE"
	QuestionTypeDate         = "DATE"
)

// Event statuses
const (
	EventStatusDraft     = "DRAFT"
	EventStatusUpcoming  = "UPCOMING"
	EventStatusOngoing   = "ONGOING"
	EventStatusCompleted = "COMPLETED"
)
