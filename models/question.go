package models

import "time"

// Profession is a single profession inside a category
type Profession struct {
	ID       string `json:"id" dynamodbav:"id"`
	Name     string `json:"name" dynamodbav:"name"`
	IsActive bool   `json:"isActive" dynamodbav:"isActive"`
}

// ProfessionCategory groups professions shown on the attendee signup form
type ProfessionCategory struct {
	ID          string       `json:"categoryId" dynamodbav:"id"`
	Category    string       `json:"categoryName" dynamodbav:"category"`
	Professions []Profession `json:"professions" dynamodbav:"professions"`
	IsActive    bool         `json:"-" dynamodbav:"isActive"`
}

// GoalsCategory is a networking goal an attendee can pick
type GoalsCategory struct {
	ID       string `json:"id" dynamodbav:"id"`
	Name     string `json:"name" dynamodbav:"name"`
	IsActive bool   `json:"-" dynamodbav:"isActive"`
}

// AnswerOption is a selectable option of a question
type AnswerOption struct {
	ID           string `json:"id" dynamodbav:"id"`
	Label        string `json:"label" dynamodbav:"label"`
	Value        string `json:"value,omitempty" dynamodbav:"value,omitempty"`
	DisplayOrder int    `json:"displayOrder" dynamodbav:"displayOrder"`
}

// QuestionConstraints bound what an answer may look like
type QuestionConstraints struct {
	MinSelect      int      `json:"minSelect" dynamodbav:"minSelect"`
	MaxSelect      *int     `json:"maxSelect,omitempty" dynamodbav:"maxSelect,omitempty"`
	RequireRanking bool     `json:"requireRanking" dynamodbav:"requireRanking"`
	IsUsingOther   bool     `json:"isUsingOther" dynamodbav:"isUsingOther"`
	TextMaxLen     *int     `json:"textMaxLen,omitempty" dynamodbav:"textMaxLen,omitempty"`
	NumberMin      *float64 `json:"numberMin,omitempty" dynamodbav:"numberMin,omitempty"`
	NumberMax      *float64 `json:"numberMax,omitempty" dynamodbav:"numberMax,omitempty"`
	NumberStep     *float64 `json:"numberStep,omitempty" dynamodbav:"numberStep,omitempty"`
}

// Question is a questionnaire question tied to a goals category
type Question struct {
	ID              string              `json:"id" dynamodbav:"id"`
	GoalsCategoryID string              `json:"-" dynamodbav:"goalsCategoryId"`
	Question        string              `json:"question" dynamodbav:"question"`
	Type            string              `json:"type" dynamodbav:"type"`
	Placeholder     string              `json:"placeholder,omitempty" dynamodbav:"placeholder,omitempty"`
	DisplayOrder    int                 `json:"displayOrder" dynamodbav:"displayOrder"`
	IsRequired      bool                `json:"isRequired" dynamodbav:"isRequired"`
	IsShareable     bool                `json:"isShareable" dynamodbav:"isShareable"`
	Constraints     QuestionConstraints `json:"constraints" dynamodbav:"constraints"`
	AnswerOptions   []AnswerOption      `json:"answerOptions" dynamodbav:"answerOptions"`
	IsActive        bool                `json:"-" dynamodbav:"isActive"`
}

// AttendeeAnswer stores one answer an attendee gave to a question
type AttendeeAnswer struct {
	AttendeeID     string    `json:"attendeeId" dynamodbav:"attendeeId"`
	AnswerID       string    `json:"-" dynamodbav:"answerId"` // questionId#answerOptionId, sort key
	QuestionID     string    `json:"questionId" dynamodbav:"questionId"`
	AnswerOptionID string    `json:"answerOptionId,omitempty" dynamodbav:"answerOptionId,omitempty"`
	AnswerLabel    string    `json:"answerLabel,omitempty" dynamodbav:"answerLabel,omitempty"`
	TextValue      string    `json:"textValue,omitempty" dynamodbav:"textValue,omitempty"`
	NumberValue    *float64  `json:"numberValue,omitempty" dynamodbav:"numberValue,omitempty"`
	DateValue      string    `json:"dateValue,omitempty" dynamodbav:"dateValue,omitempty"`
	Rank           *int      `json:"rank,omitempty" dynamodbav:"rank,omitempty"`
	Weight         *float64  `json:"weight,omitempty" dynamodbav:"weight,omitempty"`
	CreatedAt      time.Time `json:"createdAt" dynamodbav:"createdAt"`
}

// Table and index names for questionnaire data
const (
	ProfessionCategoriesTable = "ProfessionCategories"
	GoalsCategoriesTable      = "GoalsCategories"
	QuestionsTable            = "Questions"
	AttendeeAnswersTable      = "AttendeeAnswers"

	QuestionGoalsCategoryIndex = "goalsCategory-index"
)
