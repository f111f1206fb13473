package ai

import (
	"strings"

	"linkup_server/models"
)

// FallbackNickname is sent when an attendee has no usable display name; the
// AI service requires a human-readable identity string on every profile.
const FallbackNickname = "Guest"

// BuildProcessRequest assembles the normalized AI payload from stored
// attendee records. Optional data (profession, goals category, answers) may
// be missing; only the event and attendee identifiers are mandatory.
// Answers whose question is no longer known are skipped rather than sent
// with an empty question text.
func BuildProcessRequest(
	eventID string,
	attendee *models.Attendee,
	profession *models.Profession,
	professionCategory string,
	goalsCategory *models.GoalsCategory,
	answers []models.AttendeeAnswer,
	questions map[string]models.Question,
) (*ProcessAttendeeRequest, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, &ValidationError{Field: "eventId", Reason: "eventId is required"}
	}
	if attendee == nil || strings.TrimSpace(attendee.ID) == "" {
		return nil, &ValidationError{Field: "attendee.attendeeId", Reason: "attendeeId is required"}
	}

	nickname := strings.TrimSpace(attendee.Nickname)
	if nickname == "" {
		nickname = FallbackNickname
	}

	payload := AttendeePayload{
		AttendeeID: attendee.ID,
		Nickname:   nickname,
	}

	if profession != nil && profession.Name != "" {
		payload.Profession = &Profession{
			Name:         profession.Name,
			CategoryName: professionCategory,
		}
	}
	if goalsCategory != nil && goalsCategory.Name != "" {
		payload.GoalsCategory = &GoalsCategory{Name: goalsCategory.Name}
	}

	for _, answer := range answers {
		question, ok := questions[answer.QuestionID]
		if !ok || question.Question == "" {
			continue
		}
		payload.Answers = append(payload.Answers, buildAnswer(question, answer))
	}

	return &ProcessAttendeeRequest{
		EventID:  eventID,
		Attendee: payload,
	}, nil
}

// buildAnswer maps a stored answer onto the wire shape, carrying exactly the
// value fields its question type uses so conflicting fields are never sent
// together.
func buildAnswer(question models.Question, answer models.AttendeeAnswer) AttendeeAnswer {
	out := AttendeeAnswer{
		Question:     question.Question,
		QuestionType: question.Type,
	}

	switch question.Type {
	case models.QuestionTypeMultiSelect, models.QuestionTypeSingleChoice:
		if answer.AnswerLabel != "" {
			out.AnswerLabel = strPtr(answer.AnswerLabel)
		}
		if answer.Rank != nil {
			out.Rank = answer.Rank
		}
		if answer.Weight != nil {
			out.Weight = answer.Weight
		}
	case models.QuestionTypeFreeText:
		if answer.TextValue != "" {
			out.TextValue = strPtr(answer.TextValue)
		}
	case models.QuestionTypeNumber, models.QuestionTypeScale:
		if answer.NumberValue != nil {
			out.NumberValue = answer.NumberValue
		}
	case models.QuestionTypeDate:
		if answer.DateValue != "" {
			out.DateValue = strPtr(answer.DateValue)
		}
	}

	return out
}

func strPtr(s string) *string { return &s }
