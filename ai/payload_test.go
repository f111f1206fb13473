package ai

import (
	"testing"

	"linkup_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestBuildProcessRequestMinimalProfile(t *testing.T) {
	attendee := &models.Attendee{ID: "a-1", Nickname: "Dana"}

	got, err := BuildProcessRequest("e-1", attendee, nil, "", nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "e-1", got.EventID)
	assert.Equal(t, "a-1", got.Attendee.AttendeeID)
	assert.Equal(t, "Dana", got.Attendee.Nickname)
	assert.Nil(t, got.Attendee.Profession)
	assert.Nil(t, got.Attendee.GoalsCategory)
	assert.Empty(t, got.Attendee.Answers)
}

func TestBuildProcessRequestFallsBackToGuestNickname(t *testing.T) {
	attendee := &models.Attendee{ID: "a-1", Nickname: "   "}

	got, err := BuildProcessRequest("e-1", attendee, nil, "", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, FallbackNickname, got.Attendee.Nickname)
}

func TestBuildProcessRequestRequiresIdentifiers(t *testing.T) {
	var vErr *ValidationError

	_, err := BuildProcessRequest("", &models.Attendee{ID: "a-1"}, nil, "", nil, nil, nil)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "eventId", vErr.Field)

	_, err = BuildProcessRequest("e-1", nil, nil, "", nil, nil, nil)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "attendee.attendeeId", vErr.Field)
}

func TestBuildProcessRequestCarriesProfessionAndGoals(t *testing.T) {
	attendee := &models.Attendee{ID: "a-1", Nickname: "Dana"}
	profession := &models.Profession{ID: "p-1", Name: "Backend Engineer"}
	goals := &models.GoalsCategory{ID: "g-1", Name: "Find collaborators"}

	got, err := BuildProcessRequest("e-1", attendee, profession, "Engineering", goals, nil, nil)
	require.NoError(t, err)

	require.NotNil(t, got.Attendee.Profession)
	assert.Equal(t, "Backend Engineer", got.Attendee.Profession.Name)
	assert.Equal(t, "Engineering", got.Attendee.Profession.CategoryName)
	require.NotNil(t, got.Attendee.GoalsCategory)
	assert.Equal(t, "Find collaborators", got.Attendee.GoalsCategory.Name)
}

func TestBuildProcessRequestMapsAnswersByQuestionType(t *testing.T) {
	attendee := &models.Attendee{ID: "a-1", Nickname: "Dana"}
	questions := map[string]models.Question{
		"q-multi":  {ID: "q-multi", Question: "Pick your interests", Type: models.QuestionTypeMultiSelect},
		"q-text":   {ID: "q-text", Question: "Describe your project", Type: models.QuestionTypeFreeText},
		"q-scale":  {ID: "q-scale", Question: "How senior are you?", Type: models.QuestionTypeScale},
		"q-date":   {ID: "q-date", Question: "When did you start?", Type: models.QuestionTypeDate},
	}
	answers := []models.AttendeeAnswer{
		{QuestionID: "q-multi", AnswerLabel: "Fintech", Rank: intPtr(1), Weight: floatPtr(0.8), TextValue: "ignored"},
		{QuestionID: "q-text", TextValue: "Building a payments API", NumberValue: floatPtr(99)},
		{QuestionID: "q-scale", NumberValue: floatPtr(4)},
		{QuestionID: "q-date", DateValue: "2020-01-15"},
		{QuestionID: "q-gone", AnswerLabel: "orphaned"},
	}

	got, err := BuildProcessRequest("e-1", attendee, nil, "", nil, answers, questions)
	require.NoError(t, err)
	require.Len(t, got.Attendee.Answers, 4, "answers without a known question must be skipped")

	byQuestion := make(map[string]AttendeeAnswer)
	for _, a := range got.Attendee.Answers {
		byQuestion[a.Question] = a
	}

	multi := byQuestion["Pick your interests"]
	assert.Equal(t, models.QuestionTypeMultiSelect, multi.QuestionType)
	require.NotNil(t, multi.AnswerLabel)
	assert.Equal(t, "Fintech", *multi.AnswerLabel)
	assert.Equal(t, 1, *multi.Rank)
	assert.InDelta(t, 0.8, *multi.Weight, 1e-9)
	assert.Nil(t, multi.TextValue, "multi-select answers must not carry a text value")

	text := byQuestion["Describe your project"]
	require.NotNil(t, text.TextValue)
	assert.Equal(t, "Building a payments API", *text.TextValue)
	assert.Nil(t, text.NumberValue, "free-text answers must not carry a number value")

	scale := byQuestion["How senior are you?"]
	require.NotNil(t, scale.NumberValue)
	assert.InDelta(t, 4, *scale.NumberValue, 1e-9)

	date := byQuestion["When did you start?"]
	require.NotNil(t, date.DateValue)
	assert.Equal(t, "2020-01-15", *date.DateValue)
}
