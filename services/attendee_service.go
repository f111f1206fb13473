package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"linkup_server/ai"
	"linkup_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AttendeeService handles event attendees and their questionnaire data.
type AttendeeService struct {
	Dynamo *DynamoService
}

// GetProfessionCategories returns active profession categories with their
// active professions, both sorted by name.
func (as *AttendeeService) GetProfessionCategories(ctx context.Context) ([]models.ProfessionCategory, error) {
	var categories []models.ProfessionCategory
	if err := as.Dynamo.ScanItems(ctx, models.ProfessionCategoriesTable, &categories); err != nil {
		return nil, err
	}

	active := categories[:0]
	for _, category := range categories {
		if !category.IsActive {
			continue
		}
		professions := make([]models.Profession, 0, len(category.Professions))
		for _, profession := range category.Professions {
			if profession.IsActive {
				professions = append(professions, profession)
			}
		}
		sort.Slice(professions, func(i, j int) bool { return professions[i].Name < professions[j].Name })
		category.Professions = professions
		active = append(active, category)
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Category < active[j].Category })
	return active, nil
}

// FindProfession locates a profession across categories. Returns the
// profession and its category name, or nil when unknown or inactive.
func (as *AttendeeService) FindProfession(ctx context.Context, professionID string) (*models.Profession, string, error) {
	var categories []models.ProfessionCategory
	if err := as.Dynamo.ScanItems(ctx, models.ProfessionCategoriesTable, &categories); err != nil {
		return nil, "", err
	}
	for _, category := range categories {
		for _, profession := range category.Professions {
			if profession.ID == professionID && profession.IsActive && category.IsActive {
				return &profession, category.Category, nil
			}
		}
	}
	return nil, "", nil
}

// CreateAttendee registers an attendee for an event.
func (as *AttendeeService) CreateAttendee(ctx context.Context, attendee models.Attendee) (*models.Attendee, error) {
	now := time.Now().UTC()
	attendee.ID = uuid.NewString()
	attendee.IsActive = true
	attendee.CreatedAt = now
	attendee.UpdatedAt = now

	if err := as.Dynamo.PutItem(ctx, models.AttendeesTable, attendee); err != nil {
		return nil, err
	}

	log.Info().Str("attendeeId", attendee.ID).Str("eventId", attendee.EventID).Msg("Attendee registered")
	return &attendee, nil
}

// GetAttendeeByID fetches an attendee. Returns nil without an error when it
// does not exist.
func (as *AttendeeService) GetAttendeeByID(ctx context.Context, attendeeID string) (*models.Attendee, error) {
	var attendee models.Attendee
	err := as.Dynamo.GetItem(ctx, models.AttendeesTable, map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: attendeeID},
	}, &attendee)
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attendee, nil
}

// GetGoalsCategories returns active goals categories sorted by name.
func (as *AttendeeService) GetGoalsCategories(ctx context.Context) ([]models.GoalsCategory, error) {
	var categories []models.GoalsCategory
	if err := as.Dynamo.ScanItems(ctx, models.GoalsCategoriesTable, &categories); err != nil {
		return nil, err
	}
	active := categories[:0]
	for _, category := range categories {
		if category.IsActive {
			active = append(active, category)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Name < active[j].Name })
	return active, nil
}

// GetGoalsCategory fetches one goals category. Returns nil without an error
// when it does not exist.
func (as *AttendeeService) GetGoalsCategory(ctx context.Context, goalsCategoryID string) (*models.GoalsCategory, error) {
	var category models.GoalsCategory
	err := as.Dynamo.GetItem(ctx, models.GoalsCategoriesTable, map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: goalsCategoryID},
	}, &category)
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// SetGoalsCategory updates the attendee's chosen goals category.
func (as *AttendeeService) SetGoalsCategory(ctx context.Context, attendeeID, goalsCategoryID string) error {
	_, err := as.Dynamo.UpdateItem(ctx, models.AttendeesTable,
		map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: attendeeID},
		},
		"SET goalsCategoryId = :categoryId, updatedAt = :now",
		map[string]types.AttributeValue{
			":categoryId": &types.AttributeValueMemberS{Value: goalsCategoryID},
			":now":        &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
		nil,
	)
	return err
}

// GetQuestions returns active questions of a goals category with their
// answer options, ordered by display order.
func (as *AttendeeService) GetQuestions(ctx context.Context, goalsCategoryID string) ([]models.Question, error) {
	var questions []models.Question
	err := as.Dynamo.QueryItems(ctx, models.QuestionsTable, models.QuestionGoalsCategoryIndex,
		"goalsCategoryId = :categoryId",
		map[string]types.AttributeValue{
			":categoryId": &types.AttributeValueMemberS{Value: goalsCategoryID},
		},
		&questions,
	)
	if err != nil {
		return nil, err
	}

	active := questions[:0]
	for _, question := range questions {
		if question.IsActive {
			active = append(active, question)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].DisplayOrder < active[j].DisplayOrder })
	return active, nil
}

// SaveAnswers replaces the attendee's answers for every question touched by
// the submission, then stores the new entries. Multi-select questions may
// contribute several entries for the same question.
func (as *AttendeeService) SaveAnswers(ctx context.Context, attendeeID string, answers []models.AttendeeAnswer) error {
	existing, err := as.GetAnswers(ctx, attendeeID)
	if err != nil {
		return err
	}

	replaced := make(map[string]bool, len(answers))
	for _, answer := range answers {
		replaced[answer.QuestionID] = true
	}

	for _, old := range existing {
		if !replaced[old.QuestionID] {
			continue
		}
		err := as.Dynamo.DeleteItem(ctx, models.AttendeeAnswersTable, map[string]types.AttributeValue{
			"attendeeId": &types.AttributeValueMemberS{Value: attendeeID},
			"answerId":   &types.AttributeValueMemberS{Value: old.AnswerID},
		})
		if err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	for _, answer := range answers {
		answer.AttendeeID = attendeeID
		answer.AnswerID = answerSortKey(answer)
		answer.CreatedAt = now
		if err := as.Dynamo.PutItem(ctx, models.AttendeeAnswersTable, answer); err != nil {
			return err
		}
	}

	log.Info().Str("attendeeId", attendeeID).Int("count", len(answers)).Msg("Answers saved")
	return nil
}

func answerSortKey(answer models.AttendeeAnswer) string {
	if answer.AnswerOptionID != "" {
		return fmt.Sprintf("%s#%s", answer.QuestionID, answer.AnswerOptionID)
	}
	return answer.QuestionID
}

// GetAnswers returns all stored answers of an attendee.
func (as *AttendeeService) GetAnswers(ctx context.Context, attendeeID string) ([]models.AttendeeAnswer, error) {
	var answers []models.AttendeeAnswer
	err := as.Dynamo.QueryItems(ctx, models.AttendeeAnswersTable, "",
		"attendeeId = :attendeeId",
		map[string]types.AttributeValue{
			":attendeeId": &types.AttributeValueMemberS{Value: attendeeID},
		},
		&answers,
	)
	if err != nil {
		return nil, err
	}
	return answers, nil
}

// BuildRecommendationRequest assembles the AI payload for an attendee from
// everything stored about them. Missing optional pieces (profession, goals
// category, answers) are tolerated.
func (as *AttendeeService) BuildRecommendationRequest(ctx context.Context, attendee *models.Attendee) (*ai.ProcessAttendeeRequest, error) {
	var (
		profession   *models.Profession
		categoryName string
	)
	if attendee.ProfessionID != "" {
		found, category, err := as.FindProfession(ctx, attendee.ProfessionID)
		if err != nil {
			return nil, err
		}
		profession = found
		categoryName = category
	}

	var goalsCategory *models.GoalsCategory
	questions := map[string]models.Question{}
	if attendee.GoalsCategoryID != "" {
		category, err := as.GetGoalsCategory(ctx, attendee.GoalsCategoryID)
		if err != nil {
			return nil, err
		}
		goalsCategory = category

		categoryQuestions, err := as.GetQuestions(ctx, attendee.GoalsCategoryID)
		if err != nil {
			return nil, err
		}
		for _, question := range categoryQuestions {
			questions[question.ID] = question
		}
	}

	answers, err := as.GetAnswers(ctx, attendee.ID)
	if err != nil {
		return nil, err
	}

	return ai.BuildProcessRequest(attendee.EventID, attendee, profession, categoryName, goalsCategory, answers, questions)
}
