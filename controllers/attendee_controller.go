package controllers

import (
	"encoding/json"
	"net/http"

	"linkup_server/middleware"
	"linkup_server/models"
	"linkup_server/services"
	"linkup_server/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// AttendeeController handles attendee signup and questionnaire endpoints.
type AttendeeController struct {
	Attendees *services.AttendeeService
	Events    *services.EventService
	Tokens    *utils.TokenManager
}

// NewAttendeeController creates a new AttendeeController instance
func NewAttendeeController(attendees *services.AttendeeService, events *services.EventService, tokens *utils.TokenManager) *AttendeeController {
	return &AttendeeController{Attendees: attendees, Events: events, Tokens: tokens}
}

// HandleGetProfessions lists professions grouped by category. Public.
func (ac *AttendeeController) HandleGetProfessions(w http.ResponseWriter, r *http.Request) {
	categories, err := ac.Attendees.GetProfessionCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Get professions error")
		utils.ServerError(w, "Failed to retrieve professions")
		return
	}
	utils.SendSuccess(w, "Professions retrieved successfully", categories, http.StatusOK)
}

// HandleCreateAttendee registers an attendee for an event. Works both for
// authenticated users and anonymous visitors; visitors receive a token whose
// identity is the attendee itself.
func (ac *AttendeeController) HandleCreateAttendee(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var request struct {
		EventID          string `json:"eventId" validate:"required"`
		Nickname         string `json:"nickname" validate:"required,max=100"`
		UserEmail        string `json:"userEmail" validate:"omitempty,email"`
		ProfessionID     string `json:"professionId" validate:"required"`
		LinkedinUsername string `json:"linkedinUsername" validate:"omitempty,max=50"`
		PhotoLink        string `json:"photoLink" validate:"required,url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.SendError(w, "Invalid request payload", nil, http.StatusBadRequest)
		return
	}
	if fieldErrors := utils.ValidateStruct(request); fieldErrors != nil {
		utils.SendError(w, "Validation Error", fieldErrors, http.StatusBadRequest)
		return
	}

	event, err := ac.Events.GetEventByID(r.Context(), request.EventID)
	if err != nil {
		log.Error().Err(err).Msg("Create attendee error")
		utils.ServerError(w, "Attendee registration failed")
		return
	}
	if event == nil || !event.IsActive {
		utils.SendError(w, "Event not found",
			[]utils.FieldError{{Field: "eventId", Message: "Event not found or inactive"}}, http.StatusNotFound)
		return
	}

	profession, _, err := ac.Attendees.FindProfession(r.Context(), request.ProfessionID)
	if err != nil {
		log.Error().Err(err).Msg("Create attendee error")
		utils.ServerError(w, "Attendee registration failed")
		return
	}
	if profession == nil {
		utils.SendError(w, "Profession not found",
			[]utils.FieldError{{Field: "professionId", Message: "Profession not found or inactive"}}, http.StatusNotFound)
		return
	}

	attendee := models.Attendee{
		EventID:          request.EventID,
		Nickname:         request.Nickname,
		ProfessionID:     request.ProfessionID,
		UserEmail:        request.UserEmail,
		LinkedinUsername: request.LinkedinUsername,
		PhotoLink:        request.PhotoLink,
	}
	if user != nil {
		attendee.UserID = user.ID
		if attendee.UserEmail == "" {
			attendee.UserEmail = user.Email
		}
		if attendee.LinkedinUsername == "" {
			attendee.LinkedinUsername = user.LinkedinUsername
		}
	}

	created, err := ac.Attendees.CreateAttendee(r.Context(), attendee)
	if err != nil {
		log.Error().Err(err).Msg("Create attendee error")
		utils.ServerError(w, "Attendee registration failed")
		return
	}

	if err := ac.Events.IncrementParticipants(r.Context(), request.EventID); err != nil {
		log.Warn().Err(err).Str("eventId", request.EventID).Msg("Failed to bump participant count")
	}

	var accessToken string
	if user != nil {
		accessToken, err = ac.Tokens.Generate(user.ID, user.Email, created.ID)
	} else {
		accessToken, err = ac.Tokens.Generate("", "", created.ID)
	}
	if err != nil {
		log.Error().Err(err).Msg("Token generation failed")
		utils.ServerError(w, "Attendee registration failed")
		return
	}

	utils.SendSuccess(w, "Attendee registered successfully", map[string]interface{}{
		"attendeeId":  created.ID,
		"accessToken": accessToken,
	}, http.StatusCreated)
}

// HandleGetGoalsCategories lists active goals categories.
func (ac *AttendeeController) HandleGetGoalsCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := ac.Attendees.GetGoalsCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Get goals categories error")
		utils.ServerError(w, "Failed to retrieve goals categories")
		return
	}
	utils.SendSuccess(w, "Goals categories retrieved successfully", categories, http.StatusOK)
}

// HandleUpdateGoalsCategory sets the attendee's goals category and returns
// that category's questionnaire.
func (ac *AttendeeController) HandleUpdateGoalsCategory(w http.ResponseWriter, r *http.Request) {
	attendeeID := mux.Vars(r)["attendeeId"]

	attendee, ok := authorizeAttendee(w, r, ac.Attendees, attendeeID)
	if !ok {
		return
	}

	var request struct {
		GoalsCategoryID string `json:"goalsCategoryId" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.SendError(w, "Invalid request payload", nil, http.StatusBadRequest)
		return
	}
	if fieldErrors := utils.ValidateStruct(request); fieldErrors != nil {
		utils.SendError(w, "Validation Error", fieldErrors, http.StatusBadRequest)
		return
	}

	category, err := ac.Attendees.GetGoalsCategory(r.Context(), request.GoalsCategoryID)
	if err != nil {
		log.Error().Err(err).Msg("Update goals category error")
		utils.ServerError(w, "Failed to update goals category")
		return
	}
	if category == nil || !category.IsActive {
		utils.SendError(w, "Goals category not found",
			[]utils.FieldError{{Field: "goalsCategoryId", Message: "Goals category not found or inactive"}}, http.StatusNotFound)
		return
	}

	if err := ac.Attendees.SetGoalsCategory(r.Context(), attendee.ID, category.ID); err != nil {
		log.Error().Err(err).Msg("Update goals category error")
		utils.ServerError(w, "Failed to update goals category")
		return
	}

	questions, err := ac.Attendees.GetQuestions(r.Context(), category.ID)
	if err != nil {
		log.Error().Err(err).Msg("Update goals category error")
		utils.ServerError(w, "Failed to update goals category")
		return
	}

	utils.SendSuccess(w, "Goals category updated successfully", map[string]interface{}{
		"attendeeId":    attendee.ID,
		"goalsCategory": category,
		"questions":     questions,
	}, http.StatusOK)
}

// HandleSubmitAnswers stores questionnaire answers, replacing earlier
// answers to the same questions.
func (ac *AttendeeController) HandleSubmitAnswers(w http.ResponseWriter, r *http.Request) {
	attendeeID := mux.Vars(r)["attendeeId"]

	attendee, ok := authorizeAttendee(w, r, ac.Attendees, attendeeID)
	if !ok {
		return
	}

	var request struct {
		Answers []struct {
			QuestionID     string   `json:"questionId" validate:"required"`
			AnswerOptionID string   `json:"answerOptionId"`
			AnswerLabel    string   `json:"answerLabel" validate:"omitempty,max=200"`
			TextValue      string   `json:"textValue" validate:"omitempty,max=2000"`
			NumberValue    *float64 `json:"numberValue"`
			DateValue      string   `json:"dateValue"`
			Rank           *int     `json:"rank"`
			Weight         *float64 `json:"weight"`
		} `json:"answers" validate:"required,min=1,dive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.SendError(w, "Invalid request payload", nil, http.StatusBadRequest)
		return
	}
	if fieldErrors := utils.ValidateStruct(request); fieldErrors != nil {
		utils.SendError(w, "Validation Error", fieldErrors, http.StatusBadRequest)
		return
	}

	answers := make([]models.AttendeeAnswer, 0, len(request.Answers))
	for _, answer := range request.Answers {
		answers = append(answers, models.AttendeeAnswer{
			QuestionID:     answer.QuestionID,
			AnswerOptionID: answer.AnswerOptionID,
			AnswerLabel:    answer.AnswerLabel,
			TextValue:      answer.TextValue,
			NumberValue:    answer.NumberValue,
			DateValue:      answer.DateValue,
			Rank:           answer.Rank,
			Weight:         answer.Weight,
		})
	}

	if err := ac.Attendees.SaveAnswers(r.Context(), attendee.ID, answers); err != nil {
		log.Error().Err(err).Str("attendeeId", attendee.ID).Msg("Save answers error")
		utils.ServerError(w, "Failed to save answers")
		return
	}

	utils.SendSuccess(w, "Answers saved successfully", map[string]interface{}{
		"attendeeId": attendee.ID,
		"count":      len(answers),
	}, http.StatusOK)
}
