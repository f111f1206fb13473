package routes

import (
	"linkup_server/ai"
	"linkup_server/controllers"
	"linkup_server/middleware"
	"linkup_server/services"
	"linkup_server/utils"

	"github.com/gorilla/mux"
)

// RegisterAttendeeRoutes sets up routes for attendee signup, the
// questionnaire and recommendations under /api/attendees
func RegisterAttendeeRoutes(
	r *mux.Router,
	attendees *services.AttendeeService,
	events *services.EventService,
	recommendations *services.RecommendationService,
	coordinator *ai.Coordinator,
	tokens *utils.TokenManager,
	auth *middleware.AuthMiddleware,
) {
	controller := controllers.NewAttendeeController(attendees, events, tokens)
	recController := controllers.NewRecommendationController(attendees, recommendations, coordinator)

	attendeeRouter := r.PathPrefix("/api/attendees").Subrouter()

	attendeeRouter.HandleFunc("/professions", controller.HandleGetProfessions).Methods("GET")
	attendeeRouter.HandleFunc("/goals-categories", controller.HandleGetGoalsCategories).Methods("GET")
	attendeeRouter.HandleFunc("", auth.Optional(controller.HandleCreateAttendee)).Methods("POST")
	attendeeRouter.HandleFunc("/{attendeeId}/goals-category", auth.Require(controller.HandleUpdateGoalsCategory)).Methods("PUT")
	attendeeRouter.HandleFunc("/{attendeeId}/answers", auth.Require(controller.HandleSubmitAnswers)).Methods("POST")
	attendeeRouter.HandleFunc("/{attendeeId}/recommendations", auth.Require(recController.HandleGenerateRecommendations)).Methods("POST")
	attendeeRouter.HandleFunc("/{attendeeId}/recommendations", auth.Require(recController.HandleGetRecommendations)).Methods("GET")
}
