package routes

import (
	"linkup_server/controllers"
	"linkup_server/middleware"
	"linkup_server/services"

	"github.com/gorilla/mux"
)

// RegisterEventRoutes sets up routes for event CRUD under /api/events
func RegisterEventRoutes(r *mux.Router, events *services.EventService, auth *middleware.AuthMiddleware) {
	controller := controllers.NewEventController(events)

	eventRouter := r.PathPrefix("/api/events").Subrouter()

	eventRouter.HandleFunc("", controller.HandleGetEvents).Methods("GET")
	eventRouter.HandleFunc("", auth.RequireUser(controller.HandleCreateEvent)).Methods("POST")
	eventRouter.HandleFunc("/{id}", controller.HandleGetEventByID).Methods("GET")
	eventRouter.HandleFunc("/{id}", auth.RequireUser(controller.HandleUpdateEvent)).Methods("PATCH")
	eventRouter.HandleFunc("/{id}", auth.RequireUser(controller.HandleDeleteEvent)).Methods("DELETE")
}
