package routes

import (
	"linkup_server/controllers"
	"linkup_server/middleware"
	"linkup_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up routes for user profiles under /api/users
func RegisterUserRoutes(r *mux.Router, users *services.UserService, auth *middleware.AuthMiddleware) {
	controller := controllers.NewUserController(users)

	userRouter := r.PathPrefix("/api/users").Subrouter()

	userRouter.HandleFunc("/me", auth.RequireUser(controller.HandleGetMyProfile)).Methods("GET")
	userRouter.HandleFunc("/me", auth.RequireUser(controller.HandleUpdateMyProfile)).Methods("PUT")
	userRouter.HandleFunc("/{id}", controller.HandleGetUserByID).Methods("GET")
}
