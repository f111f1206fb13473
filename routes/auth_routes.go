package routes

import (
	"linkup_server/controllers"
	"linkup_server/middleware"
	"linkup_server/services"
	"linkup_server/utils"

	"github.com/gorilla/mux"
)

// RegisterAuthRoutes sets up routes for registration and login under /api/auth
func RegisterAuthRoutes(r *mux.Router, users *services.UserService, tokens *utils.TokenManager, auth *middleware.AuthMiddleware) {
	controller := controllers.NewAuthController(users, tokens)

	authRouter := r.PathPrefix("/api/auth").Subrouter()

	authRouter.HandleFunc("/register", controller.HandleRegister).Methods("POST")
	authRouter.HandleFunc("/login", controller.HandleLogin).Methods("POST")
	authRouter.HandleFunc("/profile", auth.RequireUser(controller.HandleGetProfile)).Methods("GET")
}
