package routes

import (
	"linkup_server/controllers"
	"linkup_server/middleware"
	"linkup_server/services"

	"github.com/gorilla/mux"
)

// RegisterMediaRoutes sets up routes for presigned photo URLs under /api/media
func RegisterMediaRoutes(r *mux.Router, s3Service *services.S3Service, auth *middleware.AuthMiddleware) {
	controller := controllers.NewMediaController(s3Service)

	mediaRouter := r.PathPrefix("/api/media").Subrouter()

	mediaRouter.HandleFunc("/generate-presigned-url", auth.Require(controller.HandleGeneratePresignedURL)).Methods("POST")
	mediaRouter.HandleFunc("/read-url", auth.Require(controller.HandleGetReadURL)).Methods("GET")
}
