package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkup_server/ai"
	"linkup_server/config"
	"linkup_server/middleware"
	"linkup_server/routes"
	"linkup_server/services"
	"linkup_server/utils"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration error")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize DynamoDB client and service
	log.Info().Str("region", cfg.AWSRegion).Msg("Initializing DynamoDB client")
	dynamoClient, err := services.InitializeDynamoDBClient(ctx, cfg.AWSRegion)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize DynamoDB client")
	}
	dynamoService := &services.DynamoService{Client: dynamoClient}

	// Initialize Services
	userService := &services.UserService{Dynamo: dynamoService}
	eventService := &services.EventService{Dynamo: dynamoService}
	attendeeService := &services.AttendeeService{Dynamo: dynamoService}
	recommendationService := &services.RecommendationService{Dynamo: dynamoService}

	s3Service, err := services.NewS3Service(ctx, cfg.AWSRegion, cfg.S3BucketName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize S3 service")
	}

	// AI recommendation coordinator: one shared instance so concurrent
	// requests for the same event collapse into a single upstream call.
	aiClient := ai.NewClient(cfg.AIServiceURL, cfg.AIServiceToken)
	coordinator := ai.NewCoordinator(aiClient)
	coordinator.StartJanitor(ctx)

	tokens := utils.NewTokenManager(cfg.JWTSecret)
	auth := middleware.NewAuthMiddleware(tokens, userService, attendeeService)

	// Initialize the router
	r := mux.NewRouter()

	// Register routes
	routes.RegisterRoutes(r)
	routes.RegisterAuthRoutes(r, userService, tokens, auth)
	routes.RegisterUserRoutes(r, userService, auth)
	routes.RegisterEventRoutes(r, eventService, auth)
	routes.RegisterAttendeeRoutes(r, attendeeService, eventService, recommendationService, coordinator, tokens, auth)
	routes.RegisterMediaRoutes(r, s3Service, auth)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      corsHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("environment", cfg.Environment).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
