package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/graceway/shepherd/internal/api/v1/handlers"
	v1mware "github.com/graceway/shepherd/internal/api/v1/middleware"
	"github.com/graceway/shepherd/internal/config"
	"github.com/graceway/shepherd/internal/services"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	setupLogging()

	svcs, err := services.InitializeServices()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	router := setupRouter(svcs)

	srv := &http.Server{
		Addr:        ":" + config.GetPort(),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: voice streams stay open for the length of a reply.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if redisService := svcs.GetRedisService(); redisService != nil {
		redisService.Close()
	}
	if mongoService := svcs.GetMongoService(); mongoService != nil {
		if err := mongoService.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to close MongoDB connection")
		}
	}

	log.Info().Msg("Server stopped")
}

func setupLogging() {
	level, err := zerolog.ParseLevel(config.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetEnvironment() == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func setupRouter(svcs *services.Services) *mux.Router {
	router := mux.NewRouter()
	router.Use(v1mware.RequestLog)
	router.Use(v1mware.CORS)
	router.Use(v1mware.RateLimit("global"))

	handlers.RegisterV1Routes(router, svcs)
	return router
}
