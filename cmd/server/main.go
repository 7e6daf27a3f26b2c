package main

import (
	"context"
	"flag"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/bitesys/registrar/internal/app"
	"github.com/bitesys/registrar/internal/handlers"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	_ = godotenv.Load()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to initialize service: %v", err)
	}
	defer service.Close()

	if err := service.Store.ApplyMigrations(service.Config.Store.MigrationsDir); err != nil {
		logger.Error.Fatalf("Failed to apply migrations: %v", err)
	}

	go service.WarmChallenge(context.Background())

	regHandler := handlers.NewRegistrationHandler(service)

	http.HandleFunc("POST /api/v1/registrations", regHandler.HandleSubmit)
	http.HandleFunc("GET /api/v1/registrations", regHandler.HandleList)
	http.HandleFunc("GET /api/v1/events", regHandler.HandleEvents)

	http.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Starting registrar server on %s", service.Config.Server.Port)
	if err := http.ListenAndServe(service.Config.Server.Port, nil); err != nil {
		logger.Error.Fatalf("Registrar server failed: %v", err)
	}
}
