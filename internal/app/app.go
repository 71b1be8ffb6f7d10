package app

import (
	"fmt"
	"net/http"

	"signserver/internal/config"
	"signserver/internal/logger"
	"signserver/internal/routes"
	"signserver/internal/services/ai"
	"signserver/internal/services/events"
)

type App struct {
	config *config.Config
	logger *logger.Logger
	loader *ai.Loader
	hub    *events.HubService
}

func NewApp() *App {
	cfg := config.Load()
	log := logger.New(cfg.LogDirectory)

	// The model is loaded lazily on the first analysis and reused for the
	// lifetime of the process.
	loader := ai.NewLoader(func() (ai.Detector, error) {
		return ai.NewDetectorService(cfg, log)
	})

	return &App{
		config: cfg,
		logger: log,
		loader: loader,
		hub:    events.NewHubService(log),
	}
}

func (a *App) Run() error {
	go a.hub.Run()

	router := routes.SetupRoutes(a.loader, a.hub, a.config, a.logger)

	a.logger.Info("Traffic Sign Detection Server")
	a.logger.Info("URL: http://localhost:%d", a.config.Port)
	a.logger.Info("Model: %s", a.config.ModelPath)
	a.logger.Info("PDF reports enabled: %v", a.config.EnablePDFReport)

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), router)
}
