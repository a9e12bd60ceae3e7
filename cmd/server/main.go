package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alvesarel/shapeplan/config"
	"github.com/alvesarel/shapeplan/internal/ai"
	"github.com/alvesarel/shapeplan/internal/mealplan"
	"github.com/alvesarel/shapeplan/internal/server"
	"github.com/alvesarel/shapeplan/internal/vision"
	"github.com/alvesarel/shapeplan/pkg/logger"
)

func main() {
	l := logger.New()
	l.Info("Starting shapeplan server...")

	cfg, err := config.Load()
	if err != nil {
		l.Fatal("Failed to load config", err)
	}

	if cfg.AI.APIKey == "" {
		l.Fatal("AI gateway API key is not configured")
	}

	client := ai.NewClient(cfg.AI.APIKey).
		WithBaseURL(cfg.AI.BaseURL).
		WithTimeout(cfg.AI.RequestTimeout)

	analyzer := vision.NewAnalyzer(client, cfg.AI.VisionModel, l)
	generator := mealplan.NewGenerator(client, cfg.AI.PlannerModel, l)

	handlers := server.NewHandlers(analyzer, generator, client, cfg.AI.ChatModel, l)
	httpServer := server.NewServer(cfg.Server.Port, cfg.Server.AllowedOrigins, handlers, l)

	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("Failed to start HTTP server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		l.Error("Error during HTTP server shutdown", err)
	}

	l.Info("Server stopped")
}
