package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"DrishtiGPT-Learning-Backend/internal/api"
	"DrishtiGPT-Learning-Backend/internal/client"
	"DrishtiGPT-Learning-Backend/internal/config"
	"DrishtiGPT-Learning-Backend/internal/logger"
	"DrishtiGPT-Learning-Backend/internal/repository"
	"DrishtiGPT-Learning-Backend/internal/router"
	"DrishtiGPT-Learning-Backend/internal/service"

	"github.com/fatih/color"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %s", err)
	}
	cfg, err := config.Load()
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			color.Red("configuration error: %s", cfgErr)
		}
		log.Fatalf("failed to load configuration: %s", err)
	}

	appLogger := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	videoRepo, err := repository.NewVideoRepository(cfg.Videos.CatalogPath, appLogger)
	if err != nil {
		appLogger.Fatalf("failed to load video catalog: %s", err)
	}
	go func() {
		if err := videoRepo.Watch(ctx); err != nil {
			appLogger.WithError(err).Warn("[Videos] catalog hot reload disabled")
		}
	}()

	idle := time.Duration(cfg.Session.IdleMinutes) * time.Minute
	sessionRepo := repository.NewSessionRepository(idle, appLogger)
	go sessionRepo.RunJanitor(ctx, idle/4+time.Second)

	chatClient := client.NewChatApiClient(cfg.ChatAPI.BaseURL, cfg.ChatAPI.APIKey, cfg.ChatAPI.User, cfg.ChatAPI.TimeoutSeconds, appLogger)
	assistantService := service.NewAssistantService(chatClient, videoRepo, cfg.Doubt.WidgetURL, appLogger)
	assistantHandler := api.NewAssistantHandler(assistantService, sessionRepo, appLogger)

	r := router.SetupRouter(assistantHandler, sessionRepo, cfg.CORS.AllowedOrigins)

	color.New(color.FgCyan, color.Bold).Printf("DrishtiGPT learning assistant listening on http://localhost%s\n", cfg.Server.Port)
	color.New(color.FgHiBlack).Printf("chat API: %s (timeout %ds)\n", cfg.ChatAPI.BaseURL, cfg.ChatAPI.TimeoutSeconds)
	if err := r.Run(cfg.Server.Port); err != nil {
		appLogger.Fatalf("server failed: %s", err)
	}
}
