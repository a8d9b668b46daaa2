package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"diet-planner/internal/api"
	"diet-planner/internal/app"
	"diet-planner/internal/config"
	"diet-planner/internal/logger"
	"diet-planner/internal/telegram"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	if cfg.Env == "prod" || cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// 2. Database, catalog and planner
	rt, err := app.Bootstrap(ctx, cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to start", "error", err)
	}
	defer rt.Close()

	routerCfg := api.RouterConfig{
		App:            rt.App,
		Log:            appLog,
		DataPath:       filepath.Dir(cfg.DatabasePath),
		JWTSecret:      cfg.APIJWTSecret,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}

	// 3. Telegram Bot
	if cfg.TelegramEnabled() {
		bot, err := telegram.NewBot(cfg, rt.App, rt.Metrics, appLog)
		if err != nil {
			appLog.Fatal("Failed to initialize Telegram Bot", "error", err)
		}
		routerCfg.WebhookPath = telegram.WebhookPath(cfg.TelegramWebhookURL)
		routerCfg.Webhook = bot.WebhookHandler()
	}

	// 4. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(routerCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("Diet API listening", "port", cfg.Port, "advice", rt.App.AdviceEnabled(), "telegram", cfg.TelegramEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		appLog.Error("Server forced to shutdown", "error", err)
	}

	appLog.Info("Server exiting")
}
