package api

import (
	"github.com/gin-gonic/gin"

	"diet-planner/internal/app"
	"diet-planner/internal/logger"
)

type RouterConfig struct {
	App            *app.App
	Log            *logger.Logger
	DataPath       string
	JWTSecret      string
	AllowedOrigins []string

	// WebhookPath and Webhook mount the Telegram update endpoint when both are set.
	WebhookPath string
	Webhook     gin.HandlerFunc
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.NewNop()
	}
	h := NewHandler(cfg.App, log, cfg.DataPath)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(CORS(cfg.AllowedOrigins))

	r.GET("/api/health", h.Health)

	if cfg.WebhookPath != "" && cfg.Webhook != nil {
		r.POST(cfg.WebhookPath, cfg.Webhook)
	}

	protected := r.Group("/api")
	if cfg.JWTSecret != "" {
		protected.Use(RequireToken(cfg.JWTSecret))
	}
	{
		protected.GET("/foods", h.Foods)
		protected.POST("/predict", h.Predict)
		protected.POST("/meal-plan", h.MealPlan)
		protected.POST("/recommendations", h.Recommendations)
	}

	return r
}
