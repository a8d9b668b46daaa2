package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"diet-planner/internal/app"
	"diet-planner/internal/catalog"
	"diet-planner/internal/logger"
	"diet-planner/internal/metrics"
	"diet-planner/internal/planner"
	"diet-planner/internal/risk"
)

// Handler serves the planning API.
type Handler struct {
	app      *app.App
	log      *logger.Logger
	dataPath string
}

func NewHandler(a *app.App, log *logger.Logger, dataPath string) *Handler {
	return &Handler{app: a, log: log.With("component", "api"), dataPath: dataPath}
}

type healthResponse struct {
	Status        string            `json:"status"`
	Foods         int               `json:"foods"`
	Diets         []string          `json:"diets"`
	Model         string            `json:"model"`
	AdviceEnabled bool              `json:"advice_enabled"`
	System        metrics.SysHealth `json:"system"`
}

func (h *Handler) Health(c *gin.Context) {
	cat := h.app.Planner().Catalog()
	status := "healthy"
	if cat.Len() == 0 {
		status = "degraded"
	}
	RespondOK(c, healthResponse{
		Status:        status,
		Foods:         cat.Len(),
		Diets:         cat.Diets(),
		Model:         h.app.PredictorName(),
		AdviceEnabled: h.app.AdviceEnabled(),
		System:        metrics.GetSysHealth(h.dataPath),
	})
}

type foodsResponse struct {
	Diet  string             `json:"diet,omitempty"`
	Count int                `json:"count"`
	Foods []catalog.FoodItem `json:"foods"`
}

func (h *Handler) Foods(c *gin.Context) {
	cat := h.app.Planner().Catalog()
	diet := c.Query("diet")

	foods := cat.All()
	if diet != "" {
		foods = cat.Filter(diet)
	}
	if foods == nil {
		foods = []catalog.FoodItem{}
	}
	RespondOK(c, foodsResponse{Diet: diet, Count: len(foods), Foods: foods})
}

func (h *Handler) Predict(c *gin.Context) {
	var req risk.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.app.Predict(c.Request.Context(), req, c.Query("diet"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *Handler) MealPlan(c *gin.Context) {
	var req app.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	plan, err := h.app.MealPlan(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	RespondOK(c, plan)
}

type recommendationsResponse struct {
	Count           int                  `json:"count"`
	Recommendations []planner.FoodRecord `json:"recommendations"`
}

func (h *Handler) Recommendations(c *gin.Context) {
	var req app.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	recs, err := h.app.Recommend(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	if recs == nil {
		recs = []planner.FoodRecord{}
	}
	RespondOK(c, recommendationsResponse{Count: len(recs), Recommendations: recs})
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	if errors.Is(err, app.ErrInvalidRequest) {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	h.log.Error("request failed", "path", c.FullPath(), "request_id", c.GetString("request_id"), "error", err)
	RespondError(c, http.StatusInternalServerError, "internal", errors.New("request failed"))
}
