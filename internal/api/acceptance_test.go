package api

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"diet-planner/internal/app"
	"diet-planner/internal/catalog"
	"diet-planner/internal/config"
	"diet-planner/internal/database"
	"diet-planner/internal/logger"
	"diet-planner/internal/planner"
)

// Seeds the SQLite catalog, boots the service from config and serves a plan
// and a prediction over HTTP, checking that both requests are recorded.
func TestSQLiteCatalogEndToEnd(t *testing.T) {
	ctx := context.Background()
	gin.SetMode(gin.TestMode)
	dbPath := filepath.Join(t.TempDir(), "diet.db")

	db, err := database.NewDB(dbPath, logger.NewNop())
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	seedFoods := []catalog.FoodItem{
		{Title: "Besan Cheela", Calories: 190, Protein: 10.2, Fiber: 3.9, GI: 35, WeightG: 120, Risk: "Low", Diet: "Vegetarian"},
		{Title: "Palak Paneer", Calories: 280, Protein: 14, Fiber: 3.2, GI: 32, WeightG: 250, Risk: "Low", Diet: "Vegetarian"},
		{Title: "Roasted Chana", Calories: 120, Protein: 6.7, Fiber: 5, GI: 28, WeightG: 30, Risk: "Low", Diet: "Vegetarian"},
	}
	if err := catalog.NewRepository(db.SQL).ReplaceAll(ctx, seedFoods); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}
	db.Close()

	cfg := &config.Config{CatalogSource: config.CatalogSQLite, DatabasePath: dbPath, DefaultDiet: "Vegetarian"}
	rt, err := app.Bootstrap(ctx, cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	defer rt.Close()

	r := NewRouter(RouterConfig{App: rt.App, DataPath: filepath.Dir(dbPath)})

	rec := doJSON(r, http.MethodPost, "/api/meal-plan", map[string]any{"risk": "High"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var plan planner.DailyPlan
	if err := json.Unmarshal(rec.Body.Bytes(), &plan); err != nil {
		t.Fatal(err)
	}
	// Every food has GI < 60; Roasted Chana outscores Besan Cheela for the snack on fibre.
	if got := len(plan.Meals["breakfast"]); got != 2 {
		t.Errorf("breakfast has %d items, want 2", got)
	}
	if snack := plan.Meals["snack"]; len(snack) != 1 || snack[0].Title != "Roasted Chana" {
		t.Errorf("unexpected snack %+v", snack)
	}

	rec = doJSON(r, http.MethodPost, "/api/predict", map[string]any{
		"pregnancies": 1, "glucose": 150, "bloodPressure": 72, "skinThickness": 25,
		"insulin": 100, "bmi": 31, "diabetesPedigreeFunction": 0.4, "age": 45,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	usage, err := rt.Metrics.GetDailyUsage(ctx, 1)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	if len(usage) != 1 || usage[0].Requests != 2 {
		t.Errorf("expected 2 recorded requests, got %+v", usage)
	}
}
