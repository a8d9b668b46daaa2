package app

import (
	"context"
	"database/sql"
	"fmt"

	"diet-planner/internal/catalog"
	"diet-planner/internal/config"
	"diet-planner/internal/database"
	"diet-planner/internal/llm"
	"diet-planner/internal/logger"
	"diet-planner/internal/metrics"
	"diet-planner/internal/planner"
	"diet-planner/internal/risk"
)

// Runtime holds the long-lived resources built from configuration.
type Runtime struct {
	App     *App
	DB      *database.DB
	Metrics *metrics.Store
	gemini  *llm.GeminiClient
}

// Bootstrap opens the database, loads the catalog and wires the App.
// A Gemini client that cannot be created disables advice instead of failing.
func Bootstrap(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Runtime, error) {
	db, err := database.NewDB(cfg.DatabasePath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rt := &Runtime{DB: db, Metrics: metrics.NewStore(db.SQL)}

	cat := catalog.Load(ctx, CatalogSource(cfg, db.SQL), log)
	mealPlanner := planner.NewPlanner(cat, cfg.DefaultDiet)

	var advisor *planner.Advisor
	if cfg.AdviceEnabled() {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn("plan advice disabled", "error", err)
		} else {
			rt.gemini = gemini
			advisor = planner.NewAdvisor(gemini)
		}
	}

	rt.App = NewApp(mealPlanner, risk.NewHeuristicPredictor(), advisor, rt.Metrics, log)
	return rt, nil
}

// Close releases the runtime's clients and database.
func (r *Runtime) Close() error {
	if r.gemini != nil {
		_ = r.gemini.Close()
	}
	return r.DB.Close()
}

// CatalogSource picks the food source named by cfg.CatalogSource.
func CatalogSource(cfg *config.Config, db *sql.DB) catalog.Source {
	switch cfg.CatalogSource {
	case config.CatalogCSV:
		return catalog.CSVSource{Path: cfg.CatalogPath}
	case config.CatalogSQLite:
		return catalog.NewRepository(db)
	default:
		return catalog.EmbeddedSource{}
	}
}
