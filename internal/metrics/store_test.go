package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"diet-planner/internal/llm"

	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE plan_metrics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			operation TEXT NOT NULL, risk_level TEXT NOT NULL, diet_type TEXT NOT NULL,
			items INTEGER NOT NULL, latency_ms INTEGER NOT NULL,
			model TEXT NOT NULL DEFAULT '', prompt_tokens INTEGER NOT NULL DEFAULT 0,
			completion_tokens INTEGER NOT NULL DEFAULT 0, timestamp DATETIME NOT NULL
		);
	`)
	if err != nil {
		t.Fatal(err)
	}
	store := NewStore(db)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	now := time.Now()

	metrics := []PlanMetric{
		{Operation: OperationMealPlan, RiskLevel: "High", DietType: "Vegetarian", Items: 7, LatencyMS: 10, Timestamp: now},
		PlanMetric{Operation: OperationMealPlan, RiskLevel: "Low", DietType: "Vegetarian", Items: 7, LatencyMS: 30, Timestamp: now}.
			WithUsage(llm.TokenUsage{PromptTokens: 100, CompletionTokens: 40, Model: "gemini"}),
		{Operation: OperationRecommendation, RiskLevel: "Low", DietType: "Non-Vegetarian", Items: 10, LatencyMS: 5, Timestamp: now.AddDate(0, 0, -40)},
	}
	for _, m := range metrics {
		if err := store.Record(ctx, m); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	t.Run("daily usage", func(t *testing.T) {
		usage, err := store.GetDailyUsage(ctx, 7)
		if err != nil {
			t.Fatalf("GetDailyUsage failed: %v", err)
		}
		if len(usage) != 1 {
			t.Fatalf("expected 1 day of usage, got %d", len(usage))
		}
		u := usage[0]
		if u.Date != now.UTC().Format("2006-01-02") {
			t.Errorf("date = %q", u.Date)
		}
		if u.Requests != 2 || u.TotalItems != 14 {
			t.Errorf("unexpected totals %+v", u)
		}
		if u.TotalPrompt != 100 || u.TotalCompletion != 40 {
			t.Errorf("unexpected tokens %+v", u)
		}
		if u.AvgLatencyMS != 20 {
			t.Errorf("avg latency = %v, want 20", u.AvgLatencyMS)
		}
	})

	t.Run("cleanup", func(t *testing.T) {
		removed, err := store.Cleanup(ctx, 30)
		if err != nil {
			t.Fatalf("Cleanup failed: %v", err)
		}
		if removed != 1 {
			t.Errorf("removed %d rows, want 1", removed)
		}
		usage, err := store.GetDailyUsage(ctx, 365)
		if err != nil {
			t.Fatal(err)
		}
		if len(usage) != 1 {
			t.Errorf("expected only today's usage to remain, got %d days", len(usage))
		}
	})
}

func TestGetSysHealth(t *testing.T) {
	h := GetSysHealth(t.TempDir())
	if h.Goroutines <= 0 {
		t.Errorf("expected goroutines > 0, got %d", h.Goroutines)
	}
	if h.DataDiskSize != "0 B" {
		t.Errorf("expected empty dir size, got %q", h.DataDiskSize)
	}
}

func TestDataDiskSize(t *testing.T) {
	tests := []struct {
		name  string
		files []int
		want  string
	}{
		{"bytes", []int{512}, "512 B"},
		{"kibibytes", []int{1024, 1024}, "2.0 KiB"},
		{"mebibytes", []int{5 * 1024 * 1024}, "5.0 MiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for i, size := range tt.files {
				path := filepath.Join(dir, fmt.Sprintf("part-%d.bin", i))
				if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
					t.Fatal(err)
				}
			}
			if got := GetSysHealth(dir).DataDiskSize; got != tt.want {
				t.Errorf("DataDiskSize = %q, want %q", got, tt.want)
			}
		})
	}
}
