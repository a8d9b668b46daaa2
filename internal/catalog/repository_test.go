package catalog

import (
	"context"
	"database/sql"
	"testing"

	"diet-planner/internal/logger"

	_ "modernc.org/sqlite"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()

	// Setup In-Memory DB
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE foods (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL, icon TEXT NOT NULL DEFAULT '',
			calories REAL NOT NULL, protein_g REAL NOT NULL, carbs_g REAL NOT NULL DEFAULT 0,
			fiber_g REAL NOT NULL, gi_index INTEGER NOT NULL, weight_g REAL NOT NULL DEFAULT 0,
			risk TEXT NOT NULL, diet_type TEXT NOT NULL,
			region TEXT NOT NULL DEFAULT '', benefit TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		t.Fatal(err)
	}

	repo := NewRepository(db)
	foods, err := EmbeddedSource{}.Foods(ctx)
	if err != nil {
		t.Fatalf("Failed to read embedded foods: %v", err)
	}

	t.Run("ReplaceAll", func(t *testing.T) {
		if err := repo.ReplaceAll(ctx, foods); err != nil {
			t.Fatalf("ReplaceAll failed: %v", err)
		}
		// A second replace must not duplicate rows.
		if err := repo.ReplaceAll(ctx, foods); err != nil {
			t.Fatalf("ReplaceAll failed: %v", err)
		}
		n, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != len(foods) {
			t.Errorf("Expected %d foods, got %d", len(foods), n)
		}
	})

	t.Run("LoadFromRepository", func(t *testing.T) {
		c := Load(ctx, repo, logger.NewNop())
		if c.Len() != len(foods) {
			t.Fatalf("Expected %d foods, got %d", len(foods), c.Len())
		}
		if c.All()[0] != foods[0] {
			t.Errorf("Expected first food to round-trip, got %+v", c.All()[0])
		}
	})
}
