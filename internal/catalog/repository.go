package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"diet-planner/internal/risk"
)

// Repository is a SQLite-backed catalog source.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// ReplaceAll swaps the stored catalog for foods in a single transaction.
func (r *Repository) ReplaceAll(ctx context.Context, foods []FoodItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM foods`); err != nil {
		return fmt.Errorf("failed to clear foods: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO foods (title, icon, calories, protein_g, carbs_g, fiber_g, gi_index, weight_g, risk, diet_type, region, benefit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range foods {
		f = f.normalize()
		if _, err := stmt.ExecContext(ctx,
			f.Title, f.Icon, f.Calories, f.Protein, f.Carbs, f.Fiber, f.GI, f.WeightG,
			string(f.Risk), f.Diet, f.Region, f.Benefit,
		); err != nil {
			return fmt.Errorf("failed to insert food %s: %w", f.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit foods: %w", err)
	}
	return nil
}

// Foods returns every stored food in insertion order.
func (r *Repository) Foods(ctx context.Context) ([]FoodItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT title, icon, calories, protein_g, carbs_g, fiber_g, gi_index, weight_g, risk, diet_type, region, benefit
		FROM foods ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	defer rows.Close()

	var foods []FoodItem
	for rows.Next() {
		var f FoodItem
		var level string
		if err := rows.Scan(
			&f.Title, &f.Icon, &f.Calories, &f.Protein, &f.Carbs, &f.Fiber, &f.GI, &f.WeightG,
			&level, &f.Diet, &f.Region, &f.Benefit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		f.Risk = risk.Level(level)
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate foods: %w", err)
	}
	return foods, nil
}

// Count returns the number of stored foods.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM foods`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count foods: %w", err)
	}
	return n, nil
}
