package catalog

import (
	"context"
	"errors"
	"fmt"

	"diet-planner/internal/logger"
)

// ErrCatalogUnavailable wraps any failure to read a catalog source.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Load reads src once and builds the catalog. It never fails: an unreadable or
// malformed source is logged and yields an empty catalog, so every downstream
// lookup degrades to empty results.
func Load(ctx context.Context, src Source, log *logger.Logger) *Catalog {
	foods, skipped, err := readSource(ctx, src)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		log.Warn("Catalog source could not be loaded, continuing with an empty catalog", "error", err)
		return Empty()
	}

	if skipped > 0 {
		log.Warn("Catalog rows skipped", "skipped", skipped, "kept", len(foods))
	}

	c := New(foods)
	if c.Len() == 0 {
		log.Warn("Catalog source contained no foods")
		return c
	}
	log.Info("Catalog loaded", "foods", c.Len(), "diets", c.Diets())
	return c
}

func readSource(ctx context.Context, src Source) ([]FoodItem, int, error) {
	if rs, ok := src.(RowSource); ok {
		return rs.Rows(ctx)
	}
	foods, err := src.Foods(ctx)
	return foods, 0, err
}
