package catalog

import (
	"slices"
)

// Catalog is an immutable, in-memory food table. It is safe for concurrent
// reads; nothing mutates it after New returns. A nil *Catalog behaves as empty.
type Catalog struct {
	foods  []FoodItem
	byDiet map[string][]int
}

// New builds a catalog from foods, normalizing each entry. Source order is kept
// and used as the tie-break order downstream.
func New(foods []FoodItem) *Catalog {
	c := &Catalog{
		foods:  make([]FoodItem, 0, len(foods)),
		byDiet: make(map[string][]int),
	}
	for _, f := range foods {
		f = f.normalize()
		if f.Title == "" {
			continue
		}
		key := dietKey(f.Diet)
		c.byDiet[key] = append(c.byDiet[key], len(c.foods))
		c.foods = append(c.foods, f)
	}
	return c
}

// Empty returns a catalog with no foods.
func Empty() *Catalog {
	return New(nil)
}

// Len is the number of foods in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.foods)
}

// All returns a copy of every food in catalog order.
func (c *Catalog) All() []FoodItem {
	if c == nil {
		return nil
	}
	return slices.Clone(c.foods)
}

// Filter returns the foods tagged with diet (case-insensitive), in catalog order.
func (c *Catalog) Filter(diet string) []FoodItem {
	if c == nil {
		return nil
	}
	idx := c.byDiet[dietKey(diet)]
	out := make([]FoodItem, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.foods[i])
	}
	return out
}

// Diets lists the distinct diet tags present, sorted.
func (c *Catalog) Diets() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var diets []string
	for _, f := range c.foods {
		if _, ok := seen[f.Diet]; ok {
			continue
		}
		seen[f.Diet] = struct{}{}
		diets = append(diets, f.Diet)
	}
	slices.Sort(diets)
	return diets
}
