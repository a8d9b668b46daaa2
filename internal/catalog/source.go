package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"diet-planner/internal/risk"
)

//go:embed data/foods.csv
var embeddedFoods []byte

// Columns is the tabular layout of a catalog source, in canonical order.
var Columns = []string{
	"title", "icon", "calories", "protein_g", "fiber_g", "gi_index",
	"weight_g", "risk", "diet_type", "region", "benefit",
}

var requiredColumns = []string{"title", "calories", "protein_g", "fiber_g", "gi_index", "risk", "diet_type"}

// ErrMalformedSource is returned when a source is missing required columns.
var ErrMalformedSource = errors.New("malformed catalog source")

// Source yields the raw food rows of a catalog.
type Source interface {
	Foods(ctx context.Context) ([]FoodItem, error)
}

// RowSource is a Source that also reports how many rows it had to skip.
type RowSource interface {
	Source
	Rows(ctx context.Context) (foods []FoodItem, skipped int, err error)
}

// CSVSource reads foods from a CSV file on disk.
type CSVSource struct {
	Path string
}

func (s CSVSource) Foods(ctx context.Context) ([]FoodItem, error) {
	foods, _, err := s.Rows(ctx)
	return foods, err
}

func (s CSVSource) Rows(ctx context.Context) ([]FoodItem, int, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open catalog file %s: %w", s.Path, err)
	}
	defer f.Close()

	return ParseCSV(f)
}

// EmbeddedSource reads the built-in food dataset.
type EmbeddedSource struct{}

func (s EmbeddedSource) Foods(ctx context.Context) ([]FoodItem, error) {
	foods, _, err := s.Rows(ctx)
	return foods, err
}

func (EmbeddedSource) Rows(ctx context.Context) ([]FoodItem, int, error) {
	return ParseCSV(bytes.NewReader(embeddedFoods))
}

// ParseCSV reads a header-led CSV. Columns are matched by name, so order is free
// and unknown columns are ignored. Rows with bad numbers or an empty title are
// skipped and counted.
func ParseCSV(r io.Reader) ([]FoodItem, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to read header: %v", ErrMalformedSource, err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, 0, err
	}

	var foods []FoodItem
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrMalformedSource, err)
		}

		food, err := rowToFood(index, record)
		if err != nil {
			skipped++
			continue
		}
		foods = append(foods, food)
	}
	return foods, skipped, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrMalformedSource, strings.Join(missing, ", "))
	}
	return index, nil
}

func rowToFood(index map[string]int, record []string) (FoodItem, error) {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	num := func(col string) (float64, error) {
		raw := get(col)
		if raw == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("column %s: invalid number %q", col, raw)
		}
		return v, nil
	}

	title := get("title")
	if title == "" {
		return FoodItem{}, fmt.Errorf("empty title")
	}

	food := FoodItem{
		Title:   title,
		Icon:    get("icon"),
		Risk:    risk.Level(get("risk")),
		Diet:    get("diet_type"),
		Region:  get("region"),
		Benefit: get("benefit"),
	}

	var err error
	if food.Calories, err = num("calories"); err != nil {
		return FoodItem{}, err
	}
	if food.Protein, err = num("protein_g"); err != nil {
		return FoodItem{}, err
	}
	if food.Carbs, err = num("carbs_g"); err != nil {
		return FoodItem{}, err
	}
	if food.Fiber, err = num("fiber_g"); err != nil {
		return FoodItem{}, err
	}
	if food.WeightG, err = num("weight_g"); err != nil {
		return FoodItem{}, err
	}
	gi, err := num("gi_index")
	if err != nil {
		return FoodItem{}, err
	}
	food.GI = int(math.Round(math.Min(math.Max(gi, 0), 100)))

	return food.normalize(), nil
}

// WriteCSV writes foods in the canonical column layout.
func WriteCSV(w io.Writer, foods []FoodItem) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(append(slices.Clone(Columns), "carbs_g")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, f := range foods {
		record := []string{
			f.Title,
			f.Icon,
			formatNumber(f.Calories),
			formatNumber(f.Protein),
			formatNumber(f.Fiber),
			strconv.Itoa(f.GI),
			formatNumber(f.WeightG),
			string(f.Risk),
			f.Diet,
			f.Region,
			f.Benefit,
			formatNumber(f.Carbs),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", f.Title, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
