package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ImportHTML extracts food rows from the first <table> whose header row names
// the catalog columns. Header cells are matched like CSV headers, so column
// order is free. Rows that fail to parse are skipped and counted.
func ImportHTML(r io.Reader) ([]FoodItem, int, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse html: %w", err)
	}

	var (
		foods   []FoodItem
		skipped int
		found   bool
		lastErr error
	)

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		if rows.Length() == 0 {
			return true
		}

		header := cellTexts(rows.First())
		index, err := columnIndex(normalizeHeader(header))
		if err != nil {
			lastErr = err
			return true
		}

		found = true
		rows.Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
			cells := cellTexts(row)
			if len(cells) == 0 {
				return
			}
			food, err := rowToFood(index, cells)
			if err != nil {
				skipped++
				return
			}
			foods = append(foods, food)
		})
		return false
	})

	if !found {
		if lastErr != nil {
			return nil, 0, lastErr
		}
		return nil, 0, fmt.Errorf("%w: no table found", ErrMalformedSource)
	}
	return foods, skipped, nil
}

// FetchHTML downloads url and imports its food table.
func FetchHTML(ctx context.Context, url string) ([]FoodItem, int, error) {
	client := &http.Client{Timeout: 15 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	return ImportHTML(resp.Body)
}

func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(cell.Text()))
	})
	return cells
}

// normalizeHeader maps human headers like "GI Index" or "Protein (g)" onto
// catalog column names.
func normalizeHeader(header []string) []string {
	aliases := map[string]string{
		"food":        "title",
		"name":        "title",
		"kcal":        "calories",
		"protein":     "protein_g",
		"protein_(g)": "protein_g",
		"fiber":       "fiber_g",
		"fibre":       "fiber_g",
		"fiber_(g)":   "fiber_g",
		"carbs":       "carbs_g",
		"gi":          "gi_index",
		"weight":      "weight_g",
		"weight_(g)":  "weight_g",
		"diet":        "diet_type",
		"risk_level":  "risk",
	}
	out := make([]string, len(header))
	for i, h := range header {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		if alias, ok := aliases[key]; ok {
			key = alias
		}
		out[i] = key
	}
	return out
}
