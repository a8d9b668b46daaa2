package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"diet-planner/internal/llm"
)

const timestampLayout = "2006-01-02 15:04:05"

// Operation names recorded with each metric.
const (
	OperationMealPlan       = "meal_plan"
	OperationRecommendation = "recommendation"
	OperationPrediction     = "prediction"
)

// PlanMetric records metadata for a single planning request.
type PlanMetric struct {
	Operation        string
	RiskLevel        string
	DietType         string
	Items            int
	LatencyMS        int64
	Model            string
	PromptTokens     int
	CompletionTokens int
	Timestamp        time.Time
}

// WithUsage copies the advice token usage into the metric.
func (m PlanMetric) WithUsage(usage llm.TokenUsage) PlanMetric {
	m.Model = usage.Model
	m.PromptTokens = usage.PromptTokens
	m.CompletionTokens = usage.CompletionTokens
	return m
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m PlanMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO plan_metrics (operation, risk_level, diet_type, items, latency_ms, model, prompt_tokens, completion_tokens, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Operation, m.RiskLevel, m.DietType, m.Items, m.LatencyMS,
		m.Model, m.PromptTokens, m.CompletionTokens, ts.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record metric: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DailyUsage represents request and token totals for a single day.
type DailyUsage struct {
	Date            string
	Requests        int
	TotalItems      int
	TotalPrompt     int
	TotalCompletion int
	AvgLatencyMS    float64
}

// GetDailyUsage retrieves usage for the last N days, most recent first.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days).Format(timestampLayout)
	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(timestamp, 1, 10) AS day,
		       COUNT(*),
		       COALESCE(SUM(items), 0),
		       COALESCE(SUM(prompt_tokens), 0),
		       COALESCE(SUM(completion_tokens), 0),
		       COALESCE(AVG(latency_ms), 0)
		FROM plan_metrics
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Date, &u.Requests, &u.TotalItems, &u.TotalPrompt, &u.TotalCompletion, &u.AvgLatencyMS); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage: %w", err)
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays).Format(timestampLayout)
	res, err := s.db.ExecContext(ctx, `DELETE FROM plan_metrics WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up metrics: %w", err)
	}
	return res.RowsAffected()
}
