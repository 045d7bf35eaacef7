package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Report kinds stored in the reports table.
const (
	ReportKindAnalysis   = "analysis"
	ReportKindComparison = "comparison"
	ReportKindTrends     = "trends"
)

// Report is a persisted analysis payload for a domain.
type Report struct {
	ID        uuid.UUID       `json:"id"`
	Domain    string          `json:"domain"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// ReportSummary is a lightweight view of a report for listing
type ReportSummary struct {
	ID        uuid.UUID `json:"id"`
	Domain    string    `json:"domain"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportFilters holds optional filters for listing reports
type ReportFilters struct {
	Domain string
	Kind   string
	Limit  int
}

// SaveReport stores a JSON report for a domain
func (db *DB) SaveReport(ctx context.Context, domain, kind string, payload any) error {
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO reports (domain, kind, payload) VALUES ($1, $2, $3)`,
		domain, kind, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s report: %w", kind, err)
	}
	return nil
}

// LatestReport retrieves the most recent report of a kind for a domain.
// Returns nil without error when no report exists.
func (db *DB) LatestReport(ctx context.Context, domain, kind string) (*Report, error) {
	var report Report
	err := db.pool.QueryRow(ctx,
		`SELECT id, domain, kind, payload, created_at
		 FROM reports WHERE domain = $1 AND kind = $2
		 ORDER BY created_at DESC LIMIT 1`,
		domain, kind,
	).Scan(&report.ID, &report.Domain, &report.Kind, &report.Payload, &report.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s report: %w", kind, err)
	}
	return &report, nil
}

// ListReports retrieves report summaries with optional filters
func (db *DB) ListReports(ctx context.Context, filters ReportFilters) ([]ReportSummary, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, domain, kind, created_at FROM reports WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Domain != "" {
		query += fmt.Sprintf(" AND domain = $%d", argNum)
		args = append(args, filters.Domain)
		argNum++
	}
	if filters.Kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", argNum)
		args = append(args, filters.Kind)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var summaries []ReportSummary
	for rows.Next() {
		var s ReportSummary
		if err := rows.Scan(&s.ID, &s.Domain, &s.Kind, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
