// Package metrics persists per-domain performance series in a local SQLite
// database and simulates current observations for domains without a real
// analytics integration.
package metrics

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/seo-consultant/internal/types"

	_ "modernc.org/sqlite"
)

const timestampLayout = "2006-01-02T15:04:05Z"

// Store wraps the SQLite connection holding performance series.
type Store struct {
	conn *sql.DB
}

// Open creates the database file (and its directory) if needed and ensures
// the schema exists.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metrics database: %w", err)
	}
	if _, err := conn.Exec(createMetricsTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create metrics schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Record appends one row per tracked metric from the sample, with the
// matching detail group serialized as metadata.
func (s *Store) Record(ctx context.Context, sample Sample) error {
	rows := []struct {
		metric string
		value  float64
		detail any
	}{
		{types.MetricAICitations, float64(sample.AICitations.Count), sample.AICitations},
		{types.MetricOrganicSessions, float64(sample.Traffic.Sessions), sample.Traffic},
		{types.MetricAvgPosition, sample.Rankings.AvgPosition, sample.Rankings},
		{types.MetricPageSpeed, float64(sample.Technical.PageSpeedScore), sample.Technical},
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin metrics transaction: %w", err)
	}
	defer tx.Rollback()

	date := sample.ObservedAt.UTC().Format(timestampLayout)
	for _, row := range rows {
		metadata, err := json.Marshal(row.detail)
		if err != nil {
			return fmt.Errorf("failed to encode %s metadata: %w", row.metric, err)
		}
		if _, err := tx.ExecContext(ctx, insertMetric, sample.Domain, date, row.metric, row.value, string(metadata)); err != nil {
			return fmt.Errorf("failed to insert %s: %w", row.metric, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit metrics: %w", err)
	}
	return nil
}

// Series returns the stored history per metric for a domain, oldest first,
// restricted to points at or after since.
func (s *Store) Series(ctx context.Context, domain string, since time.Time) (map[string][]types.MetricPoint, error) {
	rows, err := s.conn.QueryContext(ctx, selectSeries, domain, since.UTC().Format(timestampLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	series := make(map[string][]types.MetricPoint)
	for rows.Next() {
		var metric, date string
		var value float64
		if err := rows.Scan(&metric, &date, &value); err != nil {
			return nil, fmt.Errorf("failed to scan series row: %w", err)
		}
		timestamp, err := parseTimestamp(date)
		if err != nil {
			return nil, err
		}
		series[metric] = append(series[metric], types.MetricPoint{Timestamp: timestamp, Value: value})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read series rows: %w", err)
	}
	return series, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range []string{timestampLayout, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse metric timestamp %q", raw)
}
