package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReportKindConstants(t *testing.T) {
	// Verify report kind constants are defined
	kinds := []string{
		ReportKindAnalysis,
		ReportKindComparison,
		ReportKindTrends,
	}

	for _, kind := range kinds {
		assert.NotEmpty(t, kind, "report kind constant should not be empty")
	}
}

func TestSessionSummaryType(t *testing.T) {
	// Verify SessionSummary struct can be instantiated
	summary := SessionSummary{
		ID:           uuid.New(),
		UserID:       "alice",
		Website:      "https://example.com",
		MessageCount: 4,
		UpdatedAt:    time.Now(),
	}

	assert.Equal(t, "alice", summary.UserID)
	assert.Equal(t, 4, summary.MessageCount)
	assert.NotEqual(t, uuid.Nil, summary.ID)
}

func TestReportFilters_Defaults(t *testing.T) {
	filters := ReportFilters{}

	assert.Empty(t, filters.Domain)
	assert.Empty(t, filters.Kind)
	assert.Zero(t, filters.Limit)
}
