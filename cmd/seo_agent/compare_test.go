package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareCommand_MissingCompetitors(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "compare", "https://example.com")
	cmd.Dir = t.TempDir()
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "at least one competitor is required")
}

func TestCompareCommand_AgainstLocalSites(t *testing.T) {
	binaryPath := getBinaryPath(t)
	site := serveSite(t)
	competitor := serveSite(t)

	cmd := exec.Command(binaryPath, "compare", site.URL, "--competitors", competitor.URL)
	cmd.Dir = t.TempDir()
	cmd.Env = scrubEnv("GEMINI_API_KEY", "DATABASE_URL")

	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, string(output), "Compared")
	assert.Contains(t, string(output), "against 1 competitors")
	assert.Contains(t, string(output), "AI readiness:")
}
