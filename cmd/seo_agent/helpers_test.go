package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// getBinaryPath returns the path to the seo_agent binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "seo_agent"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/seo_agent ./cmd/seo_agent'", binaryPath)
	}

	// Commands run with a temp working directory, so the path must survive
	// the chdir.
	absPath, err := filepath.Abs(binaryPath)
	if err != nil {
		t.Fatalf("failed to resolve binary path: %v", err)
	}
	return absPath
}

// scrubEnv returns the current environment without the named variables, so
// tests behave the same regardless of local credentials.
func scrubEnv(names ...string) []string {
	var env []string
	for _, entry := range os.Environ() {
		keep := true
		for _, name := range names {
			if strings.HasPrefix(entry, name+"=") {
				keep = false
				break
			}
		}
		if keep {
			env = append(env, entry)
		}
	}
	return env
}
