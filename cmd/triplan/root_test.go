package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestFailedCommandPrintsError: a failing subcommand must leave a
// human-readable message on stderr, not just a non-zero exit.
func TestFailedCommandPrintsError(t *testing.T) {
	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"parse", "/nonexistent/plan.pdf"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for missing input file")
	}
	if !strings.Contains(stderr.String(), "Error:") {
		t.Errorf("stderr = %q, want a printed error", stderr.String())
	}
}
