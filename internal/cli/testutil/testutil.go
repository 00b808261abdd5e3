// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

// ExecuteCommand runs a cobra command with the given arguments and returns
// captured stdout and stderr.
func ExecuteCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// WriteStatementFile writes a statement description into a temp directory
// and returns its path.
func WriteStatementFile(t *testing.T, doc string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "statement.yaml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("failed to write statement file: %v", err)
	}
	return path
}
