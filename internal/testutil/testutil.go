// Package testutil provides shared test utilities for envdoctor tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/envdoctor/envdoctor/internal/constants"
	"github.com/envdoctor/envdoctor/internal/rules"
)

// SetupTestRules points the rules loader at a temporary config directory
// containing the given rules document. Returns a cleanup function that
// should be deferred. An empty document means embedded defaults are used.
func SetupTestRules(t *testing.T, rulesContent string) func() {
	t.Helper()

	tmpDir := t.TempDir()
	os.Setenv(constants.EnvConfigDir, tmpDir)

	if rulesContent != "" {
		path := filepath.Join(tmpDir, constants.RulesFileName)
		if err := os.WriteFile(path, []byte(rulesContent), constants.FileMode); err != nil {
			t.Fatal(err)
		}
	}

	rules.Reset()
	rules.Init()

	return func() {
		os.Unsetenv(constants.EnvConfigDir)
		rules.Reset()
	}
}

// MinimalTestRules is a minimal ruleset for testing.
const MinimalTestRules = `
[[allow.exact]]
name = "safe"
commands = ["git status", "echo hello"]

[[deny.simple]]
name = "dangerous"
commands = ["rm"]
`
