package testutil

import (
	"os"
	"testing"

	"github.com/pseudomuto/alembic-tools/pkg/script"
	"github.com/stretchr/testify/require"
)

// RequireFileExists asserts that a file exists and optionally checks its content
func RequireFileExists(t *testing.T, path string, checks ...func(content string)) {
	t.Helper()

	require.FileExists(t, path, "File should exist: %s", path)

	if len(checks) > 0 {
		content, err := os.ReadFile(path)
		require.NoError(t, err, "Failed to read file: %s", path)

		contentStr := string(content)
		for _, check := range checks {
			check(contentStr)
		}
	}
}

// RequireFileContains returns a check function that verifies file contains text
func RequireFileContains(t *testing.T, expected string) func(string) {
	return func(content string) {
		require.Contains(t, content, expected, "File should contain: %s", expected)
	}
}

// RequireFileNotContains returns a check function that verifies file doesn't contain text
func RequireFileNotContains(t *testing.T, unexpected string) func(string) {
	return func(content string) {
		require.NotContains(t, content, unexpected, "File should not contain: %s", unexpected)
	}
}

// RequireParents asserts that the script at path declares id with the given
// down revisions.
func RequireParents(t *testing.T, path, id string, parents ...string) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "Failed to read file: %s", path)

	s, err := script.Parse(path, content)
	require.NoError(t, err, "Script should parse: %s", path)
	require.Equal(t, id, s.ID)

	if parents == nil {
		parents = []string{}
	}
	require.Equal(t, parents, s.Parents)
}
