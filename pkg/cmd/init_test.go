package cmd

import (
	"path/filepath"
	"testing"

	"github.com/pseudomuto/alembic-tools/pkg/cmd/testutil"
	"github.com/pseudomuto/alembic-tools/pkg/consts"
	"github.com/pseudomuto/alembic-tools/pkg/project"
	"github.com/stretchr/testify/require"
)

func TestInitCommand(t *testing.T) {
	tmpDir := t.TempDir()

	out, err := testutil.RunCommand(t, initCmd(project.New(tmpDir, nil)))
	require.NoError(t, err)
	require.Contains(t, out, "Initialized alembic-tools.yaml")
	require.Contains(t, out, filepath.Join(tmpDir, "alembic", "versions"))

	testutil.RequireFileExists(t, filepath.Join(tmpDir, consts.ConfigFile),
		testutil.RequireFileContains(t, "handles:"),
	)
}

func TestInitCommand_KeepsExistingConfig(t *testing.T) {
	fixture := testutil.TestProject(t).WithConfig("handles:\n  operations: alembic_op\n")

	_, err := testutil.RunCommand(t, initCmd(fixture.Project))
	require.NoError(t, err)

	testutil.RequireFileExists(t, fixture.ConfigPath(),
		testutil.RequireFileContains(t, "operations: alembic_op"),
		testutil.RequireFileNotContains(t, "archive:"),
	)
	require.Equal(t, "alembic_op", fixture.Project.Config().Handles.Operations)
}
