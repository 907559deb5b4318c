package cmd

import (
	"path/filepath"
	"testing"

	"github.com/pseudomuto/alembic-tools/pkg/cmd/testutil"
	"github.com/pseudomuto/alembic-tools/pkg/consts"
	"github.com/stretchr/testify/require"
)

func TestSquashCommand(t *testing.T) {
	chain := testutil.Chain("aaaaaaaaaaaa", "bbbbbbbbbbbb", "cccccccccccc")
	fixture := testutil.TestProject(t).WithRevisions(chain...)

	out, err := testutil.RunCommand(t, squash(fixture.Project), "-m", "combined tables", "cccc", "bbbb")
	require.NoError(t, err)

	path := filepath.Join(fixture.VersionsDir(), "cccccccccccc_combined_tables.py")
	require.Contains(t, out, "Squashed bbbbbbbbbbbb into cccccccccccc: "+path+"\n")
	require.Contains(t, out, "alembic-tools stamp --from bbbbbbbbbbbb --to cccccccccccc\n")

	testutil.RequireFileExists(t, path,
		testutil.RequireFileContains(t, "\"\"\"combined tables\n"),
		testutil.RequireFileContains(t, "revision: str = 'cccccccccccc'\n"),
		testutil.RequireFileContains(t, "down_revision: Union[str, None] = 'aaaaaaaaaaaa'\n"),
		testutil.RequireFileContains(t, "=======\n"),
	)

	require.NoFileExists(t, fixture.Path(chain[1]))
	require.NoFileExists(t, fixture.Path(chain[2]))

	squashedDir := filepath.Join(fixture.Dir, consts.DefaultSquashedDir)
	require.FileExists(t, filepath.Join(squashedDir, chain[1].Filename()))
	require.FileExists(t, filepath.Join(squashedDir, chain[2].Filename()))

	revs, err := fixture.Project.Load()
	require.NoError(t, err)
	require.Equal(t, 2, revs.Graph.Len())
}

func TestSquashCommand_Errors(t *testing.T) {
	fixture := testutil.TestProject(t).WithRevisions(testutil.Chain("aaaaaaaaaaaa", "bbbbbbbbbbbb", "cccccccccccc")...)

	_, err := testutil.RunCommand(t, squash(fixture.Project), "aaaa")
	require.ErrorContains(t, err, "expected 2 argument(s)")

	_, err = testutil.RunCommand(t, squash(fixture.Project), "aaaa", "cccc")
	require.ErrorContains(t, err, "has down revision")
}
