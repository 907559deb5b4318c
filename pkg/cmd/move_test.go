package cmd

import (
	"path/filepath"
	"testing"

	"github.com/pseudomuto/alembic-tools/pkg/cmd/testutil"
	"github.com/pseudomuto/alembic-tools/pkg/consts"
	"github.com/stretchr/testify/require"
)

func TestMoveCommand(t *testing.T) {
	chain := testutil.Chain("aaaaaaaaaaaa", "bbbbbbbbbbbb", "cccccccccccc", "dddddddddddd")
	fixture := testutil.TestProject(t).WithRevisions(chain...)

	out, err := testutil.RunCommand(t, move(fixture.Project), "cccc", "aaaa")
	require.NoError(t, err)
	require.Contains(t, out, "Rewrote 3 revision(s)")

	testutil.RequireParents(t, fixture.Path(chain[1]), "bbbbbbbbbbbb", "cccccccccccc")
	testutil.RequireParents(t, fixture.Path(chain[2]), "cccccccccccc", "aaaaaaaaaaaa")
	testutil.RequireParents(t, fixture.Path(chain[3]), "dddddddddddd", "bbbbbbbbbbbb")

	movedDir := filepath.Join(fixture.Dir, consts.DefaultMovedDir)
	require.FileExists(t, filepath.Join(movedDir, consts.ArchiveSumFile))
	testutil.RequireParents(t, filepath.Join(movedDir, chain[2].Filename()), "cccccccccccc", "bbbbbbbbbbbb")
}

func TestMoveCommand_DryRun(t *testing.T) {
	chain := testutil.Chain("aaaaaaaaaaaa", "bbbbbbbbbbbb", "cccccccccccc")
	fixture := testutil.TestProject(t).WithRevisions(chain...)

	out, err := testutil.RunCommand(t, move(fixture.Project), "--dry-run", "bbbb", "base")
	require.NoError(t, err)

	require.Contains(t, out, "--- a/alembic/versions/"+chain[0].Filename()+"\n")
	require.Contains(t, out, "+++ b/alembic/versions/"+chain[0].Filename()+"\n")
	require.Contains(t, out, "-down_revision: Union[str, None] = None\n+down_revision: Union[str, None] = 'bbbbbbbbbbbb'\n")
	require.Contains(t, out, "-down_revision: Union[str, None] = 'aaaaaaaaaaaa'\n+down_revision: Union[str, None] = None\n")
	require.Contains(t, out, "-down_revision: Union[str, None] = 'bbbbbbbbbbbb'\n+down_revision: Union[str, None] = 'aaaaaaaaaaaa'\n")

	for _, rev := range chain {
		testutil.RequireParents(t, fixture.Path(rev), rev.ID, rev.Parents...)
	}
	require.NoDirExists(t, filepath.Join(fixture.Dir, consts.DefaultMovedDir))
}

func TestMoveCommand_Errors(t *testing.T) {
	fixture := testutil.TestProject(t).WithRevisions(testutil.Chain("aaaaaaaaaaaa", "bbbbbbbbbbbb", "cccccccccccc")...)

	_, err := testutil.RunCommand(t, move(fixture.Project), "bbbb")
	require.ErrorContains(t, err, "expected 2 argument(s)")

	_, err = testutil.RunCommand(t, move(fixture.Project), "aaaa", "cccc")
	require.ErrorContains(t, err, "moving onto or from the head is not supported")
}
