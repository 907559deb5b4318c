package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/alembic-tools/pkg/cmd/testutil"
	"github.com/stretchr/testify/require"
)

func TestGraphCommand(t *testing.T) {
	fixture := testutil.TestProject(t).WithRevisions(testutil.Chain("1975ea83b712", "ae1027a6acf0")...)

	want := `digraph revisions {
  node [shape=Msquare];
  "1975ea83b712" [label="1975ea83b712\nrevision 1975ea83b712"];
  "ae1027a6acf0" [label="ae1027a6acf0\nrevision ae1027a6acf0"];
  "base" -> "1975ea83b712";
  "1975ea83b712" -> "ae1027a6acf0";
}
`

	t.Run("stdout", func(t *testing.T) {
		out, err := testutil.RunCommand(t, graphCmd(fixture.Project))
		require.NoError(t, err)
		require.Equal(t, want, out)
	})

	t.Run("horizontal", func(t *testing.T) {
		out, err := testutil.RunCommand(t, graphCmd(fixture.Project), "--horizontal")
		require.NoError(t, err)
		require.Contains(t, out, "digraph revisions {\n  rankdir=LR;\n")
	})

	t.Run("output file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "revisions.dot")

		out, err := testutil.RunCommand(t, graphCmd(fixture.Project), "--output", path)
		require.NoError(t, err)
		require.Equal(t, "Wrote 2 revision(s) to "+path+"\n", out)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, want, string(content))
	})
}
