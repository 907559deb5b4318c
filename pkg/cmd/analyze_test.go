package cmd

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/cmd/testutil"
	"github.com/pseudomuto/alembic-tools/pkg/graph"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCommand(t *testing.T) {
	fixture := testutil.TestProject(t).WithRevisions(testutil.Chain("1975ea83b712", "ae1027a6acf0")...)

	t.Run("single revision", func(t *testing.T) {
		out, err := testutil.RunCommand(t, analyze(fixture.Project), "ae10")
		require.NoError(t, err)
		require.Equal(t, "Revision: ae1027a6acf0\n  1. create table t_ae1027a6acf0 (id)\n", out)
	})

	t.Run("every revision", func(t *testing.T) {
		out, err := testutil.RunCommand(t, analyze(fixture.Project))
		require.NoError(t, err)
		require.Equal(t, "Revision: 1975ea83b712\n  1. create table t_1975ea83b712 (id)\n"+
			"Revision: ae1027a6acf0\n  1. create table t_ae1027a6acf0 (id)\n", out)
	})

	t.Run("unknown revision", func(t *testing.T) {
		_, err := testutil.RunCommand(t, analyze(fixture.Project), "ffff")

		var notFound *graph.NotFoundError
		require.True(t, errors.As(err, &notFound))
	})

	t.Run("too many arguments", func(t *testing.T) {
		_, err := testutil.RunCommand(t, analyze(fixture.Project), "1975", "ae10")
		require.ErrorContains(t, err, "at most one revision")
	})
}

func TestAnalyzeCommand_ConfiguredHandles(t *testing.T) {
	rev := testutil.Revision{
		ID:      "1975ea83b712",
		Message: "create user",
		Upgrade: []string{
			`alembic_op.create_table("user", sqla.Column("id", sqla.Integer))`,
			`op.drop_table("post")`,
		},
	}

	fixture := testutil.TestProject(t).
		WithConfig("handles:\n  operations: alembic_op\n  schema: sqla\n").
		WithRevisions(rev)

	out, err := testutil.RunCommand(t, analyze(fixture.Project), "1975")
	require.NoError(t, err)
	require.Equal(t, "Revision: 1975ea83b712\n  1. create table user (id)\n  2. unknown statement\n", out)
}
