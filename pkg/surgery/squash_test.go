package surgery_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/graph"
	"github.com/pseudomuto/alembic-tools/pkg/script"
	. "github.com/pseudomuto/alembic-tools/pkg/surgery"
	"github.com/stretchr/testify/require"
)

type memorySource struct {
	scripts  map[string]*script.Script
	template func(message string, parents []string) (*script.Script, error)
	created  int
}

func newMemorySource() *memorySource {
	gen := script.NewGenerator(
		script.WithIDFunc(func() string { return "0123456789ab" }),
		script.WithClock(func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }),
	)

	return &memorySource{
		scripts:  make(map[string]*script.Script),
		template: gen.Generate,
	}
}

func (m *memorySource) add(id string, parents []string, upgrade, downgrade string) {
	m.scripts[id] = &script.Script{
		ID:      id,
		Parents: parents,
		Path:    id + "_revision.py",
		Source:  []byte(revisionText(id, parents, upgrade, downgrade)),
	}
}

func (m *memorySource) Script(id string) (*script.Script, error) {
	s, ok := m.scripts[id]
	if !ok {
		return nil, errors.Errorf("no script for %s", id)
	}

	return s, nil
}

func (m *memorySource) NewRevision(message string, parents []string) (*script.Script, error) {
	m.created++
	return m.template(message, parents)
}

func (m *memorySource) graph(t *testing.T) *graph.Graph {
	t.Helper()

	entries := make([]graph.Entry, 0, len(m.scripts))
	for _, id := range []string{"aaaa11112222", "bbbb11112222", "cccc11112222", "dddd11112222"} {
		if s, ok := m.scripts[id]; ok {
			entries = append(entries, graph.Entry{ID: s.ID, Parents: s.Parents})
		}
	}

	return buildGraph(t, entries...)
}

func revisionText(id string, parents []string, upgrade, downgrade string) string {
	return fmt.Sprintf(`"""revision %s

Revision ID: %s
Revises: %s
Create Date: 2024-03-01 17:03:22.817200

"""
from alembic import op
import sqlalchemy as sa

revision: str = '%s'
down_revision: Union[str, None] = %s


def upgrade() -> None:
%s


def downgrade() -> None:
%s
`, id, id, strings.Join(parents, ", "), id, script.Literal(parents), upgrade, downgrade)
}

func fixture() *memorySource {
	src := newMemorySource()
	src.add("aaaa11112222", nil, "    op.create_table(\"user\", sa.Column(\"id\", sa.Integer))", "    op.drop_table(\"user\")")
	src.add("bbbb11112222", []string{"aaaa11112222"}, "    op.add_column(\"user\", sa.Column(\"email\", sa.Text()))", "    op.drop_column(\"user\", \"email\")")
	src.add("cccc11112222", []string{"bbbb11112222"}, "    op.create_index(\"ix_email\", \"user\", [\"email\"])", "    op.drop_index(\"ix_email\")")
	src.add("dddd11112222", []string{"cccc11112222"}, "    pass", "    pass")

	return src
}

func TestSquash(t *testing.T) {
	src := fixture()
	g := src.graph(t)

	for _, args := range [][2]string{{"bbbb", "cccc"}, {"cccc", "bbbb"}} {
		plan, err := Squash(g, args[0], args[1], "squash email", src)
		require.NoError(t, err)

		require.Equal(t, "bbbb11112222", plan.From)
		require.Equal(t, "cccc11112222", plan.To)
		require.Equal(t, "cccc11112222", plan.ID)
		require.Equal(t, []string{"aaaa11112222"}, plan.Parents)
		require.Equal(t, "0123456789ab_squash_email.py", plan.TemplatePath)
		require.Equal(t, []string{"bbbb11112222_revision.py", "cccc11112222_revision.py"}, plan.Archive)

		require.Contains(t, plan.Text, "revision: str = 'cccc11112222'\n")
		require.Contains(t, plan.Text, "down_revision: Union[str, None] = 'aaaa11112222'\n")
		require.Contains(t, plan.Text, "Revision ID: cccc11112222\n")
		require.Contains(t, plan.Text, "Revises: aaaa11112222\n")
		require.NotContains(t, plan.Text, "0123456789ab")

		require.Contains(t, plan.Text, `def upgrade() -> None:
<<<<<<< bbbb11112222
    op.add_column("user", sa.Column("email", sa.Text()))
=======
    op.create_index("ix_email", "user", ["email"])
>>>>>>> cccc11112222
`)
		require.Contains(t, plan.Text, `def downgrade() -> None:
<<<<<<< cccc11112222
    op.drop_index("ix_email")
=======
    op.drop_column("user", "email")
>>>>>>> bbbb11112222
`)
	}
}

func TestSquash_Base(t *testing.T) {
	src := fixture()

	plan, err := Squash(src.graph(t), "aaaa", "bbbb", "", src)
	require.NoError(t, err)
	require.Equal(t, "bbbb11112222", plan.ID)
	require.Empty(t, plan.Parents)
	require.Contains(t, plan.Text, "down_revision: Union[str, None] = None\n")
	require.Contains(t, plan.Text, "Revises:\n")
}

func TestSquash_Errors(t *testing.T) {
	t.Run("unconnected", func(t *testing.T) {
		src := fixture()

		_, err := Squash(src.graph(t), "aaaa", "cccc", "", src)
		var unconnected *UnconnectedError
		require.True(t, errors.As(err, &unconnected))
		require.Equal(t, "aaaa11112222", unconnected.First)
		require.Equal(t, []string{"bbbb11112222"}, unconnected.SecondParents)
		require.Contains(t, err.Error(), "aaaa11112222 has down revision None")
		require.Zero(t, src.created)
	})

	t.Run("same revision", func(t *testing.T) {
		src := fixture()

		_, err := Squash(src.graph(t), "bbbb", "bbbb1111", "", src)
		var unconnected *UnconnectedError
		require.True(t, errors.As(err, &unconnected))
	})

	t.Run("unresolved", func(t *testing.T) {
		src := fixture()

		_, err := Squash(src.graph(t), "ffff", "bbbb", "", src)
		var notFound *graph.NotFoundError
		require.True(t, errors.As(err, &notFound))

		_, err = Squash(src.graph(t), "bbbb", "", "", src)
		var ambiguous *graph.AmbiguousError
		require.True(t, errors.As(err, &ambiguous))
		require.Len(t, ambiguous.Candidates, 4)
	})

	t.Run("missing function", func(t *testing.T) {
		src := fixture()
		s := src.scripts["cccc11112222"]
		s.Source = []byte(strings.Replace(string(s.Source), "def downgrade()", "def rollback()", 1))

		_, err := Squash(src.graph(t), "bbbb", "cccc", "", src)
		var format *FormatError
		require.True(t, errors.As(err, &format))
		require.Equal(t, "cccc11112222", format.Revision)
		require.Contains(t, err.Error(), "could not find downgrade function")
		require.Zero(t, src.created)
	})

	t.Run("template without placeholders", func(t *testing.T) {
		for _, fn := range []string{"upgrade", "downgrade"} {
			src := fixture()
			gen := src.template
			src.template = func(message string, parents []string) (*script.Script, error) {
				s, err := gen(message, parents)
				if err != nil {
					return nil, err
				}

				s.Source = []byte(strings.Replace(string(s.Source), "def "+fn+"() -> None:\n    pass", "def "+fn+"() -> None:\n    op.execute('')", 1))
				return s, nil
			}

			_, err := Squash(src.graph(t), "bbbb", "cccc", "", src)
			var format *FormatError
			require.True(t, errors.As(err, &format), fn)
			require.Contains(t, err.Error(), fn+" placeholder")
		}
	})

	t.Run("branching", func(t *testing.T) {
		src := fixture()
		src.add("dddd11112222", []string{"bbbb11112222"}, "    pass", "    pass")

		_, err := Squash(src.graph(t), "bbbb", "cccc", "", src)
		var branching *BranchingError
		require.True(t, errors.As(err, &branching))
		require.Equal(t, "bbbb11112222", branching.Revision)
		require.Equal(t, []string{"cccc11112222", "dddd11112222"}, branching.Related)
	})

	t.Run("merge revision", func(t *testing.T) {
		src := fixture()
		src.add("dddd11112222", []string{"cccc11112222", "aaaa11112222"}, "    pass", "    pass")

		_, err := Squash(src.graph(t), "cccc", "dddd", "", src)
		var branching *BranchingError
		require.True(t, errors.As(err, &branching))
		require.Equal(t, "dddd11112222", branching.Revision)
	})
}
