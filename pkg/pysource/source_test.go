package pysource_test

import (
	"testing"

	. "github.com/pseudomuto/alembic-tools/pkg/pysource"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const script = `"""add users

Revision ID: a38df1d1f70f
Revises: 70421ef63b0d
"""

from alembic import op
import sqlalchemy as sa

revision: str = "a38df1d1f70f"
down_revision: Union[str, None] = '70421ef63b0d'


def upgrade() -> None:
    # create the table
    op.create_table(
        "user",
        sa.Column("user_id", sa.Integer, primary_key=True),
    )
    x = 1
    pass


def downgrade() -> None:
    op.drop_table("user")
`

func TestParse(t *testing.T) {
	file, err := Parse([]byte(script))
	require.NoError(t, err)
	require.Equal(t, KindModule, file.Root.Kind)

	fn := file.Function("upgrade")
	require.NotNil(t, fn)
	require.Equal(t, KindFunction, fn.Kind)
	require.Len(t, fn.Body, 3)
	require.Equal(t, KindExprStmt, fn.Body[0].Kind)
	require.Equal(t, KindAssignStmt, fn.Body[1].Kind)
	require.Equal(t, KindOther, fn.Body[2].Kind)

	require.Nil(t, file.Function("missing"))
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse([]byte("def upgrade(:\n    pass\n"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrSyntax))
}

func TestCallShape(t *testing.T) {
	file, err := Parse([]byte(script))
	require.NoError(t, err)

	stmt := file.Function("upgrade").Body[0]
	call := stmt.Children[0]
	require.Equal(t, KindCall, call.Kind)
	require.Equal(t, KindAttribute, call.Func.Kind)
	require.Equal(t, "create_table", call.Func.Name)
	require.Equal(t, "op", call.Func.Receiver.Name)
	require.Len(t, call.Args, 2)
	require.True(t, call.Arg(0).IsStringLiteral())
	require.Equal(t, "user", call.Arg(0).Value)
	require.Nil(t, call.Arg(5))

	column := call.Arg(1)
	require.Equal(t, KindCall, column.Kind)
	require.NotNil(t, column.Keyword("primary_key"))
	require.Nil(t, column.Keyword("nullable"))
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		value   string
		literal bool
	}{
		{name: "double", src: `"abc"`, value: "abc", literal: true},
		{name: "single", src: `'abc'`, value: "abc", literal: true},
		{name: "escapes", src: `"a\tb\"c"`, value: "a\tb\"c", literal: true},
		{name: "raw", src: `r"a\tb"`, value: `a\tb`, literal: true},
		{name: "triple", src: `"""doc"""`, value: "doc", literal: true},
		{name: "concatenated", src: `"ab" 'cd'`, value: "abcd", literal: true},
		{name: "fstring", src: `f"a{b}"`, literal: false},
		{name: "bytes", src: `b"abc"`, literal: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := Parse([]byte("x = " + tt.src + "\n"))
			require.NoError(t, err)

			assign := file.Assignment("x")
			require.NotNil(t, assign)
			require.Equal(t, KindString, assign.Right.Kind)
			require.Equal(t, tt.literal, assign.Right.Literal)
			if tt.literal {
				require.Equal(t, tt.value, assign.Right.Value)
			}
		})
	}
}

func TestAssignments(t *testing.T) {
	file, err := Parse([]byte(script))
	require.NoError(t, err)

	require.Len(t, file.Assignments(), 2)

	rev := file.Assignment("revision")
	require.NotNil(t, rev)
	require.Equal(t, "a38df1d1f70f", rev.Right.Value)

	down := file.Assignment("down_revision")
	require.NotNil(t, down)
	require.Equal(t, `'70421ef63b0d'`, file.Text(down.Right))
}

func TestDocstring(t *testing.T) {
	file, err := Parse([]byte(script))
	require.NoError(t, err)

	doc := file.Docstring()
	require.NotNil(t, doc)
	require.Contains(t, doc.Value, "Revision ID: a38df1d1f70f")

	file, err = Parse([]byte("x = 1\n"))
	require.NoError(t, err)
	require.Nil(t, file.Docstring())
}

func TestFunctionText(t *testing.T) {
	file, err := Parse([]byte(script))
	require.NoError(t, err)

	text, ok := file.FunctionText("downgrade")
	require.True(t, ok)
	require.Equal(t, "def downgrade() -> None:\n    op.drop_table(\"user\")", text)

	body, ok := file.FunctionBody("downgrade")
	require.True(t, ok)
	require.Equal(t, "\n    op.drop_table(\"user\")", body)

	_, ok = file.FunctionBody("nope")
	require.False(t, ok)
}

func TestWalk_StopsEarly(t *testing.T) {
	file, err := Parse([]byte(script))
	require.NoError(t, err)

	visited := 0
	Walk(file.Root, func(n *Node) bool {
		visited++
		return n.Kind != KindFunction
	})

	require.Positive(t, visited)
	require.Equal(t, "function", KindFunction.String())
}
