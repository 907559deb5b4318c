package parser_test

import (
	"testing"

	. "github.com/pseudomuto/alembic-tools/pkg/parser"
	"github.com/stretchr/testify/require"
)

func TestParsePointer(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    []string
	}{
		{name: "none", literal: "None", want: []string{}},
		{name: "double quoted", literal: `"a38df1d1f70f"`, want: []string{"a38df1d1f70f"}},
		{name: "single quoted", literal: `'70421ef63b0d'`, want: []string{"70421ef63b0d"}},
		{name: "tuple", literal: `("a", 'b')`, want: []string{"a", "b"}},
		{name: "single element tuple", literal: `("a",)`, want: []string{"a"}},
		{name: "list", literal: `[ "a", "b", ]`, want: []string{"a", "b"}},
		{name: "empty tuple", literal: `()`, want: []string{}},
		{name: "surrounding space", literal: "  None \n", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePointer(tt.literal)
			require.NoError(t, err)
			require.Equal(t, tt.want, p.IDs())
		})
	}
}

func TestParsePointer_Invalid(t *testing.T) {
	for _, literal := range []string{
		"",
		"revision_id",
		`f"{rev}"`,
		`("a", "b"]`,
		`"a" + "b"`,
	} {
		t.Run(literal, func(t *testing.T) {
			_, err := ParsePointer(literal)
			require.Error(t, err)
		})
	}
}
