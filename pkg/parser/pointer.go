package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	pointerLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `'[^'\\\n]*'|"[^"\\\n]*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Punct", Pattern: `[(),\[\]]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	pointerParser = participle.MustBuild[Pointer](
		participle.Lexer(pointerLexer),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
	)
)

type (
	// Pointer is the value assigned to a revision pointer such as revision or
	// down_revision: None, a single id, or a tuple/list of ids.
	Pointer struct {
		None   bool        `parser:"  @'None'"`
		Single *string     `parser:"| @String"`
		Many   *IDSequence `parser:"| @@"`
	}

	// IDSequence is a parenthesized or bracketed sequence of ids.
	IDSequence struct {
		Open  string   `parser:"@( '(' | '[' )"`
		IDs   []string `parser:"( @String ( ',' @String )* ','? )?"`
		Close string   `parser:"@( ')' | ']' )"`
	}
)

// ParsePointer parses the literal assigned to a revision pointer.
//
// Example:
//
//	p, err := parser.ParsePointer(`("a38df1d1f70f", "70421ef63b0d")`)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	p.IDs() // [a38df1d1f70f 70421ef63b0d]
func ParsePointer(literal string) (*Pointer, error) {
	p, err := pointerParser.ParseString("", strings.TrimSpace(literal))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse revision pointer %q", literal)
	}

	if !p.None && p.Single == nil && p.Many == nil {
		return nil, errors.Errorf("empty revision pointer %q", literal)
	}

	if p.Many != nil && (p.Many.Open == "(") != (p.Many.Close == ")") {
		return nil, errors.Errorf("mismatched brackets in revision pointer %q", literal)
	}

	return p, nil
}

// IDs returns the ids the pointer references. None yields an empty slice.
func (p *Pointer) IDs() []string {
	switch {
	case p.Single != nil:
		return []string{*p.Single}
	case p.Many != nil:
		return append([]string{}, p.Many.IDs...)
	default:
		return []string{}
	}
}
