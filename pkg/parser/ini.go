package parser

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	// iniLexer tokenizes configparser style files line by line. Values are
	// never split, so an entry is the whole "key = value" line.
	iniLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `[#;][^\n]*`},
		{Name: "Section", Pattern: `\[[^\]\n]*\]`},
		{Name: "Entry", Pattern: `[^\s\[#;][^\n]*`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	iniParser = participle.MustBuild[INI](
		participle.Lexer(iniLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Map(trimSection, "Section"),
		participle.Map(trimEntry, "Entry"),
	)
)

type (
	// INI is a parsed configparser style file such as alembic.ini.
	INI struct {
		Defaults []string      `parser:"@Entry*"`
		Sections []*INISection `parser:"@@*"`
	}

	// INISection is a [name] header followed by its raw entry lines.
	INISection struct {
		Name  string   `parser:"@Section"`
		Lines []string `parser:"@Entry*"`
	}
)

// ParseINI parses an ini file from reader.
//
// Example:
//
//	ini, err := parser.ParseINI(strings.NewReader("[alembic]\nscript_location = migrations\n"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	loc, _ := ini.Get("alembic", "script_location") // migrations
func ParseINI(reader io.Reader) (*INI, error) {
	ini, err := iniParser.Parse("", reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse ini")
	}

	return ini, nil
}

// Section returns the section called name, or nil.
func (i *INI) Section(name string) *INISection {
	for _, s := range i.Sections {
		if s.Name == name {
			return s
		}
	}

	return nil
}

// Get looks up key in the named section, falling back to the entries that
// appear before the first section header.
func (i *INI) Get(section, key string) (string, bool) {
	if s := i.Section(section); s != nil {
		if v, ok := s.Values()[normalizeKey(key)]; ok {
			return v, true
		}
	}

	v, ok := entries(i.Defaults)[normalizeKey(key)]
	return v, ok
}

// Values returns the section's entries keyed by lower cased key. Lines
// without a separator continue the value of the previous entry.
func (s *INISection) Values() map[string]string {
	return entries(s.Lines)
}

func entries(lines []string) map[string]string {
	out := make(map[string]string, len(lines))

	var last string
	for _, line := range lines {
		idx := strings.IndexAny(line, "=:")
		if idx < 0 {
			if last != "" {
				out[last] = strings.TrimSpace(out[last] + "\n" + line)
			}
			continue
		}

		last = normalizeKey(line[:idx])
		out[last] = strings.TrimSpace(line[idx+1:])
	}

	return out
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func trimSection(t lexer.Token) (lexer.Token, error) {
	t.Value = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(t.Value, "["), "]"))
	return t, nil
}

func trimEntry(t lexer.Token) (lexer.Token, error) {
	t.Value = strings.TrimSpace(t.Value)
	return t, nil
}
