package script

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/pysource"
)

var revisesLine = regexp.MustCompile(`(?m)^Revises:[ \t]*[^\n]*`)

// SetParent rewrites the down_revision of a script so that it points at
// parents, returning the new source. The literal is replaced in place using
// its position in the syntax tree, which keeps any type annotation intact,
// and the "Revises:" line of the module docstring is updated to match.
//
// Example:
//
//	src, err = script.SetParent(src, []string{"70421ef63b0d"})
func SetParent(src []byte, parents []string) ([]byte, error) {
	file, err := pysource.Parse(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse script")
	}

	assign := file.Assignment(downRevisionVar)
	if assign == nil || assign.Right == nil {
		return nil, errors.Errorf("script has no %s assignment", downRevisionVar)
	}

	var out strings.Builder
	out.Grow(len(src) + 32)

	doc := file.Docstring()
	if doc != nil && doc.End <= assign.Right.Start {
		out.Write(src[:doc.Start])
		out.WriteString(revisesLine.ReplaceAllLiteralString(
			string(src[doc.Start:doc.End]),
			strings.TrimRight("Revises: "+strings.Join(parents, ", "), " "),
		))
		out.Write(src[doc.End:assign.Right.Start])
	} else {
		out.Write(src[:assign.Right.Start])
	}

	out.WriteString(Literal(parents))
	out.Write(src[assign.Right.End:])

	return []byte(out.String()), nil
}

// Literal renders ids the way alembic writes a down_revision: None, a quoted
// id or a tuple of quoted ids.
func Literal(ids []string) string {
	switch len(ids) {
	case 0:
		return "None"
	case 1:
		return quote(ids[0])
	}

	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = quote(id)
	}

	return "(" + strings.Join(quoted, ", ") + ")"
}

func quote(id string) string {
	return "'" + id + "'"
}
