package script

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/parser"
	"github.com/pseudomuto/alembic-tools/pkg/pysource"
)

const (
	revisionVar     = "revision"
	downRevisionVar = "down_revision"
)

// ErrNotRevision is returned when a python file does not declare a revision.
var ErrNotRevision = errors.New("not a revision script")

// Script is a single migration script: its identity, where it lives and its
// raw source.
type Script struct {
	// ID is the value assigned to `revision`.
	ID string

	// Parents are the ids assigned to `down_revision`. Empty for a base.
	Parents []string

	// Message is the first line of the module docstring.
	Message string

	// Path is the slash separated path of the script inside its versions
	// directory.
	Path string

	// Source is the full text of the script.
	Source []byte
}

// Parse reads the revision metadata out of a script's source.
//
// The revision and down_revision module assignments are located through the
// python syntax tree and their literal values are parsed with the revision
// pointer grammar, so both plain and annotated assignments are understood.
//
// Example:
//
//	s, err := script.Parse("a38df1d1f70f_add_post.py", src)
//	if err != nil {
//		return err
//	}
//
//	fmt.Println(s.ID, s.Parents, s.Message)
func Parse(path string, src []byte) (*Script, error) {
	file, err := pysource.Parse(src)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	return fromFile(path, file)
}

func fromFile(path string, file *pysource.File) (*Script, error) {
	rev, err := pointer(file, revisionVar)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid script %s", path)
	}

	if rev == nil {
		return nil, errors.Wrapf(ErrNotRevision, "%s has no %s assignment", path, revisionVar)
	}

	ids := rev.IDs()
	if len(ids) != 1 {
		return nil, errors.Errorf("%s: %s must be a single id", path, revisionVar)
	}

	s := &Script{
		ID:      ids[0],
		Parents: []string{},
		Path:    path,
		Source:  file.Source,
		Message: message(file),
	}

	down, err := pointer(file, downRevisionVar)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid script %s", path)
	}

	if down != nil {
		s.Parents = down.IDs()
	}

	return s, nil
}

// Slug is the file name of the script without the revision id prefix and
// extension.
func (s *Script) Slug() string {
	name := s.Path[strings.LastIndex(s.Path, "/")+1:]
	name = strings.TrimSuffix(name, ".py")
	if _, slug, ok := strings.Cut(name, "_"); ok {
		return slug
	}

	return ""
}

func pointer(file *pysource.File, name string) (*parser.Pointer, error) {
	assign := file.Assignment(name)
	if assign == nil {
		return nil, nil
	}

	if assign.Right == nil {
		return nil, errors.Errorf("%s has no value", name)
	}

	return parser.ParsePointer(file.Text(assign.Right))
}

func message(file *pysource.File) string {
	doc := file.Docstring()
	if doc == nil {
		return ""
	}

	first, _, _ := strings.Cut(strings.TrimSpace(doc.Value), "\n")
	return strings.TrimSpace(first)
}
