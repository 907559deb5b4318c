package script

import (
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/graph"
)

// Dir is the set of scripts found in a versions directory.
type Dir struct {
	// Scripts are sorted by path.
	Scripts []*Script

	byID map[string]*Script
}

// LoadDir loads every revision script from fsys.
//
// Python files are discovered with fs.WalkDir, which yields them in lexical
// order. Package markers (__init__.py), byte code caches and hidden
// directories are skipped; any other python file must declare a revision.
//
// Example:
//
//	dir, err := script.LoadDir(os.DirFS("alembic/versions"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	g, err := dir.Graph()
func LoadDir(fsys fs.FS) (*Dir, error) {
	dir := &Dir{byID: make(map[string]*Script)}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if p != "." && (d.Name() == "__pycache__" || strings.HasPrefix(d.Name(), ".")) {
				return fs.SkipDir
			}

			return nil
		}

		if path.Ext(p) != ".py" || d.Name() == "__init__.py" {
			return nil
		}

		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			return errors.Wrapf(err, "failed to read script: %s", p)
		}

		s, err := Parse(p, src)
		if err != nil {
			return err
		}

		if other, ok := dir.byID[s.ID]; ok {
			return errors.Errorf("revision %s is declared by both %s and %s", s.ID, other.Path, s.Path)
		}

		dir.byID[s.ID] = s
		dir.Scripts = append(dir.Scripts, s)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load versions directory")
	}

	return dir, nil
}

// Script returns the script declaring id.
func (d *Dir) Script(id string) (*Script, bool) {
	s, ok := d.byID[id]
	return s, ok
}

// Entries converts the scripts into the revision graph feed.
func (d *Dir) Entries() []graph.Entry {
	entries := make([]graph.Entry, len(d.Scripts))
	for i, s := range d.Scripts {
		entries[i] = graph.Entry{ID: s.ID, Parents: s.Parents}
	}

	return entries
}

// Graph builds the revision graph for the directory.
func (d *Dir) Graph() (*graph.Graph, error) {
	return graph.Build(d.Entries())
}
