package project

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/analyzer"
	"github.com/pseudomuto/alembic-tools/pkg/consts"
	"github.com/pseudomuto/alembic-tools/pkg/graph"
	"github.com/pseudomuto/alembic-tools/pkg/script"
	"github.com/pseudomuto/alembic-tools/pkg/search"
	"github.com/pseudomuto/alembic-tools/pkg/surgery"
)

type (
	// Revisions is a snapshot of a project's versions directory and the
	// revision graph built from it.
	Revisions struct {
		Dir   *script.Dir
		Graph *graph.Graph

		versions  string
		generator *script.Generator
	}

	// Change is the rewrite of one script.
	Change struct {
		Revision string
		Path     string
		Before   []byte
		After    []byte
	}
)

// VersionsDir returns the directory the scripts were loaded from.
func (r *Revisions) VersionsDir() string { return r.versions }

// Script returns the script declaring id.
func (r *Revisions) Script(id string) (*script.Script, error) {
	s, ok := r.Dir.Script(id)
	if !ok {
		return nil, errors.Errorf("no script declares revision %s", id)
	}

	return s, nil
}

// Path returns the location of s on disk.
func (r *Revisions) Path(s *script.Script) string {
	return filepath.Join(r.versions, filepath.FromSlash(s.Path))
}

// NewRevision renders, without writing, an empty revision with the given
// message and parents.
func (r *Revisions) NewRevision(message string, parents []string) (*script.Script, error) {
	return r.generator.Generate(message, parents)
}

// Analyze runs a over the upgrade function of every script, in directory
// order.
func (r *Revisions) Analyze(a *analyzer.Analyzer) ([]search.Analyzed, error) {
	out := make([]search.Analyzed, 0, len(r.Dir.Scripts))
	for _, s := range r.Dir.Scripts {
		rev, err := a.Analyze(s.Source)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to analyze %s", s.Path)
		}

		out = append(out, search.Analyzed{ID: s.ID, Revision: rev})
	}

	return out, nil
}

// PlanEdits computes the script rewrites for edits without touching the disk.
// Edits to the same revision are applied in order to the same text.
func (r *Revisions) PlanEdits(edits []surgery.Edit) ([]Change, error) {
	var changes []Change
	index := make(map[string]int)

	for _, edit := range edits {
		s, err := r.Script(edit.Revision)
		if err != nil {
			return nil, err
		}

		i, ok := index[s.ID]
		if !ok {
			i = len(changes)
			index[s.ID] = i
			changes = append(changes, Change{Revision: s.ID, Path: r.Path(s), Before: s.Source, After: s.Source})
		}

		after, err := script.SetParent(changes[i].After, edit.Parents())
		if err != nil {
			return nil, errors.Wrapf(err, "failed to rewrite %s", s.Path)
		}

		changes[i].After = after
	}

	return changes, nil
}

// ApplyChanges backs every changed script up into archive, then writes the
// new text in place.
func (r *Revisions) ApplyChanges(changes []Change, archive *script.Archive) error {
	for _, c := range changes {
		backup, err := archive.Copy(c.Path)
		if err != nil {
			return err
		}

		if err := os.WriteFile(c.Path, c.After, consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write %s", c.Path)
		}

		slog.Info("Rewrote revision", "revision", c.Revision, "path", c.Path, "backup", backup)
	}

	return nil
}

// ApplySquash archives the scripts a squash replaces and writes the squashed
// revision, returning its path. The file is named after the squashed id and
// the slug of the plan's template, as alembic would have named it.
func (r *Revisions) ApplySquash(plan *surgery.SquashPlan, archive *script.Archive) (string, error) {
	name := filepath.Base(plan.TemplatePath)
	if i := strings.Index(name, "_"); i >= 0 {
		name = name[i+1:]
	}

	path := filepath.Join(r.versions, plan.ID+"_"+name)

	for _, old := range plan.Archive {
		dest, err := archive.Move(filepath.Join(r.versions, filepath.FromSlash(old)))
		if err != nil {
			return "", err
		}

		slog.Info("Archived revision", "path", old, "archive", dest)
	}

	if err := os.WriteFile(path, []byte(plan.Text), consts.ModeFile); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}

	return path, nil
}
