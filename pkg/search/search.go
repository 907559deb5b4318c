package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pseudomuto/alembic-tools/pkg/analyzer"
	"github.com/pseudomuto/alembic-tools/pkg/graph"
)

type (
	// Finder describes what a revision does to the object being searched for.
	// An empty result means the revision does not touch it.
	Finder func(rev *analyzer.Revision) []string

	// Analyzed pairs a revision id with the analysis of its script.
	Analyzed struct {
		ID       string
		Revision *analyzer.Revision
	}

	// Hit is a revision with at least one finding.
	Hit struct {
		Revision string
		Findings []string

		// Rank is the revision's position in the topological order of the
		// chain.
		Rank int

		// Latest is set on the highest ranked hit.
		Latest bool
	}
)

// ForTable returns a Finder reporting on the table named name.
func ForTable(name string) Finder {
	return func(rev *analyzer.Revision) []string { return Table(name, rev) }
}

// ForReplaceable returns a Finder reporting on the replaceable entity named
// name.
func ForReplaceable(name string) Finder {
	return func(rev *analyzer.Revision) []string { return Replaceable(name, rev) }
}

// Table describes what rev does to the table named name.
//
// Creating and dropping the table are reported in statement order, followed
// by one summary each for added columns, dropped columns, created indexes,
// foreign keys from or to the table, and altered columns.
func Table(name string, rev *analyzer.Revision) []string {
	var (
		out                         []string
		added, dropped, altered, fk []string
		indexes                     int
	)

	for _, stmt := range rev.Statements {
		switch s := stmt.(type) {
		case analyzer.CreateTable:
			if s.Table == name {
				out = append(out, "created")
			}
		case analyzer.DropTable:
			if s.Table == name {
				out = append(out, "dropped")
			}
		case analyzer.AddColumn:
			if s.Table == name {
				added = append(added, s.Column)
			}
		case analyzer.DropColumn:
			if s.Table == name {
				dropped = append(dropped, s.Column)
			}
		case analyzer.AlterColumn:
			if s.Table == name {
				altered = append(altered, s.Column)
			}
		case analyzer.CreateIndex:
			if s.Table == name {
				indexes++
			}
		case analyzer.CreateForeignKey:
			switch name {
			case s.Table:
				fk = append(fk, s.Referent)
			case s.Referent:
				fk = append(fk, s.Table)
			}
		}
	}

	if len(added) > 0 {
		out = append(out, fmt.Sprintf("%s %s added", plural("column", len(added)), strings.Join(added, ", ")))
	}

	if len(dropped) > 0 {
		out = append(out, fmt.Sprintf("%s %s dropped", plural("column", len(dropped)), strings.Join(dropped, ", ")))
	}

	if indexes > 0 {
		noun := "index"
		if indexes > 1 {
			noun = "indexes"
		}

		out = append(out, fmt.Sprintf("%d %s created", indexes, noun))
	}

	if len(fk) > 0 {
		out = append(out, fmt.Sprintf("Created %s to %s", plural("FK", len(fk)), strings.Join(fk, ", ")))
	}

	if len(altered) > 0 {
		out = append(out, fmt.Sprintf("%s %s altered", plural("Column", len(altered)), strings.Join(altered, ", ")))
	}

	return out
}

// Replaceable describes what rev does to the replaceable entity named name,
// one finding per statement.
func Replaceable(name string, rev *analyzer.Revision) []string {
	var out []string
	for _, stmt := range rev.Statements {
		s, ok := stmt.(analyzer.Replaceable)
		if !ok || s.Name != name {
			continue
		}

		switch s.Op {
		case analyzer.OpCreate:
			out = append(out, "Created")
		case analyzer.OpDrop:
			out = append(out, "Dropped")
		case analyzer.OpReplace:
			replaces := s.Replaces
			if replaces == "" {
				replaces = "(unknown)"
			}

			out = append(out, "Replaced "+replaces)
		}
	}

	return out
}

// Collect runs find over every analyzed revision and returns the hits ordered
// from the earliest to the latest revision of g.
func Collect(g *graph.Graph, find Finder, revisions []Analyzed) []Hit {
	ranks := graph.Ranks(g)

	hits := make([]Hit, 0, len(revisions))
	for _, rev := range revisions {
		findings := find(rev.Revision)
		if len(findings) == 0 {
			continue
		}

		rank, ok := ranks[rev.ID]
		if !ok {
			rank = -1
		}

		hits = append(hits, Hit{Revision: rev.ID, Findings: findings, Rank: rank})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Rank < hits[j].Rank })

	if n := len(hits); n > 0 {
		hits[n-1].Latest = true
	}

	return hits
}

// Text joins the hit's findings.
func (h Hit) Text() string {
	return strings.Join(h.Findings, ", ")
}

// String renders the hit as "<revision> <findings>", marking the latest hit.
func (h Hit) String() string {
	s := h.Revision + " " + h.Text()
	if h.Latest {
		s += " (latest)"
	}

	return s
}

func plural(noun string, n int) string {
	if n > 1 {
		return noun + "s"
	}

	return noun
}
