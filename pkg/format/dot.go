package format

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pseudomuto/alembic-tools/pkg/consts"
	"github.com/pseudomuto/alembic-tools/pkg/graph"
	"github.com/pseudomuto/alembic-tools/pkg/script"
)

// DOTOptions controls the graph DOT renders.
type DOTOptions struct {
	// Horizontal lays the chain out from left to right.
	Horizontal bool
}

// DOT writes g as a graphviz digraph. Every revision is a node labeled with
// its id and message; bases hang off a shared "base" node.
//
// Example:
//
//	var buf bytes.Buffer
//	if err := format.DOT(&buf, revs.Graph, revs.Dir, format.DOTOptions{}); err != nil {
//		return err
//	}
//
//	// dot -Tpng -o alembic_graph.png
func DOT(w io.Writer, g *graph.Graph, dir *script.Dir, opts DOTOptions) error {
	lines := []string{"digraph revisions {"}
	if opts.Horizontal {
		lines = append(lines, "  rankdir=LR;")
	}
	lines = append(lines, "  node [shape=Msquare];")

	order := graph.Order(g)
	for _, id := range order {
		label := id
		if s, ok := dir.Script(id); ok && s.Message != "" {
			label += "\n" + s.Message
		}

		lines = append(lines, fmt.Sprintf("  %s [label=%s];", strconv.Quote(id), strconv.Quote(label)))
	}

	for _, id := range order {
		parents := g.Parents(id)
		if len(parents) == 0 {
			parents = []string{consts.BaseRevision}
		}

		for _, parent := range parents {
			lines = append(lines, fmt.Sprintf("  %s -> %s;", strconv.Quote(parent), strconv.Quote(id)))
		}
	}

	lines = append(lines, "}")

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}
