package surgery

import (
	"github.com/pseudomuto/alembic-tools/pkg/consts"
	"github.com/pseudomuto/alembic-tools/pkg/graph"
)

// Edit is one parent pointer rewrite. An empty Parent makes the revision a
// base.
type Edit struct {
	Revision string
	Parent   string
}

// Parents returns the edit's new parent list.
func (e Edit) Parents() []string {
	if e.Parent == "" {
		return nil
	}

	return []string{e.Parent}
}

// Move computes the rewrites that relocate revision so that it follows after,
// closing the gap it leaves behind. Both arguments may be id prefixes; after
// may also be "base" to make revision the first of the chain.
//
// With P the current parent of revision, X the revision currently following
// after and Y the revision currently following revision, the edits are, in
// the order they must be applied:
//
//  1. X now follows revision
//  2. revision now follows after
//  3. Y now follows P
//
// Every revision involved must have a single parent and each gap a single
// child, otherwise a *BranchingError is returned. Moving onto the head of the
// chain, or moving the head itself, leaves nothing to relink on one side and
// is rejected with a *graph.IntegrityError, as is moving a revision to where
// it already is.
//
// Example:
//
//	// A <- B <- C <- D  becomes  A <- C <- B <- D
//	edits, err := surgery.Move(g, "C", "A")
func Move(g *graph.Graph, revision, after string) ([]Edit, error) {
	rev, err := graph.Resolve(g, revision)
	if err != nil {
		return nil, err
	}

	dest := ""
	if after != consts.BaseRevision {
		if dest, err = graph.Resolve(g, after); err != nil {
			return nil, err
		}
	}

	if dest == rev {
		return nil, &graph.IntegrityError{IDs: []string{rev}, Reason: "cannot move a revision after itself"}
	}

	origin, err := soleParent(g, rev)
	if err != nil {
		return nil, err
	}

	if origin == dest {
		return nil, &graph.IntegrityError{IDs: []string{rev}, Reason: "revision is already positioned there"}
	}

	x, err := soleChild(g, dest)
	if err != nil {
		return nil, err
	}

	y, err := soleChild(g, rev)
	if err != nil {
		return nil, err
	}

	for _, id := range []string{x, y} {
		if _, err := soleParent(g, id); err != nil {
			return nil, err
		}
	}

	return []Edit{
		{Revision: x, Parent: rev},
		{Revision: rev, Parent: dest},
		{Revision: y, Parent: origin},
	}, nil
}

func soleParent(g *graph.Graph, id string) (string, error) {
	parents := g.Parents(id)
	switch len(parents) {
	case 0:
		return "", nil
	case 1:
		return parents[0], nil
	default:
		return "", &BranchingError{Revision: id, Related: parents, Reason: "has multiple parents"}
	}
}

func soleChild(g *graph.Graph, id string) (string, error) {
	children := g.ChildrenOf(id)
	switch len(children) {
	case 0:
		name := id
		if name == "" {
			name = consts.BaseRevision
		}

		return "", &graph.IntegrityError{
			IDs:    []string{name},
			Reason: "no revision points back to this one, moving onto or from the head is not supported",
		}
	case 1:
		return children[0], nil
	default:
		name := id
		if name == "" {
			name = consts.BaseRevision
		}

		return "", &BranchingError{Revision: name, Related: children, Reason: "has multiple children"}
	}
}
