package graph

import (
	"slices"
)

type (
	// Entry is one record of the revision feed: a revision id and the ids of
	// its parents (its down revisions). A revision without parents is a base.
	Entry struct {
		ID      string
		Parents []string
	}

	// Graph is an immutable view of a revision chain. Children are derived from
	// the parent pointers on demand.
	Graph struct {
		ids     []string
		parents map[string][]string
	}
)

// Build constructs a Graph from the revision feed.
//
// Parent lists are normalized: nil becomes empty and repeated parents are
// collapsed, keeping the first occurrence. Feed order is preserved and used
// to break ties wherever the graph is iterated.
//
// Duplicate ids, empty ids, self-loops and parent cycles are reported as an
// *IntegrityError. Parents that do not name a revision in the feed are kept
// as declared; they are simply never visited.
func Build(entries []Entry) (*Graph, error) {
	g := &Graph{
		ids:     make([]string, 0, len(entries)),
		parents: make(map[string][]string, len(entries)),
	}

	for _, entry := range entries {
		if entry.ID == "" {
			return nil, &IntegrityError{Reason: "revision with an empty id"}
		}

		if _, ok := g.parents[entry.ID]; ok {
			return nil, &IntegrityError{IDs: []string{entry.ID}, Reason: "duplicate revision id"}
		}

		parents := make([]string, 0, len(entry.Parents))
		for _, parent := range entry.Parents {
			if parent == entry.ID {
				return nil, &IntegrityError{IDs: []string{entry.ID}, Reason: "revision is its own parent"}
			}

			if !slices.Contains(parents, parent) {
				parents = append(parents, parent)
			}
		}

		g.ids = append(g.ids, entry.ID)
		g.parents[entry.ID] = parents
	}

	if cycle := g.findCycle(); cycle != nil {
		return nil, &IntegrityError{IDs: cycle, Reason: "parent pointers form a cycle"}
	}

	return g, nil
}

// Len returns the number of revisions in the graph.
func (g *Graph) Len() int { return len(g.ids) }

// IDs returns every revision id in feed order.
func (g *Graph) IDs() []string {
	return slices.Clone(g.ids)
}

// Has reports whether id is a revision in the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.parents[id]
	return ok
}

// Parents returns the declared parents of id, in declaration order.
func (g *Graph) Parents(id string) []string {
	return slices.Clone(g.parents[id])
}

// Children returns the revisions declaring id as one of their parents, in
// feed order.
func (g *Graph) Children(id string) []string {
	return g.ChildrenOf(id)
}

// ChildrenOf returns the revisions whose parents include parent. An empty
// parent selects the base revisions, those without any parent.
func (g *Graph) ChildrenOf(parent string) []string {
	var out []string
	for _, id := range g.ids {
		parents := g.parents[id]
		if parent == "" && len(parents) == 0 || parent != "" && slices.Contains(parents, parent) {
			out = append(out, id)
		}
	}

	return out
}

// Bases returns the revisions without parents.
func (g *Graph) Bases() []string {
	return g.ChildrenOf("")
}

// Heads returns the revisions no other revision declares as a parent.
func (g *Graph) Heads() []string {
	referenced := make(map[string]bool, len(g.ids))
	for _, id := range g.ids {
		for _, parent := range g.parents[id] {
			referenced[parent] = true
		}
	}

	var out []string
	for _, id := range g.ids {
		if !referenced[id] {
			out = append(out, id)
		}
	}

	return out
}

func (g *Graph) findCycle() []string {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make(map[string]int, len(g.ids))
	var path []string

	var visit func(id string) []string
	visit = func(id string) []string {
		state[id] = visiting
		path = append(path, id)

		for _, parent := range g.parents[id] {
			if !g.Has(parent) {
				continue
			}

			switch state[parent] {
			case visiting:
				start := slices.Index(path, parent)
				return slices.Clone(path[start:])
			case unvisited:
				if cycle := visit(parent); cycle != nil {
					return cycle
				}
			}
		}

		path = path[:len(path)-1]
		state[id] = done
		return nil
	}

	for _, id := range g.ids {
		if state[id] == unvisited {
			if cycle := visit(id); cycle != nil {
				return cycle
			}
		}
	}

	return nil
}
