package graph

// Order returns every revision such that each one appears after all of its
// parents.
//
// Revisions are visited depth-first in feed order, recursing into parents
// before emitting a revision. Independent branches are therefore ordered by
// their position in the feed; for a single mainline the result is the chain
// from base to head.
func Order(g *Graph) []string {
	visited := make(map[string]bool, g.Len())
	out := make([]string, 0, g.Len())

	var visit func(id string)
	visit = func(id string) {
		visited[id] = true
		for _, parent := range g.parents[id] {
			if g.Has(parent) && !visited[parent] {
				visit(parent)
			}
		}

		out = append(out, id)
	}

	for _, id := range g.ids {
		if !visited[id] {
			visit(id)
		}
	}

	return out
}

// Ranks maps each revision id to its index in Order(g). Higher ranks are
// later in the chain.
func Ranks(g *Graph) map[string]int {
	order := Order(g)

	ranks := make(map[string]int, len(order))
	for i, id := range order {
		ranks[id] = i
	}

	return ranks
}
