package graph

import "strings"

// Resolve finds the single revision whose id starts with prefix. Matching is
// a literal, case-sensitive prefix test, so a full id is ambiguous when it is
// also the prefix of another id.
//
// Example:
//
//	id, err := graph.Resolve(g, "a38d")
//	var ambiguous *graph.AmbiguousError
//	if errors.As(err, &ambiguous) {
//		fmt.Println("pick one of", ambiguous.Candidates)
//	}
func Resolve(g *Graph, prefix string) (string, error) {
	matches := Matches(g, prefix)

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Prefix: prefix}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Prefix: prefix, Candidates: matches}
	}
}

// Matches returns every id starting with prefix, in feed order.
func Matches(g *Graph, prefix string) []string {
	var out []string
	for _, id := range g.ids {
		if strings.HasPrefix(id, prefix) {
			out = append(out, id)
		}
	}

	return out
}
