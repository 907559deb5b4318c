// Package graph models a chain of alembic revisions as a directed graph of
// parent (down revision) pointers.
//
// A Graph is built once per command from the revision feed and never mutated.
// It answers structural questions (parents, children, heads, bases), produces
// a parent-before-child ordering used to rank revisions, and resolves the
// short id prefixes users type on the command line.
//
//	g, err := graph.Build([]graph.Entry{
//		{ID: "1975ea83b712"},
//		{ID: "ae1027a6acf", Parents: []string{"1975ea83b712"}},
//	})
//	if err != nil {
//		return err
//	}
//
//	graph.Order(g)          // [1975ea83b712 ae1027a6acf]
//	graph.Resolve(g, "ae1") // ae1027a6acf
package graph
