// Package format renders alembic-tools reports for the terminal.
//
// A Printer writes search hits, the revision history, statement analyses and
// script diffs. Output is styled with lipgloss when the destination is a
// terminal and plain otherwise, so piped output and golden files never carry
// escape codes.
//
// Usage:
//
//	p := format.New(os.Stdout)
//	p.SearchHeader(format.TableSearch, "user")
//	p.Hits(hits)
//
// DOT renders the revision graph in the graphviz language and Diff produces a
// unified diff of a rewritten script.
package format
