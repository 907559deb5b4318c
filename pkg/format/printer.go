package format

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-isatty"
	"github.com/pseudomuto/alembic-tools/pkg/analyzer"
	"github.com/pseudomuto/alembic-tools/pkg/graph"
	"github.com/pseudomuto/alembic-tools/pkg/script"
	"github.com/pseudomuto/alembic-tools/pkg/search"
)

// SearchKind is what a search looks for.
type SearchKind int

const (
	TableSearch SearchKind = iota
	ReplaceableSearch
)

type (
	// Printer writes reports to a writer.
	Printer struct {
		w      io.Writer
		styles styles
	}

	// render styles a piece of text.
	render func(string) string

	styles struct {
		header   render
		revision render
		marker   render
		dim      render
		added    render
		removed  render
	}
)

// New creates a Printer for w, styling its output when w is a terminal.
func New(w io.Writer) *Printer {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return &Printer{w: w, styles: colored()}
		}
	}

	return NewPlain(w)
}

// NewPlain creates a Printer that never styles its output.
func NewPlain(w io.Writer) *Printer {
	return &Printer{w: w, styles: plain()}
}

func colored() styles {
	return styles{
		header:   style(lipgloss.NewStyle().Bold(true)),
		revision: style(lipgloss.NewStyle().Foreground(lipgloss.Color("3"))),
		marker:   style(lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)),
		dim:      style(lipgloss.NewStyle().Faint(true)),
		added:    style(lipgloss.NewStyle().Foreground(lipgloss.Color("2"))),
		removed:  style(lipgloss.NewStyle().Foreground(lipgloss.Color("1"))),
	}
}

func style(st lipgloss.Style) render {
	return func(s string) string { return st.Render(s) }
}

func plain() styles {
	same := func(s string) string { return s }
	return styles{header: same, revision: same, marker: same, dim: same, added: same, removed: same}
}

// SearchHeader writes the title of a search.
func (p *Printer) SearchHeader(kind SearchKind, name string) {
	title := "Table: " + name
	if kind == ReplaceableSearch {
		title = "Replaceable entity: " + name
	}

	fmt.Fprintln(p.w, p.styles.header(title))
}

// Hits writes one line per hit, in the order given.
func (p *Printer) Hits(hits []search.Hit) {
	if len(hits) == 0 {
		fmt.Fprintln(p.w, p.styles.dim("No revision found."))
		return
	}

	for _, hit := range hits {
		line := p.styles.revision(hit.Revision) + " " + hit.Text()
		if hit.Latest {
			line += " " + p.styles.marker("(latest)")
		}

		fmt.Fprintln(p.w, line)
	}
}

// History writes the revisions of g from the base to the heads, one per line,
// with their rank, message and base or head markers.
func (p *Printer) History(g *graph.Graph, dir *script.Dir) {
	order := graph.Order(g)
	width := len(fmt.Sprint(len(order) - 1))

	heads := make(map[string]bool)
	for _, id := range g.Heads() {
		heads[id] = true
	}

	for i, id := range order {
		var markers []string
		if len(g.Parents(id)) == 0 {
			markers = append(markers, "base")
		}
		if len(g.Parents(id)) > 1 {
			markers = append(markers, "merge")
		}
		if heads[id] {
			markers = append(markers, "head")
		}

		line := fmt.Sprintf("%*d %s", width, i, p.styles.revision(id))
		if s, ok := dir.Script(id); ok && s.Message != "" {
			line += " " + s.Message
		}
		if len(markers) > 0 {
			line += " " + p.styles.marker("("+strings.Join(markers, ", ")+")")
		}

		fmt.Fprintln(p.w, line)
	}
}

// Analysis writes the statements of a revision's upgrade function.
func (p *Printer) Analysis(id string, rev *analyzer.Revision) {
	fmt.Fprintln(p.w, p.styles.header("Revision: "+id))

	if len(rev.Statements) == 0 {
		fmt.Fprintln(p.w, p.styles.dim("  no statements"))
		return
	}

	for i, stmt := range rev.Statements {
		text := Statement(stmt)
		if _, ok := stmt.(analyzer.Unknown); ok {
			text = p.styles.dim(text)
		}

		fmt.Fprintf(p.w, "%3d. %s\n", i+1, text)
	}
}

// Diff writes a unified diff, coloring added and removed lines.
func (p *Printer) Diff(diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}

		body := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			body = p.styles.header(body)
		case strings.HasPrefix(line, "+"):
			body = p.styles.added(body)
		case strings.HasPrefix(line, "-"):
			body = p.styles.removed(body)
		case strings.HasPrefix(line, "@@"):
			body = p.styles.dim(body)
		}

		fmt.Fprintln(p.w, body)
	}
}

// Statement describes a single analyzed statement.
func Statement(stmt analyzer.Statement) string {
	switch s := stmt.(type) {
	case analyzer.CreateTable:
		cols := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			cols[i] = c.Name
		}

		return fmt.Sprintf("create table %s (%s)", s.Table, strings.Join(cols, ", "))
	case analyzer.AddColumn:
		return fmt.Sprintf("add column %s.%s", s.Table, s.Column)
	case analyzer.DropColumn:
		return fmt.Sprintf("drop column %s.%s", s.Table, s.Column)
	case analyzer.AlterColumn:
		return fmt.Sprintf("alter column %s.%s", s.Table, s.Column)
	case analyzer.CreateIndex:
		return "create index on " + s.Table
	case analyzer.CreateForeignKey:
		return fmt.Sprintf("create foreign key %s -> %s", s.Table, s.Referent)
	case analyzer.DropTable:
		return "drop table " + s.Table
	case analyzer.Replaceable:
		text := fmt.Sprintf("%s %s", s.Op, s.Name)
		if s.Replaces != "" {
			text += " (replaces " + s.Replaces + ")"
		}

		return text
	default:
		return "unknown statement"
	}
}
