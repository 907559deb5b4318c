package analyzer

import (
	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/consts"
	"github.com/pseudomuto/alembic-tools/pkg/pysource"
)

type (
	// Analyzer turns the upgrade function of a migration script into a Revision.
	// The zero value is not usable; create one with New.
	Analyzer struct {
		matcher Matcher
	}

	// Option configures an Analyzer.
	Option func(*Analyzer)
)

// WithMatcher replaces the default op/sa matcher.
func WithMatcher(m Matcher) Option {
	return func(a *Analyzer) {
		if m.OperationsHandle != "" {
			a.matcher.OperationsHandle = m.OperationsHandle
		}
		if m.SchemaHandle != "" {
			a.matcher.SchemaHandle = m.SchemaHandle
		}
	}
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{matcher: DefaultMatcher()}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Analyze parses src with the default matcher. See Analyzer.Analyze.
func Analyze(src []byte) (*Revision, error) {
	return New().Analyze(src)
}

// Analyze parses the Python source of a migration script and returns one
// Statement per top-level expression statement of its upgrade function.
//
// Each statement's subtree is searched breadth-first for the first call that
// matches the operation catalog (then the replaceable entity catalog); when
// nothing matches the statement becomes Unknown. Recognized operations whose
// literal arguments are missing or malformed abort the whole analysis with an
// *ArgumentError. A script without an upgrade function yields a
// *StructureError.
//
// Example:
//
//	rev, err := analyzer.Analyze(src)
//	if err != nil {
//		return err
//	}
//
//	for _, stmt := range rev.Statements {
//		if ct, ok := stmt.(analyzer.CreateTable); ok {
//			fmt.Printf("create table %s with %d columns\n", ct.Table, len(ct.Columns))
//		}
//	}
func (a *Analyzer) Analyze(src []byte) (*Revision, error) {
	file, err := pysource.Parse(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse migration script")
	}

	return a.AnalyzeFile(file)
}

// AnalyzeFile is Analyze for an already parsed file.
func (a *Analyzer) AnalyzeFile(file *pysource.File) (*Revision, error) {
	fn := file.Function(consts.UpgradeFunction)
	if fn == nil {
		return nil, &StructureError{Function: consts.UpgradeFunction}
	}

	rev := &Revision{Statements: make([]Statement, 0, len(fn.Body))}
	for _, node := range fn.Body {
		if node.Kind != pysource.KindExprStmt {
			continue
		}

		stmt, err := a.statement(node)
		if err != nil {
			return nil, err
		}

		rev.Statements = append(rev.Statements, stmt)
	}

	return rev, nil
}

func (a *Analyzer) statement(node *pysource.Node) (Statement, error) {
	var (
		stmt Statement
		err  error
	)

	pysource.Walk(node, func(n *pysource.Node) bool {
		if n.Kind != pysource.KindCall {
			return true
		}

		if kind, ok := a.matcher.Operation(n); ok {
			stmt, err = a.operation(kind, n)
			return false
		}

		if op, member, ok := a.matcher.Replaceable(n); ok {
			stmt, err = replaceable(op, member, n)
			return false
		}

		return true
	})

	if err != nil {
		return nil, err
	}

	if stmt == nil {
		return Unknown{}, nil
	}

	return stmt, nil
}

func (a *Analyzer) operation(kind StatementKind, call *pysource.Node) (Statement, error) {
	args := argReader{call: call, statement: string(kind)}

	switch kind {
	case KindCreateTable:
		table, err := args.literal(0)
		if err != nil {
			return nil, err
		}

		stmt := CreateTable{Table: table, Columns: []Column{}}
		for _, arg := range call.Args[1:] {
			if !a.matcher.IsColumn(arg) {
				continue
			}

			name, err := argReader{call: arg, statement: "Column"}.literal(0)
			if err != nil {
				return nil, err
			}

			stmt.Columns = append(stmt.Columns, Column{Name: name})
		}

		return stmt, nil
	case KindAddColumn:
		table, err := args.literal(0)
		if err != nil {
			return nil, err
		}

		col := call.Arg(1)
		if !a.matcher.IsColumn(col) {
			return nil, args.fail(1, "must be a "+a.matcher.SchemaHandle+".Column(...) call")
		}

		name, err := argReader{call: col, statement: "Column"}.literal(0)
		if err != nil {
			return nil, err
		}

		return AddColumn{Table: table, Column: name}, nil
	case KindDropColumn:
		table, column, err := args.pair(0, 1)
		if err != nil {
			return nil, err
		}

		return DropColumn{Table: table, Column: column}, nil
	case KindAlterColumn:
		table, column, err := args.pair(0, 1)
		if err != nil {
			return nil, err
		}

		return AlterColumn{Table: table, Column: column}, nil
	case KindCreateIndex:
		table, err := args.literal(1)
		if err != nil {
			return nil, err
		}

		return CreateIndex{Table: table}, nil
	case KindCreateForeignKey:
		table, referent, err := args.pair(1, 2)
		if err != nil {
			return nil, err
		}

		return CreateForeignKey{Table: table, Referent: referent}, nil
	case KindDropTable:
		table, err := args.literal(0)
		if err != nil {
			return nil, err
		}

		return DropTable{Table: table}, nil
	}

	return Unknown{}, nil
}

func replaceable(op ReplaceableOp, member string, call *pysource.Node) (Statement, error) {
	args := argReader{call: call, statement: member}

	target := call.Arg(0)
	if target == nil || target.Kind != pysource.KindIdentifier {
		return nil, args.fail(0, "must be a bare name referring to the replaceable entity")
	}

	stmt := Replaceable{Name: target.Name, Op: op}
	if kw := call.Keyword(consts.ReplacesKeyword); kw != nil {
		if !kw.Right.IsStringLiteral() {
			return nil, &ArgumentError{
				Statement: member,
				Keyword:   consts.ReplacesKeyword,
				Reason:    "must be a string literal",
				Line:      call.Line,
			}
		}

		stmt.Replaces = kw.Right.Value
	}

	return stmt, nil
}

type argReader struct {
	call      *pysource.Node
	statement string
}

func (r argReader) literal(pos int) (string, error) {
	arg := r.call.Arg(pos)
	if arg == nil {
		return "", r.fail(pos, "is missing")
	}

	if !arg.IsStringLiteral() {
		return "", r.fail(pos, "must be a string literal")
	}

	return arg.Value, nil
}

func (r argReader) pair(first, second int) (string, string, error) {
	a, err := r.literal(first)
	if err != nil {
		return "", "", err
	}

	b, err := r.literal(second)
	if err != nil {
		return "", "", err
	}

	return a, b, nil
}

func (r argReader) fail(pos int, reason string) error {
	return &ArgumentError{
		Statement: r.statement,
		Position:  pos,
		Reason:    reason,
		Line:      r.call.Line,
	}
}
