package analyzer

type (
	// Revision is the result of analyzing one migration script: the statements
	// of its upgrade function, in source order. There is exactly one Statement
	// per top-level expression statement of the function body.
	Revision struct {
		Statements []Statement
	}

	// Statement is one of CreateTable, AddColumn, DropColumn, AlterColumn,
	// CreateIndex, CreateForeignKey, DropTable, Replaceable or Unknown.
	Statement interface {
		// Kind returns the operation name the statement was built from.
		Kind() StatementKind
		statement()
	}

	// StatementKind names the operation behind a Statement.
	StatementKind string

	// Column is the part of a column definition alembic-tools cares about.
	Column struct {
		Name string
	}

	// CreateTable is an op.create_table call.
	CreateTable struct {
		Table   string
		Columns []Column
	}

	// AddColumn is an op.add_column call.
	AddColumn struct {
		Table  string
		Column string
	}

	// DropColumn is an op.drop_column call.
	DropColumn struct {
		Table  string
		Column string
	}

	// AlterColumn is an op.alter_column call.
	AlterColumn struct {
		Table  string
		Column string
	}

	// CreateIndex is an op.create_index call. The index name is not kept.
	CreateIndex struct {
		Table string
	}

	// CreateForeignKey is an op.create_foreign_key call.
	CreateForeignKey struct {
		Table    string
		Referent string
	}

	// DropTable is an op.drop_table call.
	DropTable struct {
		Table string
	}

	// Replaceable is a create/drop/replace call for a replaceable entity such as
	// a view, stored procedure or function.
	Replaceable struct {
		Name     string
		Op       ReplaceableOp
		Replaces string
	}

	// Unknown is any expression statement that is not a recognized operation.
	Unknown struct{}
)

const (
	KindUnknown          StatementKind = "unknown"
	KindCreateTable      StatementKind = "create_table"
	KindAddColumn        StatementKind = "add_column"
	KindDropColumn       StatementKind = "drop_column"
	KindAlterColumn      StatementKind = "alter_column"
	KindCreateIndex      StatementKind = "create_index"
	KindCreateForeignKey StatementKind = "create_foreign_key"
	KindDropTable        StatementKind = "drop_table"
	KindReplaceable      StatementKind = "replaceable"
)

func (CreateTable) Kind() StatementKind      { return KindCreateTable }
func (AddColumn) Kind() StatementKind        { return KindAddColumn }
func (DropColumn) Kind() StatementKind       { return KindDropColumn }
func (AlterColumn) Kind() StatementKind      { return KindAlterColumn }
func (CreateIndex) Kind() StatementKind      { return KindCreateIndex }
func (CreateForeignKey) Kind() StatementKind { return KindCreateForeignKey }
func (DropTable) Kind() StatementKind        { return KindDropTable }
func (Replaceable) Kind() StatementKind      { return KindReplaceable }
func (Unknown) Kind() StatementKind          { return KindUnknown }

func (CreateTable) statement()      {}
func (AddColumn) statement()        {}
func (DropColumn) statement()       {}
func (AlterColumn) statement()      {}
func (CreateIndex) statement()      {}
func (CreateForeignKey) statement() {}
func (DropTable) statement()        {}
func (Replaceable) statement()      {}
func (Unknown) statement()          {}

// Known returns the statements that are not Unknown.
func (r *Revision) Known() []Statement {
	out := make([]Statement, 0, len(r.Statements))
	for _, stmt := range r.Statements {
		if _, ok := stmt.(Unknown); !ok {
			out = append(out, stmt)
		}
	}

	return out
}
