package analyzer

import (
	"github.com/pseudomuto/alembic-tools/pkg/consts"
	"github.com/pseudomuto/alembic-tools/pkg/pysource"
)

// ReplaceableOp is what a replaceable entity call does to its entity.
type ReplaceableOp int

const (
	OpCreate ReplaceableOp = iota
	OpDrop
	OpReplace
)

func (o ReplaceableOp) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpDrop:
		return "drop"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

var (
	// operationPriority is the order in which the operation catalog is tried
	// against a call.
	operationPriority = []StatementKind{
		KindCreateTable,
		KindAddColumn,
		KindDropColumn,
		KindCreateIndex,
		KindCreateForeignKey,
		KindDropTable,
		KindAlterColumn,
	}

	replaceableOps = map[string]ReplaceableOp{
		"create_view":   OpCreate,
		"drop_view":     OpDrop,
		"replace_view":  OpReplace,
		"create_sproc":  OpCreate,
		"drop_sproc":    OpDrop,
		"replace_sproc": OpReplace,
		"create_func":   OpCreate,
		"drop_func":     OpDrop,
		"replace_func":  OpReplace,
	}
)

// Matcher recognizes the call shapes the analyzer understands. Matching is
// purely syntactic: the receiver must literally be the configured handle name,
// so `from alembic import op as ops` followed by ops.create_table(...) is not
// recognized.
type Matcher struct {
	// OperationsHandle is the receiver of migration operations (op).
	OperationsHandle string
	// SchemaHandle is the receiver of the Column constructor (sa).
	SchemaHandle string
}

// DefaultMatcher returns a Matcher for the conventional `op` and `sa` handles.
func DefaultMatcher() Matcher {
	return Matcher{
		OperationsHandle: consts.DefaultOperationsHandle,
		SchemaHandle:     consts.DefaultSchemaHandle,
	}
}

// Operation reports which migration operation n calls, trying the catalog in
// priority order.
func (m Matcher) Operation(n *pysource.Node) (StatementKind, bool) {
	for _, kind := range operationPriority {
		if m.isCall(n, m.OperationsHandle, string(kind)) {
			return kind, true
		}
	}

	return "", false
}

// Replaceable reports whether n is a replaceable entity call and, if so,
// returns its operation and the called member name.
func (m Matcher) Replaceable(n *pysource.Node) (ReplaceableOp, string, bool) {
	member, ok := m.member(n, m.OperationsHandle)
	if !ok {
		return 0, "", false
	}

	op, ok := replaceableOps[member]
	return op, member, ok
}

// IsColumn reports whether n is a sa.Column(...) constructor call.
func (m Matcher) IsColumn(n *pysource.Node) bool {
	return m.isCall(n, m.SchemaHandle, "Column")
}

func (m Matcher) isCall(n *pysource.Node, handle, name string) bool {
	member, ok := m.member(n, handle)
	return ok && member == name
}

// member returns the member name of a `<handle>.<member>(...)` call.
func (m Matcher) member(n *pysource.Node, handle string) (string, bool) {
	if n == nil || n.Kind != pysource.KindCall || n.Func == nil {
		return "", false
	}

	fn := n.Func
	if fn.Kind != pysource.KindAttribute || fn.Receiver == nil {
		return "", false
	}

	if fn.Receiver.Kind != pysource.KindIdentifier || fn.Receiver.Name != handle {
		return "", false
	}

	return fn.Name, true
}
