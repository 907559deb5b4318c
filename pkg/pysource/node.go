package pysource

// Kind identifies the syntactic category of a Node.
type Kind int

const (
	// KindOther is any construct alembic-tools does not inspect directly.
	KindOther Kind = iota
	// KindModule is the root of a parsed file.
	KindModule
	// KindFunction is a (non-async) function definition.
	KindFunction
	// KindExprStmt is a statement consisting of a bare expression.
	KindExprStmt
	// KindAssignStmt is an assignment statement (plain, annotated or augmented).
	KindAssignStmt
	// KindCall is a call expression.
	KindCall
	// KindAttribute is a dotted member access such as op.create_table.
	KindAttribute
	// KindIdentifier is a bare name.
	KindIdentifier
	// KindString is a string literal, including implicit concatenations.
	KindString
	// KindKeyword is a keyword argument inside a call.
	KindKeyword
)

var kindNames = map[Kind]string{
	KindOther:      "other",
	KindModule:     "module",
	KindFunction:   "function",
	KindExprStmt:   "expression statement",
	KindAssignStmt: "assignment",
	KindCall:       "call",
	KindAttribute:  "attribute",
	KindIdentifier: "identifier",
	KindString:     "string",
	KindKeyword:    "keyword argument",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

// Node is a converted syntax tree node. Which fields are populated depends on
// Kind:
//
//   - KindFunction: Name, Body, BodyStart
//   - KindAssignStmt: Target, Right (Name is the target when it is a bare identifier)
//   - KindCall: Func, Args, Keywords
//   - KindAttribute: Receiver, Name (the member)
//   - KindIdentifier: Name
//   - KindString: Value, Literal
//   - KindKeyword: Name, Right
//
// Children always holds every converted child in source order (comments are
// dropped) and is what Walk traverses.
type Node struct {
	Kind  Kind
	Type  string // tree-sitter node type, useful in error messages
	Start int
	End   int
	Line  int

	Name     string
	Value    string
	Literal  bool
	Receiver *Node
	Func     *Node
	Args     []*Node
	Keywords []*Node
	Target   *Node
	Right    *Node

	Body      []*Node
	BodyStart int

	Children []*Node
}

// Keyword returns the keyword argument called name, or nil when the call has
// no such keyword.
func (n *Node) Keyword(name string) *Node {
	for _, kw := range n.Keywords {
		if kw.Name == name {
			return kw
		}
	}

	return nil
}

// Arg returns the positional argument at index i, or nil when there are fewer
// arguments.
func (n *Node) Arg(i int) *Node {
	if i < 0 || i >= len(n.Args) {
		return nil
	}

	return n.Args[i]
}

// IsStringLiteral reports whether n is a plain (non-formatted, non-bytes)
// string literal.
func (n *Node) IsStringLiteral() bool {
	return n != nil && n.Kind == KindString && n.Literal
}

// Walk visits n and all of its descendants breadth-first, stopping as soon as
// fn returns false.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}

	queue := []*Node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if !fn(cur) {
			return
		}

		queue = append(queue, cur.Children...)
	}
}
