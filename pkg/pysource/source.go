package pysource

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrSyntax is returned (wrapped) when the source is not valid Python.
var ErrSyntax = errors.New("invalid python syntax")

// File is a parsed Python source file.
type File struct {
	Source []byte
	Root   *Node
}

// Parse parses src as Python and converts the tree-sitter tree into Nodes.
//
// Tree-sitter is error tolerant, but a migration script that does not parse
// cleanly cannot be trusted for analysis or rewriting, so any error node in the
// tree makes Parse fail with an error wrapping ErrSyntax.
//
// Example:
//
//	file, err := pysource.Parse([]byte("def upgrade() -> None:\n    pass\n"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(file.Function("upgrade").Name) // upgrade
func Parse(src []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, errors.Wrap(err, "tree-sitter parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, errors.Wrap(ErrSyntax, "empty syntax tree")
	}

	if root.HasError() {
		line := firstErrorLine(root)
		return nil, errors.Wrapf(ErrSyntax, "line %d", line)
	}

	return &File{Source: src, Root: convert(root, src)}, nil
}

// Text returns the source text spanned by n.
func (f *File) Text(n *Node) string {
	if n == nil {
		return ""
	}

	return string(f.Source[n.Start:n.End])
}

// Function returns the first function definition called name, searching the
// whole file breadth-first, or nil when there is none.
func (f *File) Function(name string) *Node {
	var found *Node
	Walk(f.Root, func(n *Node) bool {
		if n.Kind == KindFunction && n.Name == name {
			found = n
			return false
		}

		return true
	})

	return found
}

// FunctionText returns the complete source of the named function (from the
// def keyword to the end of its body) with surrounding whitespace trimmed.
func (f *File) FunctionText(name string) (string, bool) {
	fn := f.Function(name)
	if fn == nil {
		return "", false
	}

	return strings.TrimSpace(f.Text(fn)), true
}

// FunctionBody returns the raw source following the colon that ends the named
// function's header, up to the end of the function. The result keeps its
// leading newline and indentation so that it can be spliced into another
// function verbatim.
func (f *File) FunctionBody(name string) (string, bool) {
	fn := f.Function(name)
	if fn == nil || fn.BodyStart == 0 {
		return "", false
	}

	return strings.TrimRight(string(f.Source[fn.BodyStart:fn.End]), " \t\r\n"), true
}

// Assignments returns the module level assignment statements in source order.
func (f *File) Assignments() []*Node {
	var out []*Node
	for _, n := range f.Root.Children {
		if n.Kind == KindAssignStmt {
			out = append(out, n)
		}
	}

	return out
}

// Assignment returns the last module level assignment to the bare name, or nil.
func (f *File) Assignment(name string) *Node {
	var found *Node
	for _, n := range f.Assignments() {
		if n.Name == name {
			found = n
		}
	}

	return found
}

// Docstring returns the module docstring node, or nil when the module does not
// start with a string expression.
func (f *File) Docstring() *Node {
	if len(f.Root.Children) == 0 {
		return nil
	}

	first := f.Root.Children[0]
	if first.Kind != KindExprStmt || len(first.Children) != 1 {
		return nil
	}

	if doc := first.Children[0]; doc.Kind == KindString {
		return doc
	}

	return nil
}

func firstErrorLine(root *sitter.Node) int {
	queue := []*sitter.Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if n.Type() == "ERROR" || n.IsMissing() {
			return int(n.StartPoint().Row) + 1
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			if child := n.Child(i); child != nil {
				queue = append(queue, child)
			}
		}
	}

	return int(root.StartPoint().Row) + 1
}

func convert(n *sitter.Node, src []byte) *Node {
	out := &Node{
		Kind:  KindOther,
		Type:  n.Type(),
		Start: int(n.StartByte()),
		End:   int(n.EndByte()),
		Line:  int(n.StartPoint().Row) + 1,
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}

		out.Children = append(out.Children, convert(child, src))
	}

	switch n.Type() {
	case "module":
		out.Kind = KindModule
	case "function_definition":
		convertFunction(n, out, src)
	case "expression_statement":
		convertExpressionStatement(out)
	case "call":
		convertCall(n, out)
	case "attribute":
		out.Kind = KindAttribute
		out.Receiver = childFor(n, out, "object")
		if attr := n.ChildByFieldName("attribute"); attr != nil {
			out.Name = attr.Content(src)
		}
	case "identifier":
		out.Kind = KindIdentifier
		out.Name = n.Content(src)
	case "string":
		out.Kind = KindString
		out.Value, out.Literal = decodeString(n, src)
	case "concatenated_string":
		out.Kind = KindString
		out.Literal = true

		var sb strings.Builder
		for _, part := range out.Children {
			if part.Kind != KindString || !part.Literal {
				out.Literal = false
			}
			sb.WriteString(part.Value)
		}
		out.Value = sb.String()
	case "keyword_argument":
		out.Kind = KindKeyword
		if name := n.ChildByFieldName("name"); name != nil {
			out.Name = name.Content(src)
		}
		out.Right = childFor(n, out, "value")
	}

	return out
}

func convertFunction(n *sitter.Node, out *Node, src []byte) {
	// async defs are a different statement type in python's own grammar.
	if first := n.Child(0); first != nil && first.Type() == "async" {
		return
	}

	out.Kind = KindFunction
	if name := n.ChildByFieldName("name"); name != nil {
		out.Name = name.Content(src)
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil && child.Type() == ":" {
			out.BodyStart = int(child.EndByte())
		}
	}

	if body := childFor(n, out, "body"); body != nil {
		out.Body = body.Children
	}
}

func convertExpressionStatement(out *Node) {
	out.Kind = KindExprStmt
	if len(out.Children) != 1 {
		return
	}

	inner := out.Children[0]
	switch inner.Type {
	case "assignment", "augmented_assignment":
		out.Kind = KindAssignStmt
		if len(inner.Children) == 0 {
			return
		}

		out.Target = inner.Children[0]
		if out.Target.Kind == KindIdentifier {
			out.Name = out.Target.Name
		}

		// The right-hand side is always the last child; annotated assignments
		// carry their type in between.
		if last := inner.Children[len(inner.Children)-1]; len(inner.Children) > 1 && last.Type != "type" {
			out.Right = last
		}
	}
}

func convertCall(n *sitter.Node, out *Node) {
	out.Kind = KindCall
	out.Func = childFor(n, out, "function")

	args := childFor(n, out, "arguments")
	if args == nil {
		return
	}

	for _, arg := range args.Children {
		if arg.Kind == KindKeyword {
			out.Keywords = append(out.Keywords, arg)
			continue
		}

		out.Args = append(out.Args, arg)
	}
}

// childFor maps a tree-sitter field onto the already converted child that
// covers the same byte range.
func childFor(n *sitter.Node, out *Node, field string) *Node {
	target := n.ChildByFieldName(field)
	if target == nil {
		return nil
	}

	start, end := int(target.StartByte()), int(target.EndByte())
	for _, child := range out.Children {
		if child.Start == start && child.End == end && child.Type == target.Type() {
			return child
		}
	}

	return nil
}
