// Package pysource parses Python migration scripts into a small, closed syntax
// tree that the rest of alembic-tools can pattern match over.
//
// Parsing is delegated to tree-sitter (github.com/smacker/go-tree-sitter) with
// the Python grammar. The resulting concrete syntax tree is converted into
// Node values whose Kind is one of a fixed enumeration (functions, expression
// statements, assignments, calls, attributes, identifiers, string literals and
// keyword arguments). Everything else is KindOther but is still walked so that
// calls nested inside arbitrary expressions can be found.
//
// The conversion copies everything it needs out of tree-sitter, so a File stays
// valid after the underlying tree has been released.
//
// Basic usage:
//
//	file, err := pysource.Parse(src)
//	if err != nil {
//		return err
//	}
//
//	upgrade := file.Function("upgrade")
//	for _, stmt := range upgrade.Body {
//		if stmt.Kind == pysource.KindExprStmt {
//			// ...
//		}
//	}
//
//	body, ok := file.FunctionBody("downgrade")
package pysource
