// Package parser holds the small participle grammars alembic-tools needs
// outside of python source: alembic.ini files and the revision pointer
// literals assigned to `revision` and `down_revision`.
//
// Both grammars are built once with github.com/alecthomas/participle/v2 and
// return errors carrying the line and column of the offending token.
//
// Basic usage:
//
//	ini, err := parser.ParseINI(f)
//	if err != nil {
//		return err
//	}
//
//	loc, ok := ini.Get("alembic", "script_location")
//
//	ptr, err := parser.ParsePointer(`('ae1027a6acf0', '27c6a30d7c24')`)
//	if err != nil {
//		return err
//	}
//
//	fmt.Println(ptr.IDs()) // [ae1027a6acf0 27c6a30d7c24]
package parser
