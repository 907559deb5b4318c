package analyzer

import "fmt"

type (
	// StructureError is returned when a script lacks a required function.
	StructureError struct {
		Function string
	}

	// ArgumentError is returned when a recognized operation is missing a
	// required literal argument, or the argument has the wrong shape.
	ArgumentError struct {
		Statement string
		Position  int
		Keyword   string
		Reason    string
		Line      int
	}
)

func (e *StructureError) Error() string {
	return fmt.Sprintf("could not find %s function", e.Function)
}

func (e *ArgumentError) Error() string {
	where := fmt.Sprintf("argument %d", e.Position)
	if e.Keyword != "" {
		where = fmt.Sprintf("keyword argument %q", e.Keyword)
	}

	return fmt.Sprintf("%s (line %d): %s %s", e.Statement, e.Line, where, e.Reason)
}
