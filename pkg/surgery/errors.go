package surgery

import (
	"fmt"
	"strings"
)

type (
	// BranchingError is returned when a rewrite would cross a revision with
	// several parents or several children.
	BranchingError struct {
		Revision string
		Related  []string
		Reason   string
	}

	// UnconnectedError is returned when two revisions to squash are not
	// parent and child.
	UnconnectedError struct {
		First, Second               string
		FirstParents, SecondParents []string
	}

	// FormatError is returned when a script does not have the text a squash
	// needs to splice into or out of.
	FormatError struct {
		Revision string
		Reason   string
	}
)

func (e *BranchingError) Error() string {
	msg := fmt.Sprintf("branching is not supported: %s %s", e.Revision, e.Reason)
	if len(e.Related) > 0 {
		msg += " (" + strings.Join(e.Related, ", ") + ")"
	}

	return msg
}

func (e *UnconnectedError) Error() string {
	return fmt.Sprintf(
		"revisions %s and %s are not connected: %s has down revision %s and %s has down revision %s, one of the two should point to the other",
		e.First, e.Second,
		e.First, describe(e.FirstParents),
		e.Second, describe(e.SecondParents),
	)
}

func (e *FormatError) Error() string {
	if e.Revision == "" {
		return e.Reason
	}

	return fmt.Sprintf("%s: %s", e.Revision, e.Reason)
}

func describe(ids []string) string {
	if len(ids) == 0 {
		return "None"
	}

	return strings.Join(ids, ", ")
}
