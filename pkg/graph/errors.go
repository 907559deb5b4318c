package graph

import (
	"fmt"
	"strings"
)

type (
	// IntegrityError reports a revision chain that is structurally broken: a
	// duplicate or self-referencing id, or an edge that was expected but does
	// not exist.
	IntegrityError struct {
		IDs    []string
		Reason string
	}

	// NotFoundError is returned when a prefix matches no revision.
	NotFoundError struct {
		Prefix string
	}

	// AmbiguousError is returned when a prefix matches more than one revision.
	AmbiguousError struct {
		Prefix     string
		Candidates []string
	}
)

func (e *IntegrityError) Error() string {
	if len(e.IDs) == 0 {
		return "revision graph integrity: " + e.Reason
	}

	return fmt.Sprintf("revision graph integrity: %s (%s)", e.Reason, strings.Join(e.IDs, ", "))
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find revision beginning with %s", e.Prefix)
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("revision %s is ambiguous, could be any of %s", e.Prefix, strings.Join(e.Candidates, ", "))
}
