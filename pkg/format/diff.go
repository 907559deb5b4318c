package format

import (
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns the unified diff turning before into after, with three lines
// of context. Both sides are labeled with path.
func Diff(path string, before, after []byte) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to diff %s", path)
	}

	return diff, nil
}
