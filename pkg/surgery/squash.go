package surgery

import (
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/consts"
	"github.com/pseudomuto/alembic-tools/pkg/graph"
	"github.com/pseudomuto/alembic-tools/pkg/pysource"
	"github.com/pseudomuto/alembic-tools/pkg/script"
)

type (
	// SquashSource supplies the scripts a squash reads and the fresh revision
	// it fills in.
	SquashSource interface {
		// Script returns the script declaring id.
		Script(id string) (*script.Script, error)

		// NewRevision renders an empty revision with the given message and
		// parents. It must not persist anything.
		NewRevision(message string, parents []string) (*script.Script, error)
	}

	// SquashPlan is the outcome of a squash. Nothing has been written yet:
	// the caller writes Text to a file named after ID (reusing the slug of
	// TemplatePath), then archives the scripts listed in Archive.
	SquashPlan struct {
		// From is the absorbed parent revision, To the child whose id survives.
		From, To string

		// ID is the id of the squashed revision, always To.
		ID string

		// Parents are the parents of the squashed revision: From's parents.
		Parents []string

		// Text is the full source of the squashed revision. Its upgrade and
		// downgrade bodies are merge conflict blocks to resolve by hand.
		Text string

		// TemplatePath is the path the source gave the fresh revision.
		TemplatePath string

		// Archive lists the paths of From's and To's scripts, in that order.
		Archive []string
	}
)

var (
	upgradePlaceholder   = placeholder(consts.UpgradeFunction)
	downgradePlaceholder = placeholder(consts.DowngradeFunction)
)

// placeholder matches the empty body of a freshly generated function.
func placeholder(fn string) *regexp.Regexp {
	return regexp.MustCompile(`def ` + fn + `\(\)(?:[ \t]*->[ \t]*None)?:[ \t]*\r?\n[ \t]+pass\b`)
}

// Squash merges two adjacent revisions into one. The arguments may be given
// in either order and as id prefixes; whichever revision is the parent of the
// other is absorbed into its child.
//
// The squashed revision keeps the child's id and takes over the parent's
// down revision, so the rest of the chain is untouched. Its upgrade body is
// the parent's upgrade followed by the child's; its downgrade body is the
// child's downgrade followed by the parent's. Both are emitted as merge
// conflict blocks naming the two revisions because they rarely combine into a
// correct migration without an edit.
//
// Errors are returned before anything is produced: resolution errors from
// graph.Resolve, *UnconnectedError when neither revision is the other's
// parent, *BranchingError when either side of the squash branches and
// *FormatError when a script lacks an upgrade or downgrade function or the
// fresh revision lacks its `pass` placeholders.
func Squash(g *graph.Graph, first, second, message string, src SquashSource) (*SquashPlan, error) {
	a, err := graph.Resolve(g, first)
	if err != nil {
		return nil, err
	}

	b, err := graph.Resolve(g, second)
	if err != nil {
		return nil, err
	}

	from, to, err := direction(g, a, b)
	if err != nil {
		return nil, err
	}

	if err := checkLinear(g, from, to); err != nil {
		return nil, err
	}

	fromScript, err := src.Script(from)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read revision %s", from)
	}

	toScript, err := src.Script(to)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read revision %s", to)
	}

	fromBodies, err := bodies(from, fromScript.Source)
	if err != nil {
		return nil, err
	}

	toBodies, err := bodies(to, toScript.Source)
	if err != nil {
		return nil, err
	}

	parents := g.Parents(from)
	fresh, err := src.NewRevision(message, parents)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create squashed revision")
	}

	slog.Debug("Squashing revisions", "from", from, "to", to, "template", fresh.ID)

	text, err := mergeText(fresh, to, parents, conflict(from, to, fromBodies[0], toBodies[0]), conflict(to, from, toBodies[1], fromBodies[1]))
	if err != nil {
		return nil, err
	}

	return &SquashPlan{
		From:         from,
		To:           to,
		ID:           to,
		Parents:      parents,
		Text:         text,
		TemplatePath: fresh.Path,
		Archive:      []string{fromScript.Path, toScript.Path},
	}, nil
}

func direction(g *graph.Graph, a, b string) (string, string, error) {
	switch {
	case a == b:
		return "", "", &UnconnectedError{First: a, Second: b, FirstParents: g.Parents(a), SecondParents: g.Parents(b)}
	case slices.Contains(g.Parents(a), b):
		return b, a, nil
	case slices.Contains(g.Parents(b), a):
		return a, b, nil
	default:
		return "", "", &UnconnectedError{First: a, Second: b, FirstParents: g.Parents(a), SecondParents: g.Parents(b)}
	}
}

func checkLinear(g *graph.Graph, from, to string) error {
	if parents := g.Parents(to); len(parents) > 1 {
		return &BranchingError{Revision: to, Related: parents, Reason: "has multiple parents"}
	}

	if parents := g.Parents(from); len(parents) > 1 {
		return &BranchingError{Revision: from, Related: parents, Reason: "has multiple parents"}
	}

	if children := g.Children(from); len(children) > 1 {
		return &BranchingError{Revision: from, Related: children, Reason: "has multiple children"}
	}

	return nil
}

// bodies returns the upgrade and downgrade bodies of a script: the raw text
// after each function header, starting with the newline that ends it.
func bodies(id string, src []byte) ([2]string, error) {
	var out [2]string

	file, err := pysource.Parse(src)
	if err != nil {
		return out, errors.Wrapf(err, "failed to parse revision %s", id)
	}

	for i, fn := range []string{consts.UpgradeFunction, consts.DowngradeFunction} {
		body, ok := file.FunctionBody(fn)
		if !ok {
			return out, &FormatError{Revision: id, Reason: "could not find " + fn + " function"}
		}

		out[i] = body
	}

	return out, nil
}

func conflict(first, second, firstBody, secondBody string) string {
	var sb strings.Builder
	sb.WriteString("<<<<<<< " + first)
	sb.WriteString(firstBody)
	sb.WriteString("\n=======")
	sb.WriteString(secondBody)
	sb.WriteString("\n>>>>>>> " + second)

	return sb.String()
}

func mergeText(fresh *script.Script, to string, parents []string, upgrade, downgrade string) (string, error) {
	text := string(fresh.Source)

	upLoc := upgradePlaceholder.FindStringIndex(text)
	if upLoc == nil {
		return "", &FormatError{Reason: "could not match upgrade placeholder in the new revision"}
	}

	downLoc := downgradePlaceholder.FindStringIndex(text)
	if downLoc == nil {
		return "", &FormatError{Reason: "could not match downgrade placeholder in the new revision"}
	}

	// The pointers are rewritten while the text is still valid python; the
	// conflict blocks spliced in afterwards are not.
	text = strings.ReplaceAll(text, fresh.ID, to)
	rewritten, err := script.SetParent([]byte(text), parents)
	if err != nil {
		return "", errors.Wrap(err, "failed to set the squashed revision's parent")
	}
	text = string(rewritten)

	text = splice(text, upgradePlaceholder, upgrade)
	text = splice(text, downgradePlaceholder, downgrade)

	return text, nil
}

func splice(text string, placeholder *regexp.Regexp, block string) string {
	loc := placeholder.FindStringIndex(text)
	if loc == nil {
		return text
	}

	header := text[loc[0]:loc[1]]
	header = header[:strings.Index(header, ":")+1]

	return text[:loc[0]] + header + "\n" + block + text[loc[1]:]
}
