package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/graph"
	"github.com/pseudomuto/alembic-tools/pkg/project"
	"github.com/urfave/cli/v3"
)

// analyze returns a CLI command listing the operations a revision's upgrade
// function performs, as alembic-tools understands them. Without arguments
// every revision is listed, from the base to the heads.
//
// Example usage:
//
//	alembic-tools analyze 27c6
//	alembic-tools analyze
func analyze(p *project.Project) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Show the operations performed by revisions",
		ArgsUsage: "[revision]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 1 {
				return errors.New("expected at most one revision")
			}

			revs, a, err := loadRevisions(p)
			if err != nil {
				return err
			}

			ids := graph.Order(revs.Graph)
			if cmd.NArg() == 1 {
				id, err := graph.Resolve(revs.Graph, cmd.Args().First())
				if err != nil {
					return err
				}

				ids = []string{id}
			}

			out := printer(cmd)
			for _, id := range ids {
				s, err := revs.Script(id)
				if err != nil {
					return err
				}

				rev, err := a.Analyze(s.Source)
				if err != nil {
					return errors.Wrapf(err, "failed to analyze %s", s.Path)
				}

				out.Analysis(id, rev)
			}

			return nil
		},
	}
}
