package cmd

import (
	"context"

	"github.com/pseudomuto/alembic-tools/pkg/project"
	"github.com/urfave/cli/v3"
)

// history returns a CLI command printing the revisions in the order alembic
// applies them, each with its rank.
//
// Example usage:
//
//	alembic-tools history
func history(p *project.Project) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List revisions from the base to the heads",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			revs, err := p.Load()
			if err != nil {
				return err
			}

			printer(cmd).History(revs.Graph, revs.Dir)
			return nil
		},
	}
}
