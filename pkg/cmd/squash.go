package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pseudomuto/alembic-tools/pkg/project"
	"github.com/pseudomuto/alembic-tools/pkg/surgery"
	"github.com/urfave/cli/v3"
)

// squash returns a CLI command merging two adjacent revisions into one.
//
// The squashed revision keeps the id of the later revision and the parents
// of the earlier one. Its upgrade and downgrade functions hold both bodies as
// merge conflict blocks, to be resolved by hand before the revision is
// committed. Both original scripts are moved into the squashed archive.
//
// Example usage:
//
//	alembic-tools squash ae10 27c6 -m "create users"
func squash(p *project.Project) *cli.Command {
	return &cli.Command{
		Name:      "squash",
		Usage:     "Squash two adjacent revisions into one",
		ArgsUsage: "<revision> <revision>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "the message of the squashed revision",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 2, "<revision> <revision>"); err != nil {
				return err
			}

			revs, err := p.Load()
			if err != nil {
				return err
			}

			plan, err := surgery.Squash(revs.Graph, cmd.Args().Get(0), cmd.Args().Get(1), cmd.String("message"), revs)
			if err != nil {
				return err
			}

			archive, err := p.SquashedArchive()
			if err != nil {
				return err
			}

			slog.Info("Squashing revisions", "from", plan.From, "to", plan.To)
			path, err := revs.ApplySquash(plan, archive)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Writer, "Squashed %s into %s: %s\n", plan.From, plan.To, path)
			fmt.Fprintln(cmd.Writer, "Resolve the conflict blocks in upgrade() and downgrade() before running it.")
			fmt.Fprintf(cmd.Writer, "Databases currently at %s must be upgraded to %s and restamped:\n", plan.From, plan.To)
			fmt.Fprintf(cmd.Writer, "  alembic-tools stamp --from %s --to %s\n", plan.From, plan.To)
			fmt.Fprintf(cmd.Writer, "The original scripts are kept in %s.\n", archive.Dir())
			return nil
		},
	}
}
