package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/graph"
	"github.com/pseudomuto/alembic-tools/pkg/project"
	"github.com/pseudomuto/alembic-tools/pkg/stamp"
	"github.com/urfave/cli/v3"
)

// stampCmd returns a CLI command rewriting the revision recorded in a
// database's alembic version table. It is the follow up to a squash, for
// databases left on a revision that no longer exists.
//
// The database must currently be at --from. No migration is run: only the
// version row changes. --to must be a revision of the project, given in full
// or as a unique prefix.
//
// Command flags:
//   - --dsn: connection string, defaulting to database.dsn from
//     alembic-tools.yaml (postgres://, sqlite:// or clickhouse://)
//   - --from: the revision currently recorded
//   - --to: the revision to record instead
//
// Example usage:
//
//	alembic-tools stamp --dsn postgres://localhost:5432/app --from ae1027a6acf0 --to 27c6
func stampCmd(p *project.Project) *cli.Command {
	return &cli.Command{
		Name:  "stamp",
		Usage: "Replace the revision recorded in the alembic version table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dsn",
				Usage: "database connection string (defaults to database.dsn)",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.StringFlag{
				Name:     "from",
				Usage:    "the revision currently recorded",
				Required: true,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "the revision to record",
				Required: true,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dsn := cmd.String("dsn")
			if dsn == "" {
				dsn = p.Config().Database.DSN
			}
			if dsn == "" {
				return errors.New("no database: pass --dsn or set database.dsn in alembic-tools.yaml")
			}

			revs, err := p.Load()
			if err != nil {
				return err
			}

			to, err := graph.Resolve(revs.Graph, cmd.String("to"))
			if err != nil {
				return err
			}

			store, err := stamp.Open(ctx, dsn, p.Config().Database.Table)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			from := cmd.String("from")
			if err := stamp.Stamp(ctx, store, from, to); err != nil {
				return err
			}

			fmt.Fprintf(cmd.Writer, "Stamped %s with %s (was %s)\n", stamp.Redact(dsn), to, from)
			return nil
		},
	}
}
