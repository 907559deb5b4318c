package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/format"
	"github.com/pseudomuto/alembic-tools/pkg/project"
	"github.com/pseudomuto/alembic-tools/pkg/search"
	"github.com/urfave/cli/v3"
)

// searchCmd returns a CLI command listing every revision touching a table or
// a replaceable entity (view, stored procedure, function), from the earliest
// to the latest. The last revision found is marked "(latest)".
//
// Example usage:
//
//	alembic-tools search --table user
//	alembic-tools search --replaceable active_users
func searchCmd(p *project.Project) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Find the revisions touching a table or replaceable entity",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "table",
				Aliases: []string{"t"},
				Usage:   "the table to search for",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.StringFlag{
				Name:    "replaceable",
				Aliases: []string{"r"},
				Usage:   "the replaceable entity to search for",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			table, replaceable := cmd.String("table"), cmd.String("replaceable")
			if (table == "") == (replaceable == "") {
				return errors.New("exactly one of --table or --replaceable is required")
			}

			kind, name, find := format.TableSearch, table, search.ForTable(table)
			if replaceable != "" {
				kind, name, find = format.ReplaceableSearch, replaceable, search.ForReplaceable(replaceable)
			}

			revs, a, err := loadRevisions(p)
			if err != nil {
				return err
			}

			analyzed, err := revs.Analyze(a)
			if err != nil {
				return err
			}

			out := printer(cmd)
			out.SearchHeader(kind, name)
			out.Hits(search.Collect(revs.Graph, find, analyzed))
			return nil
		},
	}
}
