package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/consts"
	"github.com/pseudomuto/alembic-tools/pkg/format"
	"github.com/pseudomuto/alembic-tools/pkg/project"
	"github.com/urfave/cli/v3"
)

// graphCmd returns a CLI command rendering the revision graph in graphviz DOT
// format, either to stdout or to the file named by --output.
//
// Example usage:
//
//	alembic-tools graph | dot -Tpng -o alembic_graph.png
//	alembic-tools graph --horizontal --output revisions.dot
func graphCmd(p *project.Project) *cli.Command {
	return &cli.Command{
		Name:  "graph",
		Usage: "Render the revision graph as graphviz DOT",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "horizontal",
				Usage: "lay the graph out from left to right",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the graph to this file instead of stdout",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			revs, err := p.Load()
			if err != nil {
				return err
			}

			opts := format.DOTOptions{Horizontal: cmd.Bool("horizontal")}

			path := cmd.String("output")
			if path == "" {
				return format.DOT(cmd.Writer, revs.Graph, revs.Dir, opts)
			}

			f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, consts.ModeFile)
			if err != nil {
				return errors.Wrapf(err, "failed to create %s", path)
			}
			defer func() { _ = f.Close() }()

			if err := format.DOT(f, revs.Graph, revs.Dir, opts); err != nil {
				return errors.Wrapf(err, "failed to write %s", path)
			}

			fmt.Fprintf(cmd.Writer, "Wrote %d revision(s) to %s\n", revs.Graph.Len(), path)
			return nil
		},
	}
}
