package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/project"
	"github.com/pseudomuto/alembic-tools/pkg/script"
	"github.com/urfave/cli/v3"
)

// verify returns a CLI command checking the archive.sum integrity file of
// the squashed and moved archives against their contents.
//
// With --rehash the sum files are regenerated from the current contents
// instead, accepting any change made by hand.
//
// Example usage:
//
//	alembic-tools verify
//	alembic-tools verify --rehash
func verify(p *project.Project) *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Check the integrity of the revision archives",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "rehash",
				Usage: "regenerate the sum files instead of checking them",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			archives := []func() (*script.Archive, error){p.SquashedArchive, p.MovedArchive}

			var failed []string
			for _, open := range archives {
				archive, err := open()
				if err != nil {
					return err
				}

				if cmd.Bool("rehash") {
					if err := archive.Seal(); err != nil {
						return err
					}

					fmt.Fprintf(cmd.Writer, "%s: rehashed\n", archive.Dir())
					continue
				}

				ok, err := archive.Verify()
				if err != nil {
					return err
				}

				status := "ok"
				if !ok {
					status = "modified"
					failed = append(failed, archive.Dir())
				}

				fmt.Fprintf(cmd.Writer, "%s: %s\n", archive.Dir(), status)
			}

			if len(failed) > 0 {
				return errors.Errorf("%d archive(s) failed verification", len(failed))
			}

			return nil
		},
	}
}
