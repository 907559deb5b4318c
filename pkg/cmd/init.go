package cmd

import (
	"context"
	"fmt"

	"github.com/pseudomuto/alembic-tools/pkg/consts"
	"github.com/pseudomuto/alembic-tools/pkg/project"
	"github.com/urfave/cli/v3"
)

// initCmd returns a CLI command that writes a default alembic-tools.yaml
// into the project directory.
//
// The initialization process is idempotent: an existing alembic-tools.yaml
// is kept as is and loaded instead.
//
// Example usage:
//
//	alembic-tools init
//	alembic-tools --dir services/billing init
func initCmd(p *project.Project) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default alembic-tools.yaml in the project directory",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := p.Initialize(); err != nil {
				return err
			}

			versions, err := p.VersionsDir()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Writer, "Initialized %s (revisions in %s)\n", consts.ConfigFile, versions)
			return nil
		},
	}
}
