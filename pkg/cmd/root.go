package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/analyzer"
	"github.com/pseudomuto/alembic-tools/pkg/format"
	"github.com/pseudomuto/alembic-tools/pkg/project"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Project    *project.Project
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates and executes the alembic-tools CLI application.
//
// The application changes into the directory given by the global --dir flag
// before any command runs, then reloads the project configuration from
// there. Commands operate on the alembic environment of that directory.
//
// Global Flags:
//   - --dir, -d: Project directory (defaults to current directory)
//
// Example usage:
//
//	alembic-tools --dir services/billing history
//	alembic-tools search --table user
//
// The application shuts fx down with exit code 1 when a command fails.
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "alembic-tools",
		Usage: "Tools for inspecting and rearranging alembic migrations",
		Description: `alembic-tools reads the revision scripts of an alembic project to
answer questions about their history (which revision touched a table, in
what order revisions apply) and to rearrange the chain by moving or squashing
revisions.`,
		Version: p.Version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "the project directory",
				Value:       ".",
				DefaultText: "Current directory",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if err := os.Chdir(cmd.String("dir")); err != nil {
				return ctx, errors.Wrap(err, "failed to change to the project directory")
			}

			return ctx, p.Project.Reload()
		},
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
			return
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

// printer returns the report printer for cmd's output.
func printer(cmd *cli.Command) *format.Printer {
	return format.New(cmd.Writer)
}

// loadRevisions loads the project's scripts along with an analyzer for the
// configured handles.
func loadRevisions(p *project.Project) (*project.Revisions, *analyzer.Analyzer, error) {
	revs, err := p.Load()
	if err != nil {
		return nil, nil, err
	}

	return revs, analyzer.New(analyzer.WithMatcher(p.Config().Matcher())), nil
}

// requireArgs fails unless cmd was given exactly n positional arguments.
func requireArgs(cmd *cli.Command, n int, usage string) error {
	if cmd.NArg() != n {
		return errors.Errorf("expected %d argument(s): %s", n, usage)
	}

	return nil
}
