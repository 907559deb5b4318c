package main

import (
	"context"
	"os"

	"github.com/pseudomuto/alembic-tools/pkg/cmd"
	"github.com/pseudomuto/alembic-tools/pkg/config"
	"github.com/pseudomuto/alembic-tools/pkg/project"
	"go.uber.org/fx"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	fx.New(
		fx.NopLogger,
		fx.Supply(
			os.Args,
			&cmd.Version{Version: version, Commit: commit, Timestamp: date},
		),
		fx.Provide(func() context.Context { return context.Background() }),
		config.Module,
		project.Module,
		cmd.Module,
	).Run()
}
