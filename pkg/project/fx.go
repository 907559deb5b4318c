package project

import (
	"github.com/pseudomuto/alembic-tools/pkg/config"
	"go.uber.org/fx"
)

// Module provides the Project rooted at the working directory.
var Module = fx.Module("project", fx.Provide(
	func(cfg *config.Config) *Project {
		return New(".", cfg)
	},
))
