package config

import (
	"os"

	"github.com/pseudomuto/alembic-tools/pkg/consts"
	"go.uber.org/fx"
)

var Module = fx.Module("config", fx.Provide(
	// Loads alembic-tools.yaml from the working directory. Projects without
	// one run on the defaults.
	func() (*Config, error) {
		if _, err := os.Stat(consts.ConfigFile); os.IsNotExist(err) {
			return Default(), nil
		}

		return LoadConfigFile(consts.ConfigFile)
	},
))
