package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		fx.Annotate(analyze, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(graphCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(history, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(initCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(move, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(searchCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(squash, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(stampCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(verify, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
