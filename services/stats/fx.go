package stats

import "go.uber.org/fx"

var Module = fx.Module("stats.service",
	fx.Provide(
		NewRepository,
		NewService,
	),
)
