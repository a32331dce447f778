package moderation

import "go.uber.org/fx"

var Module = fx.Module("moderation.service",
	fx.Provide(
		NewRepository,
		NewHTTPScorer,
		NewService,
	),
)
