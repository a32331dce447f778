package apikey

import "go.uber.org/fx"

var Module = fx.Module("apikey.service",
	fx.Provide(
		NewRepository,
		NewService,
	),
)
