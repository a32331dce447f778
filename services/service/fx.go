package service

import "go.uber.org/fx"

var Module = fx.Module("service.registry",
	fx.Provide(
		NewRepository,
		NewService,
	),
)
