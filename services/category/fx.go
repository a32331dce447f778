package category

import "go.uber.org/fx"

var Module = fx.Module("category.service",
	fx.Provide(
		NewRepository,
		NewService,
	),
)
