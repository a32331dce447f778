package admin

import "go.uber.org/fx"

var Module = fx.Module("admin.service",
	fx.Provide(
		NewUserRepository,
		NewSessionRepository,
		NewService,
	),
)

// Worker registers the session cleanup handler and its daily scheduler.
var Worker = fx.Module("admin.worker",
	fx.Provide(NewScheduler),
	fx.Invoke(
		RegisterSessionCleanup,
		StartScheduler,
	),
)
