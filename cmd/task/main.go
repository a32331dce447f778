package main

import (
	"moderation-controlplane/internal/config"
	"moderation-controlplane/internal/logger"
	"moderation-controlplane/pkg/db"
	"moderation-controlplane/pkg/gen"
	"moderation-controlplane/pkg/task"
	"moderation-controlplane/services/admin"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		db.Module,
		gen.Module,
		admin.Module,
		task.Client,
		task.Server,
		admin.Worker,
		fxLogger,
	)

	app.Run()
}

var fxLogger = fx.WithLogger(func(cfg *config.Config, logger *zap.Logger) fxevent.Logger {
	return fxevent.NopLogger
})
