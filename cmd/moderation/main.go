package main

import (
	"moderation-controlplane/internal/config"
	"moderation-controlplane/internal/httpapi"
	"moderation-controlplane/internal/logger"
	"moderation-controlplane/internal/server"
	"moderation-controlplane/pkg/db"
	"moderation-controlplane/pkg/gen"
	"moderation-controlplane/services/admin"
	"moderation-controlplane/services/apikey"
	"moderation-controlplane/services/bootstrap"
	"moderation-controlplane/services/category"
	"moderation-controlplane/services/moderation"
	"moderation-controlplane/services/service"
	"moderation-controlplane/services/stats"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		db.Module,
		gen.Module,
		service.Module,
		apikey.Module,
		admin.Module,
		moderation.Module,
		category.Module,
		stats.Module,
		httpapi.Module,
		server.Module,
		bootstrap.Module,
		fx.Invoke(migrate),
		fxLogger,
	)

	app.Run()
}

var fxLogger = fx.WithLogger(func(cfg *config.Config, logger *zap.Logger) fxevent.Logger {
	return fxevent.NopLogger
})

func migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&service.WebService{},
		&apikey.APIKey{},
		&admin.User{},
		&admin.Session{},
		&moderation.Request{},
		&moderation.Result{},
		&category.ViolationCategory{},
		&category.Rule{},
	)
}
