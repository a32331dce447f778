package bootstrap

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"moderation-controlplane/internal/config"
	"moderation-controlplane/services/admin"
	"moderation-controlplane/services/apikey"
	"moderation-controlplane/services/category"
	"moderation-controlplane/services/service"
	"moderation-controlplane/services/testutil"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newTestParams(t *testing.T, cfg *config.Config, logger *zap.Logger) (Params, *gorm.DB) {
	t.Helper()

	db := testutil.NewTestDB(t,
		&admin.User{},
		&admin.Session{},
		&service.WebService{},
		&apikey.APIKey{},
		&category.ViolationCategory{},
		&category.Rule{},
	)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	users := admin.NewUserRepository(db)
	services := service.NewService(service.ServiceParams{
		Repository: service.NewRepository(db),
		Logger:     logger,
		Node:       node,
	})

	return Params{
		Config: cfg,
		Logger: logger,
		Users:  users,
		Admins: admin.NewService(admin.ServiceParams{
			Users:    users,
			Sessions: admin.NewSessionRepository(db),
			Config:   cfg,
			Logger:   logger,
			Node:     node,
		}),
		Services: services,
		Keys: apikey.NewService(apikey.ServiceParams{
			Repository: apikey.NewRepository(db),
			Services:   service.NewRepository(db),
			Logger:     logger,
			Node:       node,
		}),
		Category: category.NewService(category.ServiceParams{
			Repository: category.NewRepository(db),
			Logger:     logger,
			Node:       node,
		}),
	}, db
}

func bootstrapConfig(password string) *config.Config {
	cfg := &config.Config{}
	cfg.Bootstrap.Enable = true
	cfg.Bootstrap.AdminUsername = "moderator"
	cfg.Bootstrap.AdminPassword = password
	cfg.Bootstrap.AdminEmail = "moderator@example.com"
	cfg.Bootstrap.ServiceName = "Demo Service"
	cfg.Bootstrap.ServiceContact = "demo@example.com"
	return cfg
}

func seededEntry(t *testing.T, logs *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	entries := logs.FilterMessage("bootstrap data seeded").All()
	require.Len(t, entries, 1)
	return entries[0]
}

func TestSeedDoesNotLogConfiguredPassword(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	p, _ := newTestParams(t, bootstrapConfig("operator-chosen-pw"), logger)
	require.NoError(t, seed(context.Background(), p))

	fields := seededEntry(t, logs).ContextMap()
	require.NotContains(t, fields, "admin_password")
	require.Contains(t, fields, "api_key")

	// The configured password still works.
	_, err := p.Admins.Login(context.Background(), "moderator", "operator-chosen-pw")
	require.NoError(t, err)
}

func TestSeedLogsGeneratedPassword(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	p, _ := newTestParams(t, bootstrapConfig(""), logger)
	require.NoError(t, seed(context.Background(), p))

	fields := seededEntry(t, logs).ContextMap()
	require.Contains(t, fields, "admin_password")

	password, ok := fields["admin_password"].(string)
	require.True(t, ok)
	_, err := p.Admins.Login(context.Background(), "moderator", password)
	require.NoError(t, err)
}

func TestSeedSkipsWhenAdminExists(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	p, db := newTestParams(t, bootstrapConfig("pw-pw-pw-pw"), logger)
	require.NoError(t, seed(context.Background(), p))
	require.NoError(t, seed(context.Background(), p))

	require.Len(t, logs.FilterMessage("bootstrap data seeded").All(), 1)

	var count int64
	require.NoError(t, db.Model(&service.WebService{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
