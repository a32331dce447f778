// Package bootstrap seeds a demo admin, client service, API key and a
// default TOXICITY category when enabled through configuration. It is meant
// for local development and demos, not production provisioning.
package bootstrap

import (
	"context"

	"moderation-controlplane/internal/config"
	"moderation-controlplane/pkg/security"
	"moderation-controlplane/services/admin"
	"moderation-controlplane/services/apikey"
	"moderation-controlplane/services/category"
	"moderation-controlplane/services/service"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params defines dependencies for the bootstrap hook.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *zap.Logger
	Users     admin.UserRepository
	Admins    *admin.Service
	Services  *service.Service
	Keys      *apikey.Service
	Category  *category.Service
}

var Module = fx.Module("bootstrap", fx.Invoke(Register))

// Register hooks seeding into application startup. Seeding is skipped
// entirely when disabled or when the demo admin already exists, so restarts
// stay quiet.
func Register(p Params) {
	if !p.Config.Bootstrap.Enable {
		return
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return seed(ctx, p)
		},
	})
}

func seed(ctx context.Context, p Params) error {
	cfg := p.Config.Bootstrap

	existing, err := p.Users.GetByUsername(ctx, cfg.AdminUsername)
	if err != nil {
		return err
	}
	if existing != nil {
		p.Logger.Info("bootstrap data already present, skipping", zap.String("username", cfg.AdminUsername))
		return nil
	}

	password := cfg.AdminPassword
	generated := password == ""
	if generated {
		if password, err = security.GenerateBase64Secret(16); err != nil {
			return err
		}
	}

	if _, err := p.Admins.CreateUser(ctx, admin.CreateUserInput{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: password,
		Role:     admin.RoleSuperAdmin,
	}); err != nil {
		return err
	}

	svc, err := p.Services.Create(ctx, service.CreateInput{
		Name:         cfg.ServiceName,
		Description:  "Seeded demo client service",
		ContactEmail: cfg.ServiceContact,
		IsActive:     true,
	})
	if err != nil {
		return err
	}

	plaintext, key, err := p.Keys.Issue(ctx, svc.ID, nil)
	if err != nil {
		return err
	}

	cat, err := p.Category.UpsertCategory(ctx, category.UpsertCategoryInput{
		Type:                 category.TypeToxicity,
		Name:                 "Toxicity",
		Description:          "Toxic, abusive or hateful language",
		AutoRejectThreshold:  0.9,
		HumanReviewThreshold: 0.6,
		IsEnabled:            true,
	})
	if err != nil {
		return err
	}

	if _, err := p.Category.CreateRule(ctx, category.CreateRuleInput{
		CategoryType: cat.Type,
		Action:       category.ActionFlagForReview,
		Conditions:   []string{"default toxicity screen"},
		IsActive:     true,
	}); err != nil {
		return err
	}

	// The plaintext key is recoverable only here; operators copy it from the
	// startup log. A configured admin password is never echoed back, only a
	// generated one the operator has no other way to learn.
	fields := []zap.Field{
		zap.String("admin_username", cfg.AdminUsername),
		zap.String("service_id", svc.ID),
		zap.String("api_key_id", key.ID),
		zap.String("api_key", plaintext),
	}
	if generated {
		fields = append(fields, zap.String("admin_password", password))
	}
	p.Logger.Info("bootstrap data seeded", fields...)

	return nil
}
