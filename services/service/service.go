package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"moderation-controlplane/pkg/errutil"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service manages the registry of client services.
type Service struct {
	repo   Repository
	logger *zap.Logger
	node   *snowflake.Node
}

// ServiceParams defines dependencies for Service construction.
type ServiceParams struct {
	fx.In

	Repository Repository
	Logger     *zap.Logger
	Node       *snowflake.Node
}

// NewService constructs a new Service instance.
func NewService(p ServiceParams) *Service {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   p.Repository,
		logger: logger,
		node:   p.Node,
	}
}

// CreateInput carries the fields required to register a client service.
type CreateInput struct {
	Name         string
	Description  string
	ContactEmail string
	IsActive     bool
}

// Create registers a new client service.
func (s *Service) Create(ctx context.Context, in CreateInput) (*WebService, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errutil.ValidationFailed("name is required")
	}
	if strings.TrimSpace(in.ContactEmail) == "" {
		return nil, errutil.ValidationFailed("contact_email is required")
	}

	svc := &WebService{
		ID:               s.node.Generate().String(),
		Name:             in.Name,
		Description:      in.Description,
		ContactEmail:     in.ContactEmail,
		RegistrationDate: time.Now().UTC(),
		IsActive:         in.IsActive,
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		s.logger.Error("failed to create service", zap.Error(err))
		return nil, errutil.Internal("failed to create service", errutil.WithErr(err))
	}

	return svc, nil
}

// Get returns a registered service by id.
func (s *Service) Get(ctx context.Context, id string) (*WebService, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get service", zap.String("service_id", id), zap.Error(err))
		return nil, errutil.Internal("failed to get service", errutil.WithErr(err))
	}
	if svc == nil {
		return nil, errutil.NotFound("service not found")
	}
	return svc, nil
}

// List returns all registered services.
func (s *Service) List(ctx context.Context) ([]WebService, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list services", zap.Error(err))
		return nil, errutil.Internal("failed to list services", errutil.WithErr(err))
	}
	return services, nil
}

// SetActive toggles a service's active flag. Deactivating a service makes all
// of its API keys fail authentication; the key rows are left untouched.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (*WebService, error) {
	if err := s.repo.SetActive(ctx, id, active); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errutil.NotFound("service not found")
	} else if err != nil {
		s.logger.Error("failed to update service", zap.String("service_id", id), zap.Error(err))
		return nil, errutil.Internal("failed to update service", errutil.WithErr(err))
	}
	return s.Get(ctx, id)
}
