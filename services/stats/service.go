package stats

import (
	"context"

	"moderation-controlplane/pkg/errutil"
	"moderation-controlplane/services/moderation"
	"moderation-controlplane/services/service"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Service computes per-service moderation statistics.
type Service struct {
	repo     Repository
	services service.Repository
	logger   *zap.Logger
}

// ServiceParams defines dependencies for Service construction.
type ServiceParams struct {
	fx.In

	Repository        Repository
	ServiceRepository service.Repository
	Logger            *zap.Logger
}

// NewService constructs a new Service instance.
func NewService(p ServiceParams) *Service {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     p.Repository,
		services: p.ServiceRepository,
		logger:   logger,
	}
}

// Compute scans the store and aggregates the service's request and decision
// counts. The request counts and decision counts come from separate queries,
// so a request completing mid-scan can leave them momentarily out of step.
func (s *Service) Compute(ctx context.Context, serviceID string) (*Statistics, error) {
	owner, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		s.logger.Error("failed to load service", zap.String("service_id", serviceID), zap.Error(err))
		return nil, errutil.Internal("failed to compute statistics", errutil.WithErr(err))
	}
	if owner == nil {
		return nil, errutil.NotFound("service not found")
	}

	out := &Statistics{ServiceID: serviceID}

	if out.TotalRequests, err = s.repo.CountRequests(ctx, serviceID); err != nil {
		return nil, s.countErr(serviceID, err)
	}
	if out.PendingRequests, err = s.repo.CountRequestsByStatus(ctx, serviceID, moderation.StatusPending); err != nil {
		return nil, s.countErr(serviceID, err)
	}
	if out.TextRequests, err = s.repo.CountRequestsByContentType(ctx, serviceID, moderation.ContentTypeText); err != nil {
		return nil, s.countErr(serviceID, err)
	}
	if out.ApprovedCount, err = s.repo.CountResultsByDecision(ctx, serviceID, moderation.DecisionApproved); err != nil {
		return nil, s.countErr(serviceID, err)
	}
	if out.RejectedCount, err = s.repo.CountResultsByDecision(ctx, serviceID, moderation.DecisionRejected); err != nil {
		return nil, s.countErr(serviceID, err)
	}
	if out.HumanReviewCount, err = s.repo.CountResultsByDecision(ctx, serviceID, moderation.DecisionHumanReview); err != nil {
		return nil, s.countErr(serviceID, err)
	}

	return out, nil
}

func (s *Service) countErr(serviceID string, err error) error {
	s.logger.Error("failed to compute statistics", zap.String("service_id", serviceID), zap.Error(err))
	return errutil.Internal("failed to compute statistics", errutil.WithErr(err))
}
