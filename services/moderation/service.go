package moderation

import (
	"context"
	"strings"
	"time"

	"moderation-controlplane/pkg/errutil"
	"moderation-controlplane/services/service"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Service drives the moderation request lifecycle: submission, scoring,
// fetching and manual override.
type Service struct {
	repo   Repository
	scorer Scorer
	logger *zap.Logger
	node   *snowflake.Node
	now    func() time.Time
}

// ServiceParams defines dependencies for Service construction.
type ServiceParams struct {
	fx.In

	Repository Repository
	Scorer     Scorer
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
		scorer: p.Scorer,
		logger: logger,
		node:   p.Node,
		now:    time.Now,
	}
}

// Submit creates a request for the authenticated service, scores its content
// and persists the decision. The request row is durably created before the
// scorer is invoked, so a concurrent fetch during scoring observes
// PROCESSING rather than a missing request. A scorer failure marks the
// request FAILED and is surfaced to the caller, never retried here.
func (s *Service) Submit(ctx context.Context, owner *service.WebService, text string) (*Request, *Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, errutil.ValidationFailed("content_text is required")
	}
	if len(text) > MaxContentLength {
		return nil, nil, errutil.ValidationFailed("content_text exceeds maximum length")
	}

	req := &Request{
		ID:          s.node.Generate().String(),
		ServiceID:   owner.ID,
		Timestamp:   s.now().UTC(),
		ContentType: ContentTypeText,
		ContentText: text,
		Status:      StatusProcessing,
	}

	if err := s.repo.CreateRequest(ctx, req); err != nil {
		s.logger.Error("failed to create moderation request", zap.String("service_id", owner.ID), zap.Error(err))
		return nil, nil, errutil.Internal("failed to create request", errutil.WithErr(err))
	}

	scores, err := s.scorer.Score(ctx, text)
	if err != nil {
		s.logger.Error("scorer call failed", zap.String("request_id", req.ID), zap.Error(err))
		if updErr := s.repo.UpdateRequestStatus(ctx, req.ID, StatusFailed); updErr != nil {
			s.logger.Error("failed to mark request failed", zap.String("request_id", req.ID), zap.Error(updErr))
		}
		req.Status = StatusFailed
		return nil, nil, errutil.ScoringFailed("content scoring failed", errutil.WithErr(err))
	}

	scores[LabelKeywordHeuristic] = keywordScore(text)

	decision, confidence := decide(scores)

	labelScores := make(map[string]interface{}, len(scores))
	for label, score := range scores {
		labelScores[label] = score
	}

	result := &Result{
		ID:              s.node.Generate().String(),
		RequestID:       req.ID,
		Decision:        decision,
		ConfidenceScore: confidence,
		ModelVersion:    s.scorer.Version(),
		LabelScores:     labelScores,
		ProcessedAt:     s.now().UTC(),
	}

	if err := s.repo.CreateResult(ctx, result); err != nil {
		s.logger.Error("failed to persist result", zap.String("request_id", req.ID), zap.Error(err))
		return nil, nil, errutil.Internal("failed to persist result", errutil.WithErr(err))
	}

	if err := s.repo.UpdateRequestStatus(ctx, req.ID, StatusCompleted); err != nil {
		s.logger.Error("failed to complete request", zap.String("request_id", req.ID), zap.Error(err))
		return nil, nil, errutil.Internal("failed to complete request", errutil.WithErr(err))
	}
	req.Status = StatusCompleted

	return req, result, nil
}

// Get returns a request and its result. A request that exists without a
// result is still being scored; callers get ResultPending so they can poll.
func (s *Service) Get(ctx context.Context, id string) (*Request, *Result, error) {
	req, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		s.logger.Error("failed to get request", zap.String("request_id", id), zap.Error(err))
		return nil, nil, errutil.Internal("failed to get request", errutil.WithErr(err))
	}
	if req == nil {
		return nil, nil, errutil.NotFound("request not found")
	}

	result, err := s.repo.GetResultByRequest(ctx, id)
	if err != nil {
		s.logger.Error("failed to get result", zap.String("request_id", id), zap.Error(err))
		return nil, nil, errutil.Internal("failed to get result", errutil.WithErr(err))
	}
	if result == nil {
		return nil, nil, errutil.ResultPending("result not available yet")
	}

	return req, result, nil
}

// ListRequests returns every request in submission order.
func (s *Service) ListRequests(ctx context.Context) ([]Request, error) {
	requests, err := s.repo.ListRequests(ctx)
	if err != nil {
		s.logger.Error("failed to list requests", zap.Error(err))
		return nil, errutil.Internal("failed to list requests", errutil.WithErr(err))
	}
	return requests, nil
}

// OverrideInput carries a manual decision change. Nil optional fields are
// left untouched on the stored result.
type OverrideInput struct {
	Decision        Decision
	ConfidenceScore *float64
	ModelVersion    *string
}

// Override rewrites the supplied fields on an existing result. It never
// changes the request's status and never creates a result where none exists.
func (s *Service) Override(ctx context.Context, requestID string, in OverrideInput) (*Request, *Result, error) {
	if !in.Decision.Valid() {
		return nil, nil, errutil.ValidationFailed("unknown decision")
	}
	if in.ConfidenceScore != nil && (*in.ConfidenceScore < 0 || *in.ConfidenceScore > 1) {
		return nil, nil, errutil.ValidationFailed("confidence_score must be in [0,1]")
	}

	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		s.logger.Error("failed to get request", zap.String("request_id", requestID), zap.Error(err))
		return nil, nil, errutil.Internal("failed to override result", errutil.WithErr(err))
	}
	if req == nil {
		return nil, nil, errutil.NotFound("request not found")
	}

	result, err := s.repo.GetResultByRequest(ctx, requestID)
	if err != nil {
		s.logger.Error("failed to get result", zap.String("request_id", requestID), zap.Error(err))
		return nil, nil, errutil.Internal("failed to override result", errutil.WithErr(err))
	}
	if result == nil {
		return nil, nil, errutil.NotFound("result not available yet")
	}

	fields := map[string]any{"decision": in.Decision}
	result.Decision = in.Decision
	if in.ConfidenceScore != nil {
		fields["confidence_score"] = *in.ConfidenceScore
		result.ConfidenceScore = *in.ConfidenceScore
	}
	if in.ModelVersion != nil {
		fields["model_version"] = *in.ModelVersion
		result.ModelVersion = *in.ModelVersion
	}

	if err := s.repo.UpdateResult(ctx, requestID, fields); err != nil {
		s.logger.Error("failed to update result", zap.String("request_id", requestID), zap.Error(err))
		return nil, nil, errutil.Internal("failed to override result", errutil.WithErr(err))
	}

	return req, result, nil
}
