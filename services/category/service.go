package category

import (
	"context"
	"strings"

	"moderation-controlplane/pkg/errutil"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Service manages violation categories and their moderation rules.
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

// UpsertCategoryInput carries the configurable fields of a category. Each
// category type exists at most once, so writes are keyed by type.
type UpsertCategoryInput struct {
	Type                 CategoryType
	Name                 string
	Description          string
	AutoRejectThreshold  float64
	HumanReviewThreshold float64
	IsEnabled            bool
}

// UpsertCategory creates or replaces the category for the given type.
func (s *Service) UpsertCategory(ctx context.Context, in UpsertCategoryInput) (*ViolationCategory, error) {
	if !in.Type.Valid() {
		return nil, errutil.ValidationFailed("unknown category type")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, errutil.ValidationFailed("name is required")
	}
	if in.AutoRejectThreshold < 0 || in.AutoRejectThreshold > 1 ||
		in.HumanReviewThreshold < 0 || in.HumanReviewThreshold > 1 {
		return nil, errutil.ValidationFailed("thresholds must be in [0,1]")
	}

	existing, err := s.repo.GetCategoryByType(ctx, in.Type)
	if err != nil {
		s.logger.Error("failed to load category", zap.String("category_type", string(in.Type)), zap.Error(err))
		return nil, errutil.Internal("failed to upsert category", errutil.WithErr(err))
	}

	c := &ViolationCategory{
		Type:                 in.Type,
		Name:                 in.Name,
		Description:          in.Description,
		AutoRejectThreshold:  in.AutoRejectThreshold,
		HumanReviewThreshold: in.HumanReviewThreshold,
		IsEnabled:            in.IsEnabled,
	}
	if existing != nil {
		c.ID = existing.ID
	} else {
		c.ID = s.node.Generate().String()
	}

	if err := s.repo.SaveCategory(ctx, c); err != nil {
		s.logger.Error("failed to save category", zap.String("category_type", string(in.Type)), zap.Error(err))
		return nil, errutil.Internal("failed to upsert category", errutil.WithErr(err))
	}

	return c, nil
}

// ListCategories returns all configured categories.
func (s *Service) ListCategories(ctx context.Context) ([]ViolationCategory, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.logger.Error("failed to list categories", zap.Error(err))
		return nil, errutil.Internal("failed to list categories", errutil.WithErr(err))
	}
	return categories, nil
}

// CreateRuleInput carries the fields required to create a moderation rule.
type CreateRuleInput struct {
	CategoryType CategoryType
	Action       RuleAction
	Priority     *int
	Conditions   []string
	IsActive     bool
}

// CreateRule attaches a rule to an existing, enabled category. Rules against
// missing or disabled categories are rejected rather than silently parked.
func (s *Service) CreateRule(ctx context.Context, in CreateRuleInput) (*Rule, error) {
	if !in.CategoryType.Valid() {
		return nil, errutil.ValidationFailed("unknown category type")
	}
	if !in.Action.Valid() {
		return nil, errutil.ValidationFailed("unknown rule action")
	}

	cat, err := s.repo.GetCategoryByType(ctx, in.CategoryType)
	if err != nil {
		s.logger.Error("failed to load category", zap.String("category_type", string(in.CategoryType)), zap.Error(err))
		return nil, errutil.Internal("failed to create rule", errutil.WithErr(err))
	}
	if cat == nil {
		return nil, errutil.ValidationFailed("category does not exist")
	}
	if !cat.IsEnabled {
		return nil, errutil.ValidationFailed("category is disabled")
	}

	priority := DefaultRulePriority
	if in.Priority != nil {
		priority = *in.Priority
	}

	rule := &Rule{
		ID:         s.node.Generate().String(),
		CategoryID: cat.ID,
		Action:     in.Action,
		Priority:   priority,
		Conditions: in.Conditions,
		IsActive:   in.IsActive,
	}

	if err := s.repo.CreateRule(ctx, rule); err != nil {
		s.logger.Error("failed to create rule", zap.String("category_id", cat.ID), zap.Error(err))
		return nil, errutil.Internal("failed to create rule", errutil.WithErr(err))
	}

	return rule, nil
}

// ListRules returns all rules ordered by priority.
func (s *Service) ListRules(ctx context.Context) ([]Rule, error) {
	rules, err := s.repo.ListRules(ctx)
	if err != nil {
		s.logger.Error("failed to list rules", zap.Error(err))
		return nil, errutil.Internal("failed to list rules", errutil.WithErr(err))
	}
	return rules, nil
}
