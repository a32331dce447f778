package category

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moderation-controlplane/pkg/errutil"
	"moderation-controlplane/services/testutil"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	db := testutil.NewTestDB(t, &ViolationCategory{}, &Rule{})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return &Service{
		repo:   NewRepository(db),
		logger: zap.NewNop(),
		node:   node,
	}
}

func upsertToxicity(t *testing.T, svc *Service, enabled bool) *ViolationCategory {
	t.Helper()
	cat, err := svc.UpsertCategory(context.Background(), UpsertCategoryInput{
		Type:                 TypeToxicity,
		Name:                 "Toxicity",
		AutoRejectThreshold:  0.9,
		HumanReviewThreshold: 0.6,
		IsEnabled:            enabled,
	})
	require.NoError(t, err)
	return cat
}

func TestUpsertCategoryCreatesThenReplaces(t *testing.T) {
	svc := newTestService(t)

	created := upsertToxicity(t, svc, true)
	require.NotEmpty(t, created.ID)

	updated, err := svc.UpsertCategory(context.Background(), UpsertCategoryInput{
		Type:                 TypeToxicity,
		Name:                 "Toxic content",
		AutoRejectThreshold:  0.95,
		HumanReviewThreshold: 0.5,
		IsEnabled:            true,
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, 0.95, updated.AutoRejectThreshold)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.Equal(t, "Toxic content", categories[0].Name)
}

func TestUpsertCategoryValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.UpsertCategory(context.Background(), UpsertCategoryInput{Type: "GENERIC", Name: "x"})
	require.True(t, errutil.HasStatus(err, errutil.StatusValidationFailed))

	_, err = svc.UpsertCategory(context.Background(), UpsertCategoryInput{Type: TypeSpam, Name: " "})
	require.True(t, errutil.HasStatus(err, errutil.StatusValidationFailed))

	_, err = svc.UpsertCategory(context.Background(), UpsertCategoryInput{
		Type: TypeSpam, Name: "Spam", AutoRejectThreshold: 1.5,
	})
	require.True(t, errutil.HasStatus(err, errutil.StatusValidationFailed))
}

func TestCreateRuleDefaultsPriority(t *testing.T) {
	svc := newTestService(t)
	cat := upsertToxicity(t, svc, true)

	rule, err := svc.CreateRule(context.Background(), CreateRuleInput{
		CategoryType: TypeToxicity,
		Action:       ActionFlagForReview,
		Conditions:   []string{"score above review threshold"},
		IsActive:     true,
	})
	require.NoError(t, err)
	require.Equal(t, cat.ID, rule.CategoryID)
	require.Equal(t, DefaultRulePriority, rule.Priority)

	priority := 5
	rule, err = svc.CreateRule(context.Background(), CreateRuleInput{
		CategoryType: TypeToxicity,
		Action:       ActionAutoReject,
		Priority:     &priority,
		IsActive:     true,
	})
	require.NoError(t, err)
	require.Equal(t, 5, rule.Priority)

	rules, err := svc.ListRules(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 2)
	require.Equal(t, ActionAutoReject, rules[0].Action)
}

func TestCreateRuleMissingCategory(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateRule(context.Background(), CreateRuleInput{
		CategoryType: TypeSpam,
		Action:       ActionAutoReject,
	})
	require.True(t, errutil.HasStatus(err, errutil.StatusValidationFailed))
}

func TestCreateRuleDisabledCategory(t *testing.T) {
	svc := newTestService(t)
	upsertToxicity(t, svc, false)

	_, err := svc.CreateRule(context.Background(), CreateRuleInput{
		CategoryType: TypeToxicity,
		Action:       ActionAutoReject,
	})
	require.True(t, errutil.HasStatus(err, errutil.StatusValidationFailed))
}

func TestCreateRuleUnknownAction(t *testing.T) {
	svc := newTestService(t)
	upsertToxicity(t, svc, true)

	_, err := svc.CreateRule(context.Background(), CreateRuleInput{
		CategoryType: TypeToxicity,
		Action:       "ESCALATE",
	})
	require.True(t, errutil.HasStatus(err, errutil.StatusValidationFailed))
}
