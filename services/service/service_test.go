package service

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

	db := testutil.NewTestDB(t, &WebService{})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return &Service{
		repo:   NewRepository(db),
		logger: zap.NewNop(),
		node:   node,
	}
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		Name:         "Blog",
		Description:  "Comment moderation",
		ContactEmail: "ops@example.com",
		IsActive:     true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Blog", got.Name)
	require.True(t, got.IsActive)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{Name: " ", ContactEmail: "a@b.c"})
	require.True(t, errutil.HasStatus(err, errutil.StatusValidationFailed))

	_, err = svc.Create(context.Background(), CreateInput{Name: "Blog", ContactEmail: ""})
	require.True(t, errutil.HasStatus(err, errutil.StatusValidationFailed))
}

func TestGetUnknownService(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "missing")
	require.True(t, errutil.HasStatus(err, errutil.StatusNotFound))
}

func TestSetActiveTogglesFlag(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		Name: "Blog", ContactEmail: "ops@example.com", IsActive: true,
	})
	require.NoError(t, err)

	updated, err := svc.SetActive(context.Background(), created.ID, false)
	require.NoError(t, err)
	require.False(t, updated.IsActive)
}

func TestSetActiveUnknownService(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SetActive(context.Background(), "missing", false)
	require.True(t, errutil.HasStatus(err, errutil.StatusNotFound))
}

func TestListOrdersByRegistration(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{Name: "First", ContactEmail: "a@example.com", IsActive: true})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateInput{Name: "Second", ContactEmail: "b@example.com", IsActive: true})
	require.NoError(t, err)

	services, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 2)
}
