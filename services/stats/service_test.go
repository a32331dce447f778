package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moderation-controlplane/pkg/errutil"
	"moderation-controlplane/services/moderation"
	"moderation-controlplane/services/service"
	"moderation-controlplane/services/testutil"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := testutil.NewTestDB(t,
		&service.WebService{},
		&moderation.Request{},
		&moderation.Result{},
	)

	return &Service{
		repo:     NewRepository(db),
		services: service.NewRepository(db),
		logger:   zap.NewNop(),
	}, db
}

func seedFixture(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&service.WebService{
		ID: "svc-1", Name: "One", ContactEmail: "one@example.com", IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&service.WebService{
		ID: "svc-2", Name: "Two", ContactEmail: "two@example.com", IsActive: true,
	}).Error)

	now := time.Now().UTC()
	requests := []moderation.Request{
		{ID: "r1", ServiceID: "svc-1", Timestamp: now, ContentType: moderation.ContentTypeText, ContentText: "a", Status: moderation.StatusCompleted},
		{ID: "r2", ServiceID: "svc-1", Timestamp: now, ContentType: moderation.ContentTypeText, ContentText: "b", Status: moderation.StatusCompleted},
		{ID: "r3", ServiceID: "svc-1", Timestamp: now, ContentType: moderation.ContentTypeText, ContentText: "c", Status: moderation.StatusCompleted},
		{ID: "r4", ServiceID: "svc-1", Timestamp: now, ContentType: moderation.ContentTypeText, ContentText: "d", Status: moderation.StatusPending},
		// Other service, must not leak into svc-1 numbers.
		{ID: "r5", ServiceID: "svc-2", Timestamp: now, ContentType: moderation.ContentTypeText, ContentText: "e", Status: moderation.StatusCompleted},
	}
	for i := range requests {
		require.NoError(t, db.Create(&requests[i]).Error)
	}

	results := []moderation.Result{
		{ID: "res1", RequestID: "r1", Decision: moderation.DecisionApproved, ProcessedAt: now},
		{ID: "res2", RequestID: "r2", Decision: moderation.DecisionApproved, ProcessedAt: now},
		{ID: "res3", RequestID: "r3", Decision: moderation.DecisionRejected, ProcessedAt: now},
		{ID: "res5", RequestID: "r5", Decision: moderation.DecisionHumanReview, ProcessedAt: now},
	}
	for i := range results {
		require.NoError(t, db.Create(&results[i]).Error)
	}
}

func TestComputeAggregates(t *testing.T) {
	svc, db := newTestService(t)
	seedFixture(t, db)

	out, err := svc.Compute(context.Background(), "svc-1")
	require.NoError(t, err)

	require.Equal(t, "svc-1", out.ServiceID)
	require.EqualValues(t, 4, out.TotalRequests)
	require.EqualValues(t, 1, out.PendingRequests)
	require.EqualValues(t, 4, out.TextRequests)
	require.EqualValues(t, 2, out.ApprovedCount)
	require.EqualValues(t, 1, out.RejectedCount)
	require.EqualValues(t, 0, out.HumanReviewCount)
}

func TestComputeEmptyService(t *testing.T) {
	svc, db := newTestService(t)
	require.NoError(t, db.Create(&service.WebService{
		ID: "svc-1", Name: "One", ContactEmail: "one@example.com", IsActive: true,
	}).Error)

	out, err := svc.Compute(context.Background(), "svc-1")
	require.NoError(t, err)
	require.EqualValues(t, 0, out.TotalRequests)
	require.EqualValues(t, 0, out.ApprovedCount)
}

func TestComputeUnknownService(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Compute(context.Background(), "missing")
	require.True(t, errutil.HasStatus(err, errutil.StatusNotFound))
}
