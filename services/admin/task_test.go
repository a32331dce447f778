package admin

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moderation-controlplane/services/testutil"
)

func TestHandleSessionCleanupDeletesExpired(t *testing.T) {
	db := testutil.NewTestDB(t, &User{}, &Session{})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := &Service{
		users:      NewUserRepository(db),
		sessions:   NewSessionRepository(db),
		sessionTTL: DefaultSessionTTL,
		logger:     zap.NewNop(),
		node:       node,
		now:        time.Now,
	}

	now := time.Now().UTC()
	require.NoError(t, db.Create(&Session{Token: "expired", UserID: "u1", CreatedAt: now.Add(-8 * 24 * time.Hour), ExpiresAt: now.Add(-24 * time.Hour)}).Error)
	require.NoError(t, db.Create(&Session{Token: "live", UserID: "u1", CreatedAt: now, ExpiresAt: now.Add(24 * time.Hour)}).Error)

	handler := HandleSessionCleanup(svc)
	require.NoError(t, handler(context.Background(), NewSessionCleanupTask()))

	var count int64
	require.NoError(t, db.Model(&Session{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestNextRunTime(t *testing.T) {
	loc := time.UTC

	before := time.Date(2026, 3, 10, 0, 30, 0, 0, loc)
	next := nextRunTime(before, 1, 0)
	require.Equal(t, time.Date(2026, 3, 10, 1, 0, 0, 0, loc), next)

	after := time.Date(2026, 3, 10, 2, 0, 0, 0, loc)
	next = nextRunTime(after, 1, 0)
	require.Equal(t, time.Date(2026, 3, 11, 1, 0, 0, 0, loc), next)
}
