package apikey

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moderation-controlplane/pkg/errutil"
	"moderation-controlplane/pkg/security"
	"moderation-controlplane/services/service"
	"moderation-controlplane/services/testutil"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := testutil.NewTestDB(t, &APIKey{}, &service.WebService{})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return &Service{
		repo:     NewRepository(db),
		services: service.NewRepository(db),
		logger:   zap.NewNop(),
		node:     node,
		now:      time.Now,
	}, db
}

func registerService(t *testing.T, db *gorm.DB, id string, active bool) {
	t.Helper()
	require.NoError(t, db.Create(&service.WebService{
		ID:               id,
		Name:             "Test Service",
		ContactEmail:     "owner@example.com",
		RegistrationDate: time.Now().UTC(),
		IsActive:         active,
	}).Error)
}

func TestIssueAndAuthenticate(t *testing.T) {
	svc, db := newTestService(t)
	registerService(t, db, "svc-1", true)

	plaintext, key, err := svc.Issue(context.Background(), "svc-1", nil)
	require.NoError(t, err)
	require.Len(t, key.KeyPrefix, PrefixLength)
	require.Equal(t, plaintext[:PrefixLength], key.KeyPrefix)
	require.NotContains(t, key.SecretHash, plaintext)

	owner, err := svc.Authenticate(context.Background(), plaintext)
	require.NoError(t, err)
	require.Equal(t, "svc-1", owner.ID)

	stored, err := svc.repo.GetByID(context.Background(), key.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastUsed)
}

func TestAuthenticateRejectsMutatedKey(t *testing.T) {
	svc, db := newTestService(t)
	registerService(t, db, "svc-1", true)

	plaintext, _, err := svc.Issue(context.Background(), "svc-1", nil)
	require.NoError(t, err)

	// Same prefix, different tail: the candidate is found but the hash check
	// must reject it.
	mutated := []byte(plaintext)
	last := len(mutated) - 1
	if mutated[last] == 'A' {
		mutated[last] = 'B'
	} else {
		mutated[last] = 'A'
	}

	_, err = svc.Authenticate(context.Background(), string(mutated))
	require.True(t, errutil.HasStatus(err, errutil.StatusUnauthorized))
}

func TestAuthenticateCollidingPrefixes(t *testing.T) {
	svc, db := newTestService(t)
	registerService(t, db, "svc-1", true)
	registerService(t, db, "svc-2", true)

	// Issuance cannot produce a shared prefix on demand, so insert two keys
	// with identical prefixes directly. Each plaintext must still resolve to
	// its own service through the hash check.
	plainA := "AAAAAAAAsecret-for-service-one"
	plainB := "AAAAAAAAsecret-for-service-two"

	hashA, err := security.HashArgon2(plainA)
	require.NoError(t, err)
	hashB, err := security.HashArgon2(plainB)
	require.NoError(t, err)

	require.NoError(t, db.Create(&APIKey{
		ID: "k1", ServiceID: "svc-1", SecretHash: hashA,
		KeyPrefix: plainA[:PrefixLength], CreatedAt: time.Now().UTC(), IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&APIKey{
		ID: "k2", ServiceID: "svc-2", SecretHash: hashB,
		KeyPrefix: plainB[:PrefixLength], CreatedAt: time.Now().UTC(), IsActive: true,
	}).Error)

	owner, err := svc.Authenticate(context.Background(), plainA)
	require.NoError(t, err)
	require.Equal(t, "svc-1", owner.ID)

	owner, err = svc.Authenticate(context.Background(), plainB)
	require.NoError(t, err)
	require.Equal(t, "svc-2", owner.ID)

	// Shared prefix with an unknown tail matches neither key.
	_, err = svc.Authenticate(context.Background(), "AAAAAAAAsecret-for-nobody")
	require.True(t, errutil.HasStatus(err, errutil.StatusUnauthorized))
}

func TestAuthenticateRejectsShortKey(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "short")
	require.True(t, errutil.HasStatus(err, errutil.StatusUnauthorized))
}

func TestAuthenticateRejectsExpiredKey(t *testing.T) {
	svc, db := newTestService(t)
	registerService(t, db, "svc-1", true)

	expired := time.Now().UTC().Add(-time.Minute)
	plaintext, _, err := svc.Issue(context.Background(), "svc-1", &expired)
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), plaintext)
	require.True(t, errutil.HasStatus(err, errutil.StatusUnauthorized))
}

func TestAuthenticateRejectsDeactivatedKey(t *testing.T) {
	svc, db := newTestService(t)
	registerService(t, db, "svc-1", true)

	plaintext, key, err := svc.Issue(context.Background(), "svc-1", nil)
	require.NoError(t, err)

	_, err = svc.SetActive(context.Background(), key.ID, false)
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), plaintext)
	require.True(t, errutil.HasStatus(err, errutil.StatusUnauthorized))
}

func TestAuthenticateRejectsInactiveService(t *testing.T) {
	svc, db := newTestService(t)
	registerService(t, db, "svc-1", true)

	plaintext, _, err := svc.Issue(context.Background(), "svc-1", nil)
	require.NoError(t, err)

	require.NoError(t, db.Model(&service.WebService{}).
		Where("service_id = ?", "svc-1").
		Update("is_active", false).Error)

	_, err = svc.Authenticate(context.Background(), plaintext)
	require.True(t, errutil.HasStatus(err, errutil.StatusUnauthorized))
}

func TestIssueUnknownServiceFails(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Issue(context.Background(), "missing", nil)
	require.True(t, errutil.HasStatus(err, errutil.StatusNotFound))
}

func TestIssueInactiveServiceFails(t *testing.T) {
	svc, db := newTestService(t)
	registerService(t, db, "svc-1", false)

	_, _, err := svc.Issue(context.Background(), "svc-1", nil)
	require.True(t, errutil.HasStatus(err, errutil.StatusNotFound))
}

func TestSetActiveUnknownKey(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SetActive(context.Background(), "missing", false)
	require.True(t, errutil.HasStatus(err, errutil.StatusNotFound))
}

func TestListReturnsServiceKeys(t *testing.T) {
	svc, db := newTestService(t)
	registerService(t, db, "svc-1", true)
	registerService(t, db, "svc-2", true)

	_, _, err := svc.Issue(context.Background(), "svc-1", nil)
	require.NoError(t, err)
	_, _, err = svc.Issue(context.Background(), "svc-1", nil)
	require.NoError(t, err)
	_, _, err = svc.Issue(context.Background(), "svc-2", nil)
	require.NoError(t, err)

	keys, err := svc.List(context.Background(), "svc-1")
	require.NoError(t, err)
	require.Len(t, keys, 2)
	for _, key := range keys {
		require.Equal(t, "svc-1", key.ServiceID)
	}
}
