package apikey

import (
	"context"
	"errors"
	"time"

	"moderation-controlplane/pkg/errutil"
	"moderation-controlplane/pkg/security"
	"moderation-controlplane/services/service"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const secretBytes = 32

// Service issues API keys and authenticates presented plaintext keys against
// their stored hashes.
type Service struct {
	repo     Repository
	services service.Repository
	logger   *zap.Logger
	node     *snowflake.Node
	now      func() time.Time
}

// ServiceParams defines dependencies for Service construction.
type ServiceParams struct {
	fx.In

	Repository Repository
	Services   service.Repository
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
		repo:     p.Repository,
		services: p.Services,
		logger:   logger,
		node:     p.Node,
		now:      time.Now,
	}
}

// Issue mints a new key for the given service. The plaintext is returned
// exactly once; only its argon2 hash and 8-character prefix are persisted.
func (s *Service) Issue(ctx context.Context, serviceID string, expiresAt *time.Time) (string, *APIKey, error) {
	owner, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		s.logger.Error("failed to load service for key issuance", zap.String("service_id", serviceID), zap.Error(err))
		return "", nil, errutil.Internal("failed to issue api key", errutil.WithErr(err))
	}
	if owner == nil || !owner.IsActive {
		return "", nil, errutil.NotFound("service not found")
	}

	plaintext, err := security.GenerateBase64Secret(secretBytes)
	if err != nil {
		return "", nil, errutil.Internal("failed to generate api key secret", errutil.WithErr(err))
	}

	hash, err := security.HashArgon2(plaintext)
	if err != nil {
		return "", nil, errutil.Internal("failed to hash api key secret", errutil.WithErr(err))
	}

	key := &APIKey{
		ID:         s.node.Generate().String(),
		ServiceID:  serviceID,
		SecretHash: hash,
		KeyPrefix:  plaintext[:PrefixLength],
		CreatedAt:  s.now().UTC(),
		ExpiresAt:  expiresAt,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, key); err != nil {
		s.logger.Error("failed to persist api key", zap.String("service_id", serviceID), zap.Error(err))
		return "", nil, errutil.Internal("failed to issue api key", errutil.WithErr(err))
	}

	return plaintext, key, nil
}

// Authenticate resolves a presented plaintext key to its owning active
// service. The prefix narrows the candidate set; every candidate's hash is
// verified because prefixes may collide across services.
func (s *Service) Authenticate(ctx context.Context, plaintext string) (*service.WebService, error) {
	if len(plaintext) < PrefixLength {
		return nil, errutil.Unauthorized("invalid api key")
	}

	candidates, err := s.repo.FindActiveByPrefix(ctx, plaintext[:PrefixLength])
	if err != nil {
		s.logger.Error("failed to scan api keys by prefix", zap.Error(err))
		return nil, errutil.Internal("failed to authenticate api key", errutil.WithErr(err))
	}

	for i := range candidates {
		key := &candidates[i]
		if !security.VerifyArgon2(plaintext, key.SecretHash) {
			continue
		}

		now := s.now().UTC()
		if key.ExpiresAt != nil && !key.ExpiresAt.After(now) {
			break
		}

		owner, err := s.services.GetByID(ctx, key.ServiceID)
		if err != nil {
			s.logger.Error("failed to load owning service", zap.String("key_id", key.ID), zap.Error(err))
			return nil, errutil.Internal("failed to authenticate api key", errutil.WithErr(err))
		}
		if owner == nil || !owner.IsActive {
			break
		}

		// Best effort: a stale last-used timestamp must never deny a valid key.
		if err := s.repo.TouchLastUsed(ctx, key.ID, now); err != nil {
			s.logger.Warn("failed to update key last_used", zap.String("key_id", key.ID), zap.Error(err))
		}

		return owner, nil
	}

	return nil, errutil.Unauthorized("invalid api key")
}

// SetActive toggles a key's active flag.
func (s *Service) SetActive(ctx context.Context, keyID string, active bool) (*APIKey, error) {
	if err := s.repo.SetActive(ctx, keyID, active); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errutil.NotFound("api key not found")
	} else if err != nil {
		s.logger.Error("failed to update api key", zap.String("key_id", keyID), zap.Error(err))
		return nil, errutil.Internal("failed to update api key", errutil.WithErr(err))
	}

	key, err := s.repo.GetByID(ctx, keyID)
	if err != nil {
		return nil, errutil.Internal("failed to load api key", errutil.WithErr(err))
	}
	if key == nil {
		return nil, errutil.NotFound("api key not found")
	}
	return key, nil
}

// List returns key metadata for a service. Hashes stay internal to this
// package boundary; handlers expose prefix and lifecycle fields only.
func (s *Service) List(ctx context.Context, serviceID string) ([]APIKey, error) {
	keys, err := s.repo.ListByService(ctx, serviceID)
	if err != nil {
		s.logger.Error("failed to list api keys", zap.String("service_id", serviceID), zap.Error(err))
		return nil, errutil.Internal("failed to list api keys", errutil.WithErr(err))
	}
	return keys, nil
}
