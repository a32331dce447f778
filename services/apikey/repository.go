package apikey

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository describes database operations available for API keys.
type Repository interface {
	Create(ctx context.Context, key *APIKey) error
	GetByID(ctx context.Context, id string) (*APIKey, error)
	ListByService(ctx context.Context, serviceID string) ([]APIKey, error)
	// FindActiveByPrefix returns every active key sharing the given plaintext
	// prefix. Prefixes are not unique, so callers must check all candidates.
	FindActiveByPrefix(ctx context.Context, prefix string) ([]APIKey, error)
	SetActive(ctx context.Context, id string, active bool) error
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository returns a gorm backed Repository implementation.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, key *APIKey) error {
	return r.db.WithContext(ctx).Create(key).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id string) (*APIKey, error) {
	var key APIKey
	err := r.db.WithContext(ctx).Where("key_id = ?", id).First(&key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &key, nil
}

func (r *gormRepository) ListByService(ctx context.Context, serviceID string) ([]APIKey, error) {
	var keys []APIKey
	err := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("created_at ASC").
		Find(&keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *gormRepository) FindActiveByPrefix(ctx context.Context, prefix string) ([]APIKey, error) {
	var keys []APIKey
	err := r.db.WithContext(ctx).
		Where("key_prefix = ? AND is_active = ?", prefix, true).
		Find(&keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *gormRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&APIKey{}).
		Where("key_id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&APIKey{}).
		Where("key_id = ?", id).
		Update("last_used", at).Error
}
