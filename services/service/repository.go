package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository describes database operations available for registered services.
type Repository interface {
	Create(ctx context.Context, svc *WebService) error
	GetByID(ctx context.Context, id string) (*WebService, error)
	List(ctx context.Context) ([]WebService, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository returns a gorm backed Repository implementation.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, svc *WebService) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id string) (*WebService, error) {
	var svc WebService
	err := r.db.WithContext(ctx).Where("service_id = ?", id).First(&svc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *gormRepository) List(ctx context.Context) ([]WebService, error) {
	var services []WebService
	if err := r.db.WithContext(ctx).Order("registration_date ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *gormRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&WebService{}).
		Where("service_id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
