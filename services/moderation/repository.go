package moderation

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository describes database operations available for moderation requests
// and their results.
type Repository interface {
	CreateRequest(ctx context.Context, req *Request) error
	GetRequest(ctx context.Context, id string) (*Request, error)
	ListRequests(ctx context.Context) ([]Request, error)
	UpdateRequestStatus(ctx context.Context, id string, status RequestStatus) error
	CreateResult(ctx context.Context, res *Result) error
	GetResultByRequest(ctx context.Context, requestID string) (*Result, error)
	UpdateResult(ctx context.Context, requestID string, fields map[string]any) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository returns a gorm backed Repository implementation.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateRequest(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *gormRepository) GetRequest(ctx context.Context, id string) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).Where("request_id = ?", id).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *gormRepository) ListRequests(ctx context.Context) ([]Request, error) {
	var requests []Request
	if err := r.db.WithContext(ctx).Order("timestamp ASC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *gormRepository) UpdateRequestStatus(ctx context.Context, id string, status RequestStatus) error {
	res := r.db.WithContext(ctx).
		Model(&Request{}).
		Where("request_id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) CreateResult(ctx context.Context, res *Result) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *gormRepository) GetResultByRequest(ctx context.Context, requestID string) (*Result, error) {
	var result Result
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *gormRepository) UpdateResult(ctx context.Context, requestID string, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&Result{}).
		Where("request_id = ?", requestID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
