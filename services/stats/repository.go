package stats

import (
	"context"

	"moderation-controlplane/services/moderation"

	"gorm.io/gorm"
)

// Repository describes the count queries behind the statistics aggregation.
type Repository interface {
	CountRequests(ctx context.Context, serviceID string) (int64, error)
	CountRequestsByStatus(ctx context.Context, serviceID string, status moderation.RequestStatus) (int64, error)
	CountRequestsByContentType(ctx context.Context, serviceID string, ct moderation.ContentType) (int64, error)
	CountResultsByDecision(ctx context.Context, serviceID string, decision moderation.Decision) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository returns a gorm backed Repository implementation.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CountRequests(ctx context.Context, serviceID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&moderation.Request{}).
		Where("service_id = ?", serviceID).
		Count(&n).Error
	return n, err
}

func (r *gormRepository) CountRequestsByStatus(ctx context.Context, serviceID string, status moderation.RequestStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&moderation.Request{}).
		Where("service_id = ? AND status = ?", serviceID, status).
		Count(&n).Error
	return n, err
}

func (r *gormRepository) CountRequestsByContentType(ctx context.Context, serviceID string, ct moderation.ContentType) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&moderation.Request{}).
		Where("service_id = ? AND content_type = ?", serviceID, ct).
		Count(&n).Error
	return n, err
}

func (r *gormRepository) CountResultsByDecision(ctx context.Context, serviceID string, decision moderation.Decision) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&moderation.Result{}).
		Joins("JOIN moderation_requests ON moderation_requests.request_id = moderation_results.request_id").
		Where("moderation_requests.service_id = ? AND moderation_results.decision = ?", serviceID, decision).
		Count(&n).Error
	return n, err
}
