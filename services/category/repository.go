package category

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository describes database operations for violation categories and
// moderation rules.
type Repository interface {
	GetCategoryByType(ctx context.Context, t CategoryType) (*ViolationCategory, error)
	SaveCategory(ctx context.Context, c *ViolationCategory) error
	ListCategories(ctx context.Context) ([]ViolationCategory, error)
	CreateRule(ctx context.Context, r *Rule) error
	ListRules(ctx context.Context) ([]Rule, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository returns a gorm backed Repository implementation.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetCategoryByType(ctx context.Context, t CategoryType) (*ViolationCategory, error) {
	var c ViolationCategory
	err := r.db.WithContext(ctx).Where("category_type = ?", t).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormRepository) SaveCategory(ctx context.Context, c *ViolationCategory) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *gormRepository) ListCategories(ctx context.Context) ([]ViolationCategory, error) {
	var categories []ViolationCategory
	if err := r.db.WithContext(ctx).Order("category_type ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *gormRepository) CreateRule(ctx context.Context, rule *Rule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *gormRepository) ListRules(ctx context.Context) ([]Rule, error) {
	var rules []Rule
	if err := r.db.WithContext(ctx).Order("priority ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}
