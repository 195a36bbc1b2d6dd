package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/techstock/inventory/internal/models"
	"github.com/techstock/inventory/internal/query"
)

type ResourceGroupRepository interface {
	BaseRepository[models.ResourceGroup]
	ListPage(ctx context.Context, p query.Page) ([]models.ResourceGroup, int64, error)
	ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.ResourceGroup, error)
	FindByNameInSubscription(ctx context.Context, name string, subscriptionID int64) (*models.ResourceGroup, error)
}

type resourceGroupRepository struct {
	BaseRepository[models.ResourceGroup]
	db *gorm.DB
}

func NewResourceGroupRepository(db *gorm.DB) ResourceGroupRepository {
	return &resourceGroupRepository{BaseRepository: NewBaseRepository[models.ResourceGroup](db), db: db}
}

func (r *resourceGroupRepository) ListPage(ctx context.Context, p query.Page) ([]models.ResourceGroup, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ResourceGroup{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count resource groups failed")
	}

	out := []models.ResourceGroup{}
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(p.Size).
		Offset(p.Offset()).
		Find(&out).Error
	if err != nil {
		return nil, 0, translate(err, "list resource groups failed")
	}
	return out, total, nil
}

func (r *resourceGroupRepository) ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.ResourceGroup, error) {
	out := []models.ResourceGroup{}
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("name ASC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "list resource groups by subscription failed")
	}
	return out, nil
}

// FindByNameInSubscription returns nil without error when no group matches.
func (r *resourceGroupRepository) FindByNameInSubscription(ctx context.Context, name string, subscriptionID int64) (*models.ResourceGroup, error) {
	var rg models.ResourceGroup
	err := r.db.WithContext(ctx).
		Where("name = ? AND subscription_id = ?", name, subscriptionID).
		First(&rg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "find resource group by name failed")
	}
	return &rg, nil
}
