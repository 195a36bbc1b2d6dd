package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/techstock/inventory/internal/models"
	"github.com/techstock/inventory/internal/query"
)

type SubscriptionRepository interface {
	BaseRepository[models.Subscription]
	ListPage(ctx context.Context, p query.Page) ([]models.Subscription, int64, error)
	FindByName(ctx context.Context, name string) (*models.Subscription, error)
}

type subscriptionRepository struct {
	BaseRepository[models.Subscription]
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{BaseRepository: NewBaseRepository[models.Subscription](db), db: db}
}

func (r *subscriptionRepository) ListPage(ctx context.Context, p query.Page) ([]models.Subscription, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Subscription{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count subscriptions failed")
	}

	out := []models.Subscription{}
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(p.Size).
		Offset(p.Offset()).
		Find(&out).Error
	if err != nil {
		return nil, 0, translate(err, "list subscriptions failed")
	}
	return out, total, nil
}

// FindByName returns nil without error when no subscription has that name.
func (r *subscriptionRepository) FindByName(ctx context.Context, name string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "find subscription by name failed")
	}
	return &sub, nil
}
