package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/techstock/inventory/internal/models"
	"github.com/techstock/inventory/internal/query"
)

type ApplicationRepository interface {
	BaseRepository[models.Application]
	ListPage(ctx context.Context, p query.Page) ([]models.Application, int64, error)
	FindByCode(ctx context.Context, code string) (*models.Application, error)
}

type applicationRepository struct {
	BaseRepository[models.Application]
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{BaseRepository: NewBaseRepository[models.Application](db), db: db}
}

func (r *applicationRepository) ListPage(ctx context.Context, p query.Page) ([]models.Application, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Application{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count applications failed")
	}

	out := []models.Application{}
	err := r.db.WithContext(ctx).
		Order("COALESCE(name, code) ASC").
		Limit(p.Size).
		Offset(p.Offset()).
		Find(&out).Error
	if err != nil {
		return nil, 0, translate(err, "list applications failed")
	}
	return out, total, nil
}

// FindByCode returns nil without error when no application has that code.
func (r *applicationRepository) FindByCode(ctx context.Context, code string) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "find application by code failed")
	}
	return &app, nil
}
