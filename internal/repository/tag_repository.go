package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/techstock/inventory/internal/models"
	"github.com/techstock/inventory/internal/query"
)

// TagUsage is a distinct key/value pair and how many resources carry it.
type TagUsage struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// TagRepository reads the tag vocabulary from the EAV table. The grouped
// queries here are what the (key) and (key, value) indexes exist for.
type TagRepository interface {
	Usage(ctx context.Context) ([]TagUsage, error)
	Search(ctx context.Context, term string, limit int) ([]TagUsage, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Usage(ctx context.Context) ([]TagUsage, error) {
	out := []TagUsage{}
	err := r.db.WithContext(ctx).Model(&models.ResourceTag{}).
		Select("key, COALESCE(value, '') AS value, COUNT(*) AS count").
		Group("key, value").
		Order("count DESC, key ASC, value ASC").
		Scan(&out).Error
	if err != nil {
		return nil, translate(err, "aggregate tag usage failed")
	}
	return out, nil
}

// Search matches term case-insensitively against keys and values. The term
// is matched literally, never as a wildcard pattern.
func (r *tagRepository) Search(ctx context.Context, term string, limit int) ([]TagUsage, error) {
	out := []TagUsage{}
	pattern := query.Contains(term)
	err := r.db.WithContext(ctx).Model(&models.ResourceTag{}).
		Select("key, COALESCE(value, '') AS value, COUNT(*) AS count").
		Where("key ILIKE ? OR value ILIKE ?", pattern, pattern).
		Group("key, value").
		Order("count DESC, key ASC, value ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, translate(err, "search tags failed")
	}
	return out, nil
}
