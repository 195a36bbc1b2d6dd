package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/techstock/inventory/internal/models"
	"github.com/techstock/inventory/internal/query"
	appErr "github.com/techstock/inventory/pkg/errors"
)

// BucketCount is one row of a grouped count (stats endpoints).
type BucketCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// statColumns is the allow-list of groupable resource columns.
var statColumns = map[string]string{
	"type":        "type",
	"location":    "location",
	"environment": "environment",
	"vendor":      "vendor",
}

type ResourceRepository interface {
	BaseRepository[models.Resource]
	List(ctx context.Context, f query.Filters, s query.Sort, p query.Page) ([]models.Resource, int64, error)
	CreateWithTags(ctx context.Context, res *models.Resource, tags map[string]string) error
	UpdateWithTags(ctx context.Context, res *models.Resource, tags map[string]string) error
	ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.Resource, error)
	ListByResourceGroup(ctx context.Context, resourceGroupID int64) ([]models.Resource, error)
	ListByApplication(ctx context.Context, applicationID int64) ([]models.Resource, error)
	CountBy(ctx context.Context, field string) ([]BucketCount, error)
	DistinctTypes(ctx context.Context) ([]string, error)
	LinkApplication(ctx context.Context, resourceID, applicationID int64, relationType string) error
}

type resourceRepository struct {
	BaseRepository[models.Resource]
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{BaseRepository: NewBaseRepository[models.Resource](db), db: db}
}

// List runs the bounded page fetch and the total count with identical filter
// scopes. The two queries do not share a snapshot; the total may drift
// slightly from the page under concurrent writes, which callers accept.
func (r *resourceRepository) List(ctx context.Context, f query.Filters, s query.Sort, p query.Page) ([]models.Resource, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Resource{}).Scopes(f.Scope()).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count resources failed")
	}

	out := []models.Resource{}
	err := r.db.WithContext(ctx).Model(&models.Resource{}).
		Scopes(f.Scope()).
		Order(s.OrderClause()).
		Limit(p.Size).
		Offset(p.Offset()).
		Find(&out).Error
	if err != nil {
		return nil, 0, translate(err, "list resources failed")
	}
	return out, total, nil
}

// CreateWithTags inserts the resource row and its decomposed tag rows in one
// transaction so the blob and the EAV rows cannot diverge.
func (r *resourceRepository) CreateWithTags(ctx context.Context, res *models.Resource, tags map[string]string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(res).Error; err != nil {
			return err
		}
		return replaceTagRows(tx, res.ID, tags)
	})
	return translate(err, "create resource failed")
}

// UpdateWithTags saves the resource row and full-replaces its tag rows: keys
// absent from tags are deleted, present ones upserted.
func (r *resourceRepository) UpdateWithTags(ctx context.Context, res *models.Resource, tags map[string]string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(res).Error; err != nil {
			return err
		}
		return replaceTagRows(tx, res.ID, tags)
	})
	return translate(err, "update resource failed")
}

func replaceTagRows(tx *gorm.DB, resourceID int64, tags map[string]string) error {
	del := tx.Where("resource_id = ?", resourceID)
	if len(tags) > 0 {
		keys := make([]string, 0, len(tags))
		for k := range tags {
			keys = append(keys, k)
		}
		del = del.Where("key NOT IN ?", keys)
	}
	if err := del.Delete(&models.ResourceTag{}).Error; err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}

	rows := make([]models.ResourceTag, 0, len(tags))
	for k, v := range tags {
		v := v
		rows = append(rows, models.ResourceTag{ResourceID: resourceID, Key: k, Value: &v})
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "resource_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rows).Error
}

func (r *resourceRepository) ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.Resource, error) {
	out := []models.Resource{}
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "list resources by subscription failed")
	}
	return out, nil
}

func (r *resourceRepository) ListByResourceGroup(ctx context.Context, resourceGroupID int64) ([]models.Resource, error) {
	out := []models.Resource{}
	err := r.db.WithContext(ctx).
		Where("resource_group_id = ?", resourceGroupID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "list resources by resource group failed")
	}
	return out, nil
}

func (r *resourceRepository) ListByApplication(ctx context.Context, applicationID int64) ([]models.Resource, error) {
	out := []models.Resource{}
	err := r.db.WithContext(ctx).
		Joins("JOIN resource_application_map ram ON ram.resource_id = resource.id").
		Where("ram.application_id = ?", applicationID).
		Order("resource.created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "list resources by application failed")
	}
	return out, nil
}

// CountBy groups resources by one of the allow-listed columns. NULLs are
// reported under the "Unknown" label.
func (r *resourceRepository) CountBy(ctx context.Context, field string) ([]BucketCount, error) {
	col, ok := statColumns[field]
	if !ok {
		return nil, appErr.Newf(appErr.CodeInvalid, "invalid stats field %q", field)
	}
	out := []BucketCount{}
	err := r.db.WithContext(ctx).Model(&models.Resource{}).
		Select(fmt.Sprintf("COALESCE(%s, 'Unknown') AS label, COUNT(*) AS count", col)).
		Group(col).
		Order("count DESC").
		Scan(&out).Error
	if err != nil {
		return nil, translate(err, "count resources by "+field+" failed")
	}
	return out, nil
}

func (r *resourceRepository) DistinctTypes(ctx context.Context) ([]string, error) {
	out := []string{}
	err := r.db.WithContext(ctx).Model(&models.Resource{}).
		Distinct().
		Order("type ASC").
		Pluck("type", &out).Error
	if err != nil {
		return nil, translate(err, "list resource types failed")
	}
	return out, nil
}

// LinkApplication relates a resource to an application; re-linking the same
// pair with the same relation type is a no-op.
func (r *resourceRepository) LinkApplication(ctx context.Context, resourceID, applicationID int64, relationType string) error {
	if relationType == "" {
		relationType = "uses"
	}
	m := models.ResourceApplicationMap{
		ResourceID:    resourceID,
		ApplicationID: applicationID,
		RelationType:  relationType,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "resource_id"}, {Name: "application_id"}, {Name: "relation_type"}},
		DoNothing: true,
	}).Create(&m).Error
	if err != nil {
		return translate(err, "link resource to application failed")
	}
	return nil
}
