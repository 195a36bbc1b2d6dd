package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/techstock/inventory/internal/api/types"
	"github.com/techstock/inventory/internal/models"
	"github.com/techstock/inventory/internal/query"
	"github.com/techstock/inventory/internal/repository"
	appErr "github.com/techstock/inventory/pkg/errors"
	"github.com/techstock/inventory/pkg/logger"
)

// ListResourcesInput carries raw list parameters; sort and page values are
// validated/normalized here, before anything reaches the repository.
type ListResourcesInput struct {
	Filters       query.Filters
	SortField     string
	SortDirection string
	Page          int
	Size          int
}

// ResourceStatistics aggregates grouped counts for the stats endpoint.
type ResourceStatistics struct {
	ByType        []repository.BucketCount `json:"by_type"`
	ByLocation    []repository.BucketCount `json:"by_location"`
	ByEnvironment []repository.BucketCount `json:"by_environment"`
	ByVendor      []repository.BucketCount `json:"by_vendor"`
}

type ResourceService interface {
	List(ctx context.Context, in ListResourcesInput) ([]models.Resource, query.Pagination, error)
	Get(ctx context.Context, id int64) (*models.Resource, error)
	Create(ctx context.Context, req *types.CreateResourceRequest) (*models.Resource, error)
	Update(ctx context.Context, id int64, req *types.UpdateResourceRequest) (*models.Resource, error)
	Delete(ctx context.Context, id int64) error
	Statistics(ctx context.Context) (*ResourceStatistics, error)
	Types(ctx context.Context) ([]string, error)
	ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.Resource, error)
	ListByResourceGroup(ctx context.Context, resourceGroupID int64) ([]models.Resource, error)
	ListByApplication(ctx context.Context, applicationID int64) ([]models.Resource, error)
}

type resourceService struct {
	repo    repository.ResourceRepository
	subRepo repository.SubscriptionRepository
	rgRepo  repository.ResourceGroupRepository
	appRepo repository.ApplicationRepository
}

func NewResourceService(
	repo repository.ResourceRepository,
	subRepo repository.SubscriptionRepository,
	rgRepo repository.ResourceGroupRepository,
	appRepo repository.ApplicationRepository,
) ResourceService {
	return &resourceService{repo: repo, subRepo: subRepo, rgRepo: rgRepo, appRepo: appRepo}
}

var _ ResourceService = (*resourceService)(nil)

func (s *resourceService) List(ctx context.Context, in ListResourcesInput) ([]models.Resource, query.Pagination, error) {
	sort, err := query.ResolveSort(in.SortField, in.SortDirection)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	page := query.NormalizePage(in.Page, in.Size)

	items, total, err := s.repo.List(ctx, in.Filters, sort, page)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	return items, query.NewPagination(page, total), nil
}

func (s *resourceService) Get(ctx context.Context, id int64) (*models.Resource, error) {
	var res models.Resource
	if err := s.repo.GetByID(ctx, id, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *resourceService) Create(ctx context.Context, req *types.CreateResourceRequest) (*models.Resource, error) {
	if err := s.checkParents(ctx, req.SubscriptionID, req.ResourceGroupID); err != nil {
		return nil, err
	}

	tags := req.Tags
	if tags == nil {
		tags = map[string]string{}
	}
	blob, err := json.Marshal(tags)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid tags")
	}

	res := &models.Resource{
		AzureID:          req.AzureID,
		Name:             req.Name,
		Type:             req.Type,
		Kind:             req.Kind,
		Location:         req.Location,
		SubscriptionID:   req.SubscriptionID,
		ResourceGroupID:  req.ResourceGroupID,
		TagsJSON:         datatypes.JSON(blob),
		ExtendedLocation: req.ExtendedLocation,
		Vendor:           req.Vendor,
		Environment:      req.Environment,
		Provisioner:      req.Provisioner,
	}
	if err := s.repo.CreateWithTags(ctx, res, tags); err != nil {
		return nil, err
	}
	logger.L().Info("resource created", zap.Int64("resource_id", res.ID), zap.String("name", res.Name))
	return res, nil
}

func (s *resourceService) Update(ctx context.Context, id int64, req *types.UpdateResourceRequest) (*models.Resource, error) {
	var res models.Resource
	if err := s.repo.GetByID(ctx, id, &res); err != nil {
		return nil, err
	}
	if err := s.checkParents(ctx, req.SubscriptionID, req.ResourceGroupID); err != nil {
		return nil, err
	}

	if req.AzureID != nil {
		res.AzureID = req.AzureID
	}
	if req.Name != nil {
		res.Name = *req.Name
	}
	if req.Type != nil {
		res.Type = *req.Type
	}
	if req.Kind != nil {
		res.Kind = req.Kind
	}
	if req.Location != nil {
		res.Location = *req.Location
	}
	if req.SubscriptionID != nil {
		res.SubscriptionID = req.SubscriptionID
	}
	if req.ResourceGroupID != nil {
		res.ResourceGroupID = req.ResourceGroupID
	}
	if req.ExtendedLocation != nil {
		res.ExtendedLocation = req.ExtendedLocation
	}
	if req.Vendor != nil {
		res.Vendor = req.Vendor
	}
	if req.Environment != nil {
		res.Environment = req.Environment
	}
	if req.Provisioner != nil {
		res.Provisioner = req.Provisioner
	}

	// A supplied tags map replaces both the blob and the decomposed rows in
	// one transaction; an absent map leaves tags untouched.
	if req.Tags != nil {
		blob, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid tags")
		}
		res.TagsJSON = datatypes.JSON(blob)
		if err := s.repo.UpdateWithTags(ctx, &res, req.Tags); err != nil {
			return nil, err
		}
	} else {
		if err := s.repo.Update(ctx, &res); err != nil {
			return nil, err
		}
	}
	logger.L().Info("resource updated", zap.Int64("resource_id", res.ID))
	return &res, nil
}

func (s *resourceService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.L().Info("resource deleted", zap.Int64("resource_id", id))
	return nil
}

func (s *resourceService) Statistics(ctx context.Context) (*ResourceStatistics, error) {
	stats := &ResourceStatistics{}
	fields := []struct {
		name string
		dest *[]repository.BucketCount
	}{
		{"type", &stats.ByType},
		{"location", &stats.ByLocation},
		{"environment", &stats.ByEnvironment},
		{"vendor", &stats.ByVendor},
	}
	for _, f := range fields {
		buckets, err := s.repo.CountBy(ctx, f.name)
		if err != nil {
			return nil, err
		}
		*f.dest = buckets
	}
	return stats, nil
}

func (s *resourceService) Types(ctx context.Context) ([]string, error) {
	return s.repo.DistinctTypes(ctx)
}

func (s *resourceService) ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.Resource, error) {
	var sub models.Subscription
	if err := s.subRepo.GetByID(ctx, subscriptionID, &sub); err != nil {
		return nil, err
	}
	return s.repo.ListBySubscription(ctx, subscriptionID)
}

func (s *resourceService) ListByResourceGroup(ctx context.Context, resourceGroupID int64) ([]models.Resource, error) {
	var rg models.ResourceGroup
	if err := s.rgRepo.GetByID(ctx, resourceGroupID, &rg); err != nil {
		return nil, err
	}
	return s.repo.ListByResourceGroup(ctx, resourceGroupID)
}

func (s *resourceService) ListByApplication(ctx context.Context, applicationID int64) ([]models.Resource, error) {
	var app models.Application
	if err := s.appRepo.GetByID(ctx, applicationID, &app); err != nil {
		return nil, err
	}
	return s.repo.ListByApplication(ctx, applicationID)
}

// checkParents validates referenced subscription/resource group ids exist so
// the caller gets a 404 naming the parent instead of a bare FK conflict.
func (s *resourceService) checkParents(ctx context.Context, subscriptionID, resourceGroupID *int64) error {
	if subscriptionID != nil {
		var sub models.Subscription
		if err := s.subRepo.GetByID(ctx, *subscriptionID, &sub); err != nil {
			if appErr.IsCode(err, appErr.CodeNotFound) {
				return appErr.Newf(appErr.CodeNotFound, "subscription %d not found", *subscriptionID)
			}
			return err
		}
	}
	if resourceGroupID != nil {
		var rg models.ResourceGroup
		if err := s.rgRepo.GetByID(ctx, *resourceGroupID, &rg); err != nil {
			if appErr.IsCode(err, appErr.CodeNotFound) {
				return appErr.Newf(appErr.CodeNotFound, "resource group %d not found", *resourceGroupID)
			}
			return err
		}
	}
	return nil
}
