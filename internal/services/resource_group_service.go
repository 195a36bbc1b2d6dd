package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/techstock/inventory/internal/api/types"
	"github.com/techstock/inventory/internal/models"
	"github.com/techstock/inventory/internal/query"
	"github.com/techstock/inventory/internal/repository"
	appErr "github.com/techstock/inventory/pkg/errors"
	"github.com/techstock/inventory/pkg/logger"
)

type ResourceGroupService interface {
	List(ctx context.Context, page, size int) ([]models.ResourceGroup, query.Pagination, error)
	ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.ResourceGroup, error)
	Get(ctx context.Context, id int64) (*models.ResourceGroup, error)
	Create(ctx context.Context, req *types.CreateResourceGroupRequest) (*models.ResourceGroup, error)
	Update(ctx context.Context, id int64, req *types.UpdateResourceGroupRequest) (*models.ResourceGroup, error)
	Delete(ctx context.Context, id int64) error
}

type resourceGroupService struct {
	repo    repository.ResourceGroupRepository
	subRepo repository.SubscriptionRepository
}

func NewResourceGroupService(repo repository.ResourceGroupRepository, subRepo repository.SubscriptionRepository) ResourceGroupService {
	return &resourceGroupService{repo: repo, subRepo: subRepo}
}

var _ ResourceGroupService = (*resourceGroupService)(nil)

func (s *resourceGroupService) List(ctx context.Context, page, size int) ([]models.ResourceGroup, query.Pagination, error) {
	p := query.NormalizePage(page, size)
	items, total, err := s.repo.ListPage(ctx, p)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	return items, query.NewPagination(p, total), nil
}

func (s *resourceGroupService) ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.ResourceGroup, error) {
	var sub models.Subscription
	if err := s.subRepo.GetByID(ctx, subscriptionID, &sub); err != nil {
		return nil, err
	}
	return s.repo.ListBySubscription(ctx, subscriptionID)
}

func (s *resourceGroupService) Get(ctx context.Context, id int64) (*models.ResourceGroup, error) {
	var rg models.ResourceGroup
	if err := s.repo.GetByID(ctx, id, &rg); err != nil {
		return nil, err
	}
	return &rg, nil
}

func (s *resourceGroupService) Create(ctx context.Context, req *types.CreateResourceGroupRequest) (*models.ResourceGroup, error) {
	var sub models.Subscription
	if err := s.subRepo.GetByID(ctx, req.SubscriptionID, &sub); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.Newf(appErr.CodeNotFound, "subscription %d not found", req.SubscriptionID)
		}
		return nil, err
	}

	existing, err := s.repo.FindByNameInSubscription(ctx, req.Name, req.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErr.Newf(appErr.CodeAlreadyExists, "resource group %q already exists in subscription %d", req.Name, req.SubscriptionID)
	}

	rg := &models.ResourceGroup{Name: req.Name, SubscriptionID: req.SubscriptionID}
	if err := s.repo.Create(ctx, rg); err != nil {
		return nil, err
	}
	logger.L().Info("resource group created", zap.Int64("resource_group_id", rg.ID), zap.String("name", rg.Name))
	return rg, nil
}

func (s *resourceGroupService) Update(ctx context.Context, id int64, req *types.UpdateResourceGroupRequest) (*models.ResourceGroup, error) {
	var rg models.ResourceGroup
	if err := s.repo.GetByID(ctx, id, &rg); err != nil {
		return nil, err
	}

	subscriptionID := rg.SubscriptionID
	if req.SubscriptionID != nil {
		subscriptionID = *req.SubscriptionID
		var sub models.Subscription
		if err := s.subRepo.GetByID(ctx, subscriptionID, &sub); err != nil {
			if appErr.IsCode(err, appErr.CodeNotFound) {
				return nil, appErr.Newf(appErr.CodeNotFound, "subscription %d not found", subscriptionID)
			}
			return nil, err
		}
	}

	name := rg.Name
	if req.Name != nil {
		name = *req.Name
	}
	if name != rg.Name || subscriptionID != rg.SubscriptionID {
		conflicting, err := s.repo.FindByNameInSubscription(ctx, name, subscriptionID)
		if err != nil {
			return nil, err
		}
		if conflicting != nil && conflicting.ID != id {
			return nil, appErr.Newf(appErr.CodeAlreadyExists, "resource group %q already exists in subscription %d", name, subscriptionID)
		}
	}

	rg.Name = name
	rg.SubscriptionID = subscriptionID
	if err := s.repo.Update(ctx, &rg); err != nil {
		return nil, err
	}
	logger.L().Info("resource group updated", zap.Int64("resource_group_id", rg.ID))
	return &rg, nil
}

func (s *resourceGroupService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if appErr.IsCode(err, appErr.CodeConflict) {
			return appErr.Newf(appErr.CodeConflict, "resource group %d still owns resources", id)
		}
		return err
	}
	logger.L().Info("resource group deleted", zap.Int64("resource_group_id", id))
	return nil
}
