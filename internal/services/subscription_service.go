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

type SubscriptionService interface {
	List(ctx context.Context, page, size int) ([]models.Subscription, query.Pagination, error)
	Get(ctx context.Context, id int64) (*models.Subscription, error)
	Create(ctx context.Context, req *types.CreateSubscriptionRequest) (*models.Subscription, error)
	Update(ctx context.Context, id int64, req *types.UpdateSubscriptionRequest) (*models.Subscription, error)
	Delete(ctx context.Context, id int64) error
}

type subscriptionService struct {
	repo repository.SubscriptionRepository
}

func NewSubscriptionService(repo repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{repo: repo}
}

var _ SubscriptionService = (*subscriptionService)(nil)

func (s *subscriptionService) List(ctx context.Context, page, size int) ([]models.Subscription, query.Pagination, error) {
	p := query.NormalizePage(page, size)
	items, total, err := s.repo.ListPage(ctx, p)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	return items, query.NewPagination(p, total), nil
}

func (s *subscriptionService) Get(ctx context.Context, id int64) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.repo.GetByID(ctx, id, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *subscriptionService) Create(ctx context.Context, req *types.CreateSubscriptionRequest) (*models.Subscription, error) {
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErr.Newf(appErr.CodeAlreadyExists, "subscription %q already exists", req.Name)
	}

	sub := &models.Subscription{Name: req.Name, TenantID: req.TenantID}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	logger.L().Info("subscription created", zap.Int64("subscription_id", sub.ID), zap.String("name", sub.Name))
	return sub, nil
}

func (s *subscriptionService) Update(ctx context.Context, id int64, req *types.UpdateSubscriptionRequest) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.repo.GetByID(ctx, id, &sub); err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != sub.Name {
		existing, err := s.repo.FindByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, appErr.Newf(appErr.CodeAlreadyExists, "subscription %q already exists", *req.Name)
		}
		sub.Name = *req.Name
	}
	if req.TenantID != nil {
		sub.TenantID = req.TenantID
	}

	if err := s.repo.Update(ctx, &sub); err != nil {
		return nil, err
	}
	logger.L().Info("subscription updated", zap.Int64("subscription_id", sub.ID))
	return &sub, nil
}

// Delete refuses to orphan resource groups: the RESTRICT foreign key turns a
// delete of a referenced subscription into a conflict, surfaced as 409.
func (s *subscriptionService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if appErr.IsCode(err, appErr.CodeConflict) {
			return appErr.Newf(appErr.CodeConflict, "subscription %d still owns resource groups or resources", id)
		}
		return err
	}
	logger.L().Info("subscription deleted", zap.Int64("subscription_id", id))
	return nil
}
