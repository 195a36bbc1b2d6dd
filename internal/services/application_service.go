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

type ApplicationService interface {
	List(ctx context.Context, page, size int) ([]models.Application, query.Pagination, error)
	Get(ctx context.Context, id int64) (*models.Application, error)
	Create(ctx context.Context, req *types.CreateApplicationRequest) (*models.Application, error)
	Update(ctx context.Context, id int64, req *types.UpdateApplicationRequest) (*models.Application, error)
	Delete(ctx context.Context, id int64) error
}

type applicationService struct {
	repo repository.ApplicationRepository
}

func NewApplicationService(repo repository.ApplicationRepository) ApplicationService {
	return &applicationService{repo: repo}
}

var _ ApplicationService = (*applicationService)(nil)

func (s *applicationService) List(ctx context.Context, page, size int) ([]models.Application, query.Pagination, error) {
	p := query.NormalizePage(page, size)
	items, total, err := s.repo.ListPage(ctx, p)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	return items, query.NewPagination(p, total), nil
}

func (s *applicationService) Get(ctx context.Context, id int64) (*models.Application, error) {
	var app models.Application
	if err := s.repo.GetByID(ctx, id, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *applicationService) Create(ctx context.Context, req *types.CreateApplicationRequest) (*models.Application, error) {
	if req.Code != nil {
		existing, err := s.repo.FindByCode(ctx, *req.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, appErr.Newf(appErr.CodeAlreadyExists, "application with code %q already exists", *req.Code)
		}
	}

	app := &models.Application{
		Code:       req.Code,
		Name:       req.Name,
		OwnerTeam:  req.OwnerTeam,
		OwnerEmail: req.OwnerEmail,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}
	logger.L().Info("application created", zap.Int64("application_id", app.ID))
	return app, nil
}

func (s *applicationService) Update(ctx context.Context, id int64, req *types.UpdateApplicationRequest) (*models.Application, error) {
	var app models.Application
	if err := s.repo.GetByID(ctx, id, &app); err != nil {
		return nil, err
	}

	if req.Code != nil {
		existing, err := s.repo.FindByCode(ctx, *req.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, appErr.Newf(appErr.CodeAlreadyExists, "application with code %q already exists", *req.Code)
		}
		app.Code = req.Code
	}
	if req.Name != nil {
		app.Name = req.Name
	}
	if req.OwnerTeam != nil {
		app.OwnerTeam = req.OwnerTeam
	}
	if req.OwnerEmail != nil {
		app.OwnerEmail = req.OwnerEmail
	}

	if err := s.repo.Update(ctx, &app); err != nil {
		return nil, err
	}
	logger.L().Info("application updated", zap.Int64("application_id", app.ID))
	return &app, nil
}

func (s *applicationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.L().Info("application deleted", zap.Int64("application_id", id))
	return nil
}
