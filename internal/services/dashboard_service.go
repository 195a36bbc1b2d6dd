package services

import (
	"context"

	"github.com/techstock/inventory/internal/api/types"
	"github.com/techstock/inventory/internal/repository"
)

// BucketSummary is one slice of a breakdown chart.
type BucketSummary struct {
	Label      string  `json:"label"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DashboardSummary feeds the admin dashboard's headline numbers and charts.
type DashboardSummary struct {
	TotalResources      int64           `json:"total_resources"`
	TotalSubscriptions  int64           `json:"total_subscriptions"`
	TotalResourceGroups int64           `json:"total_resource_groups"`
	TotalLocations      int64           `json:"total_locations"`
	ResourceTypes       []BucketSummary `json:"resource_types"`
	Locations           []BucketSummary `json:"locations"`
	Environments        []BucketSummary `json:"environments"`
}

type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
	Stats(ctx context.Context) (*types.StatsResponse, error)
}

type dashboardService struct {
	resourceRepo repository.ResourceRepository
	subRepo      repository.SubscriptionRepository
	rgRepo       repository.ResourceGroupRepository
	appRepo      repository.ApplicationRepository
}

func NewDashboardService(
	resourceRepo repository.ResourceRepository,
	subRepo repository.SubscriptionRepository,
	rgRepo repository.ResourceGroupRepository,
	appRepo repository.ApplicationRepository,
) DashboardService {
	return &dashboardService{resourceRepo: resourceRepo, subRepo: subRepo, rgRepo: rgRepo, appRepo: appRepo}
}

var _ DashboardService = (*dashboardService)(nil)

func (s *dashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	byType, err := s.resourceRepo.CountBy(ctx, "type")
	if err != nil {
		return nil, err
	}
	byLocation, err := s.resourceRepo.CountBy(ctx, "location")
	if err != nil {
		return nil, err
	}
	byEnvironment, err := s.resourceRepo.CountBy(ctx, "environment")
	if err != nil {
		return nil, err
	}

	var totalResources int64
	for _, b := range byType {
		totalResources += b.Count
	}

	totalSubscriptions, err := s.subRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalResourceGroups, err := s.rgRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalResources:      totalResources,
		TotalSubscriptions:  totalSubscriptions,
		TotalResourceGroups: totalResourceGroups,
		TotalLocations:      int64(len(byLocation)),
		ResourceTypes:       toSummaries(byType, totalResources),
		Locations:           toSummaries(byLocation, totalResources),
		Environments:        toSummaries(byEnvironment, totalResources),
	}, nil
}

func (s *dashboardService) Stats(ctx context.Context) (*types.StatsResponse, error) {
	totalResources, err := s.resourceRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalSubscriptions, err := s.subRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalResourceGroups, err := s.rgRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalApplications, err := s.appRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return &types.StatsResponse{
		TotalResources:      totalResources,
		TotalSubscriptions:  totalSubscriptions,
		TotalResourceGroups: totalResourceGroups,
		TotalApplications:   totalApplications,
	}, nil
}

func toSummaries(buckets []repository.BucketCount, total int64) []BucketSummary {
	out := make([]BucketSummary, 0, len(buckets))
	for _, b := range buckets {
		pct := 0.0
		if total > 0 {
			pct = float64(b.Count) / float64(total) * 100
		}
		out = append(out, BucketSummary{Label: b.Label, Count: b.Count, Percentage: pct})
	}
	return out
}
