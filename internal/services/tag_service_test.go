package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/techstock/inventory/internal/repository"
)

func TestTagService_Overview(t *testing.T) {
	repo := &mockTagRepository{}
	svc := NewTagService(repo)

	usage := []repository.TagUsage{
		{Key: "Environment", Value: "Production", Count: 40},
		{Key: "Environment", Value: "Dev", Count: 25},
		{Key: "Owner", Value: "IT", Count: 10},
	}
	repo.On("Usage", mock.Anything).Return(usage, nil).Once()

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	// Values per key are sorted alphabetically regardless of usage order.
	require.Equal(t, []string{"Dev", "Production"}, overview.Tags["Environment"])
	require.Equal(t, []string{"IT"}, overview.Tags["Owner"])

	// Popular pairs keep the repository's count ordering.
	require.Len(t, overview.PopularTags, 3)
	require.Equal(t, "Production", overview.PopularTags[0].Value)
	repo.AssertExpectations(t)
}

func TestTagService_OverviewCapsPopularTags(t *testing.T) {
	repo := &mockTagRepository{}
	svc := NewTagService(repo)

	usage := make([]repository.TagUsage, 0, popularTagLimit+5)
	for i := 0; i < popularTagLimit+5; i++ {
		usage = append(usage, repository.TagUsage{Key: "k", Value: string(rune('a' + i)), Count: int64(100 - i)})
	}
	repo.On("Usage", mock.Anything).Return(usage, nil).Once()

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, overview.PopularTags, popularTagLimit)
}

func TestTagService_Suggestions(t *testing.T) {
	t.Run("exact matches surface first", func(t *testing.T) {
		repo := &mockTagRepository{}
		svc := NewTagService(repo)

		usage := []repository.TagUsage{
			{Key: "Environment", Value: "Production-East", Count: 50},
			{Key: "Environment", Value: "Production", Count: 30},
			{Key: "Environment", Value: "Preproduction", Count: 20},
		}
		repo.On("Search", mock.Anything, "production", tagSuggestionLimit*5).Return(usage, nil).Once()

		got, err := svc.Suggestions(context.Background(), "production")
		require.NoError(t, err)
		require.Equal(t, "Production", got[0].Value)
		require.Equal(t, "Environment:Production", got[0].Display)
		repo.AssertExpectations(t)
	})

	t.Run("truncates to the suggestion limit", func(t *testing.T) {
		repo := &mockTagRepository{}
		svc := NewTagService(repo)

		usage := make([]repository.TagUsage, 0, tagSuggestionLimit*2)
		for i := 0; i < tagSuggestionLimit*2; i++ {
			usage = append(usage, repository.TagUsage{Key: "CostCenter", Value: string(rune('a' + i)), Count: 1})
		}
		repo.On("Search", mock.Anything, "cost", tagSuggestionLimit*5).Return(usage, nil).Once()

		got, err := svc.Suggestions(context.Background(), "cost")
		require.NoError(t, err)
		require.Len(t, got, tagSuggestionLimit)
	})

	t.Run("no matches yields an empty slice", func(t *testing.T) {
		repo := &mockTagRepository{}
		svc := NewTagService(repo)

		repo.On("Search", mock.Anything, "nope", tagSuggestionLimit*5).
			Return([]repository.TagUsage{}, nil).Once()

		got, err := svc.Suggestions(context.Background(), "nope")
		require.NoError(t, err)
		require.Empty(t, got)
	})
}
