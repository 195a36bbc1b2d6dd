package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/techstock/inventory/internal/services"
)

type mockTagService struct {
	mock.Mock
}

func (m *mockTagService) Overview(ctx context.Context) (*services.TagsOverview, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*services.TagsOverview), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTagService) Suggestions(ctx context.Context, term string) ([]services.TagSuggestion, error) {
	args := m.Called(ctx, term)
	if v := args.Get(0); v != nil {
		return v.([]services.TagSuggestion), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTagsRouter(svc services.TagService) http.Handler {
	h := NewTagsHandler(svc)
	r := chi.NewRouter()
	r.Get("/api/v1/tags", h.Overview)
	r.Get("/api/v1/tags/suggestions", h.Suggestions)
	return r
}

func TestTagsSuggestions(t *testing.T) {
	t.Run("missing q becomes 400", func(t *testing.T) {
		svc := &mockTagService{}

		rr, env := doRequest(t, newTagsRouter(svc), http.MethodGet, "/api/v1/tags/suggestions", "")
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.False(t, env.Success)
		svc.AssertNotCalled(t, "Suggestions")
	})

	t.Run("term passed through trimmed", func(t *testing.T) {
		svc := &mockTagService{}
		svc.On("Suggestions", mock.Anything, "prod").
			Return([]services.TagSuggestion{{Key: "Environment", Value: "Production", Display: "Environment:Production"}}, nil).Once()

		rr, env := doRequest(t, newTagsRouter(svc), http.MethodGet, "/api/v1/tags/suggestions?q=%20prod%20", "")
		require.Equal(t, http.StatusOK, rr.Code)
		require.True(t, env.Success)
		svc.AssertExpectations(t)
	})
}

func TestTagsOverview(t *testing.T) {
	svc := &mockTagService{}
	svc.On("Overview", mock.Anything).
		Return(&services.TagsOverview{Tags: map[string][]string{"Environment": {"Production"}}}, nil).Once()

	rr, env := doRequest(t, newTagsRouter(svc), http.MethodGet, "/api/v1/tags", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, env.Success)
	require.NotNil(t, env.Data)
}
