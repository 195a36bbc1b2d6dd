package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/techstock/inventory/internal/api/types"
	"github.com/techstock/inventory/internal/models"
	"github.com/techstock/inventory/internal/query"
	"github.com/techstock/inventory/internal/services"
	appErr "github.com/techstock/inventory/pkg/errors"
	"github.com/techstock/inventory/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests (required by writeError)
	_, err := logger.Init("error", "json")
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

type mockResourceService struct {
	mock.Mock
}

func (m *mockResourceService) List(ctx context.Context, in services.ListResourcesInput) ([]models.Resource, query.Pagination, error) {
	args := m.Called(ctx, in)
	if v := args.Get(0); v != nil {
		return v.([]models.Resource), args.Get(1).(query.Pagination), args.Error(2)
	}
	return nil, args.Get(1).(query.Pagination), args.Error(2)
}

func (m *mockResourceService) Get(ctx context.Context, id int64) (*models.Resource, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceService) Create(ctx context.Context, req *types.CreateResourceRequest) (*models.Resource, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceService) Update(ctx context.Context, id int64, req *types.UpdateResourceRequest) (*models.Resource, error) {
	args := m.Called(ctx, id, req)
	if v := args.Get(0); v != nil {
		return v.(*models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockResourceService) Statistics(ctx context.Context) (*services.ResourceStatistics, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*services.ResourceStatistics), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceService) Types(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceService) ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.Resource, error) {
	args := m.Called(ctx, subscriptionID)
	if v := args.Get(0); v != nil {
		return v.([]models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceService) ListByResourceGroup(ctx context.Context, resourceGroupID int64) ([]models.Resource, error) {
	args := m.Called(ctx, resourceGroupID)
	if v := args.Get(0); v != nil {
		return v.([]models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceService) ListByApplication(ctx context.Context, applicationID int64) ([]models.Resource, error) {
	args := m.Called(ctx, applicationID)
	if v := args.Get(0); v != nil {
		return v.([]models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

// newResourcesRouter mounts the handler under its real route shape so {id}
// parameters resolve.
func newResourcesRouter(svc services.ResourceService) http.Handler {
	h := NewResourcesHandler(svc)
	r := chi.NewRouter()
	r.Route("/api/v1/resources", func(rr chi.Router) {
		rr.Get("/", h.List)
		rr.Post("/", h.Create)
		rr.Get("/{id}", h.Get)
		rr.Put("/{id}", h.Update)
		rr.Delete("/{id}", h.Delete)
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, types.APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env types.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return rr, env
}

func TestResourcesList(t *testing.T) {
	t.Run("forwards filters and wraps the page", func(t *testing.T) {
		svc := &mockResourceService{}
		subID := int64(3)
		svc.On("List", mock.Anything, services.ListResourcesInput{
			Filters: query.Filters{
				Search:         "vm",
				Type:           "Microsoft.Compute/virtualMachines",
				Tags:           "Environment:Production",
				SubscriptionID: &subID,
			},
			SortField:     "name",
			SortDirection: "asc",
			Page:          2,
			Size:          10,
		}).Return([]models.Resource{{ID: 1, Name: "vm-a"}},
			query.Pagination{Page: 2, Size: 10, Total: 11, TotalPages: 2}, nil).Once()

		rr, env := doRequest(t, newResourcesRouter(svc), http.MethodGet,
			"/api/v1/resources/?search=vm&resource_type=Microsoft.Compute%2FvirtualMachines&tags=Environment:Production&subscription_id=3&sort_field=name&sort_direction=asc&page=2&size=10", "")

		require.Equal(t, http.StatusOK, rr.Code)
		require.True(t, env.Success)
		require.NotNil(t, env.Pagination)
		require.Equal(t, int64(11), env.Pagination.Total)
		require.Equal(t, 2, env.Pagination.TotalPages)
		svc.AssertExpectations(t)
	})

	t.Run("invalid sort field becomes 400", func(t *testing.T) {
		svc := &mockResourceService{}
		svc.On("List", mock.Anything, mock.Anything).
			Return(nil, query.Pagination{}, appErr.Newf(appErr.CodeInvalid, "invalid sort field %q", "evil")).Once()

		rr, env := doRequest(t, newResourcesRouter(svc), http.MethodGet, "/api/v1/resources/?sort_field=evil", "")
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.False(t, env.Success)
		require.Contains(t, env.Message, "invalid sort field")
	})

	t.Run("non-numeric subscription_id rejected before the service", func(t *testing.T) {
		svc := &mockResourceService{}

		rr, env := doRequest(t, newResourcesRouter(svc), http.MethodGet, "/api/v1/resources/?subscription_id=abc", "")
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.False(t, env.Success)
		svc.AssertNotCalled(t, "List")
	})
}

func TestResourcesCreate(t *testing.T) {
	t.Run("created resource returned with 201", func(t *testing.T) {
		svc := &mockResourceService{}
		svc.On("Create", mock.Anything, mock.MatchedBy(func(req *types.CreateResourceRequest) bool {
			return req.Name == "vm-a" && req.Tags["Environment"] == "Production"
		})).Return(&models.Resource{ID: 7, Name: "vm-a"}, nil).Once()

		body := `{"name":"vm-a","type":"Microsoft.Compute/virtualMachines","location":"westeurope","tags":{"Environment":"Production"}}`
		rr, env := doRequest(t, newResourcesRouter(svc), http.MethodPost, "/api/v1/resources/", body)

		require.Equal(t, http.StatusCreated, rr.Code)
		require.True(t, env.Success)
		require.Equal(t, "resource created", env.Message)
		svc.AssertExpectations(t)
	})

	t.Run("malformed json becomes 400", func(t *testing.T) {
		svc := &mockResourceService{}

		rr, env := doRequest(t, newResourcesRouter(svc), http.MethodPost, "/api/v1/resources/", `{"name":`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Equal(t, "invalid json", env.Message)
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("missing required fields become 400", func(t *testing.T) {
		svc := &mockResourceService{}

		rr, env := doRequest(t, newResourcesRouter(svc), http.MethodPost, "/api/v1/resources/", `{"name":"vm-a"}`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Contains(t, env.Message, "validation failed")
		svc.AssertNotCalled(t, "Create")
	})
}

func TestResourcesGet(t *testing.T) {
	t.Run("missing resource becomes 404", func(t *testing.T) {
		svc := &mockResourceService{}
		svc.On("Get", mock.Anything, int64(42)).
			Return(nil, appErr.New(appErr.CodeNotFound, "entity not found")).Once()

		rr, env := doRequest(t, newResourcesRouter(svc), http.MethodGet, "/api/v1/resources/42", "")
		require.Equal(t, http.StatusNotFound, rr.Code)
		require.False(t, env.Success)
	})

	t.Run("non-numeric id becomes 400", func(t *testing.T) {
		svc := &mockResourceService{}

		rr, _ := doRequest(t, newResourcesRouter(svc), http.MethodGet, "/api/v1/resources/abc", "")
		require.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "Get")
	})

	t.Run("infrastructure failure stays generic", func(t *testing.T) {
		svc := &mockResourceService{}
		svc.On("Get", mock.Anything, int64(1)).
			Return(nil, appErr.New(appErr.CodeInternal, "connection refused to 10.1.2.3:5432")).Once()

		rr, env := doRequest(t, newResourcesRouter(svc), http.MethodGet, "/api/v1/resources/1", "")
		require.Equal(t, http.StatusInternalServerError, rr.Code)
		require.Equal(t, "internal server error", env.Message)
		require.NotContains(t, rr.Body.String(), "10.1.2.3")
	})
}

func TestResourcesDelete(t *testing.T) {
	svc := &mockResourceService{}
	svc.On("Delete", mock.Anything, int64(9)).
		Return(appErr.New(appErr.CodeConflict, "resource is still linked")).Once()

	rr, env := doRequest(t, newResourcesRouter(svc), http.MethodDelete, "/api/v1/resources/9", "")
	require.Equal(t, http.StatusConflict, rr.Code)
	require.False(t, env.Success)
}
