package handlers

import (
	"net/http"
	"strconv"

	"github.com/techstock/inventory/internal/api/types"
	"github.com/techstock/inventory/internal/api/validators"
	"github.com/techstock/inventory/internal/query"
	"github.com/techstock/inventory/internal/services"
)

type ResourcesHandler struct {
	svc services.ResourceService
}

func NewResourcesHandler(svc services.ResourceService) *ResourcesHandler {
	return &ResourcesHandler{svc: svc}
}

// List handles GET /api/v1/resources with the full filter/sort/page surface.
func (h *ResourcesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := query.Filters{
		Search:      q.Get("search"),
		Type:        q.Get("resource_type"),
		Location:    q.Get("location"),
		Environment: q.Get("environment"),
		Vendor:      q.Get("vendor"),
		Tags:        q.Get("tags"),
	}
	if raw := q.Get("subscription_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeInvalid(w, "invalid subscription_id")
			return
		}
		filters.SubscriptionID = &id
	}
	if raw := q.Get("resource_group_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeInvalid(w, "invalid resource_group_id")
			return
		}
		filters.ResourceGroupID = &id
	}

	page, size := pageParams(r)
	items, pg, err := h.svc.List(r.Context(), services.ListResourcesInput{
		Filters:       filters,
		SortField:     q.Get("sort_field"),
		SortDirection: q.Get("sort_direction"),
		Page:          page,
		Size:          size,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Paginated(items, pg))
}

func (h *ResourcesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(res))
}

func (h *ResourcesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateResourceRequest
	if err := decode(r, &req); err != nil {
		writeInvalid(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeInvalid(w, validators.Message(err))
		return
	}
	res, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.OKMessage(res, "resource created"))
}

func (h *ResourcesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.UpdateResourceRequest
	if err := decode(r, &req); err != nil {
		writeInvalid(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeInvalid(w, validators.Message(err))
		return
	}
	res, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OKMessage(res, "resource updated"))
}

func (h *ResourcesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OKMessage(nil, "resource deleted"))
}

func (h *ResourcesHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Statistics(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(stats))
}

func (h *ResourcesHandler) Types(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Types(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(out))
}
