package handlers

import (
	"net/http"

	"github.com/techstock/inventory/internal/api/types"
	"github.com/techstock/inventory/internal/api/validators"
	"github.com/techstock/inventory/internal/services"
)

type ResourceGroupsHandler struct {
	svc         services.ResourceGroupService
	resourceSvc services.ResourceService
}

func NewResourceGroupsHandler(svc services.ResourceGroupService, resourceSvc services.ResourceService) *ResourceGroupsHandler {
	return &ResourceGroupsHandler{svc: svc, resourceSvc: resourceSvc}
}

func (h *ResourceGroupsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	items, pg, err := h.svc.List(r.Context(), page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Paginated(items, pg))
}

func (h *ResourceGroupsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rg, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(rg))
}

func (h *ResourceGroupsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateResourceGroupRequest
	if err := decode(r, &req); err != nil {
		writeInvalid(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeInvalid(w, validators.Message(err))
		return
	}
	rg, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.OKMessage(rg, "resource group created"))
}

func (h *ResourceGroupsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.UpdateResourceGroupRequest
	if err := decode(r, &req); err != nil {
		writeInvalid(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeInvalid(w, validators.Message(err))
		return
	}
	rg, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OKMessage(rg, "resource group updated"))
}

func (h *ResourceGroupsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OKMessage(nil, "resource group deleted"))
}

// Resources handles GET /api/v1/resource-groups/{id}/resources.
func (h *ResourceGroupsHandler) Resources(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := h.resourceSvc.ListByResourceGroup(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(items))
}
