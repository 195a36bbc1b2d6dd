package handlers

import (
	"net/http"

	"github.com/techstock/inventory/internal/api/types"
	"github.com/techstock/inventory/internal/api/validators"
	"github.com/techstock/inventory/internal/services"
)

type ApplicationsHandler struct {
	svc         services.ApplicationService
	resourceSvc services.ResourceService
}

func NewApplicationsHandler(svc services.ApplicationService, resourceSvc services.ResourceService) *ApplicationsHandler {
	return &ApplicationsHandler{svc: svc, resourceSvc: resourceSvc}
}

func (h *ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	items, pg, err := h.svc.List(r.Context(), page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Paginated(items, pg))
}

func (h *ApplicationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	app, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(app))
}

func (h *ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateApplicationRequest
	if err := decode(r, &req); err != nil {
		writeInvalid(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeInvalid(w, validators.Message(err))
		return
	}
	app, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.OKMessage(app, "application created"))
}

func (h *ApplicationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.UpdateApplicationRequest
	if err := decode(r, &req); err != nil {
		writeInvalid(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeInvalid(w, validators.Message(err))
		return
	}
	app, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OKMessage(app, "application updated"))
}

func (h *ApplicationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OKMessage(nil, "application deleted"))
}

// Resources handles GET /api/v1/applications/{id}/resources.
func (h *ApplicationsHandler) Resources(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := h.resourceSvc.ListByApplication(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(items))
}
