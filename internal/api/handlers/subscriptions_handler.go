package handlers

import (
	"net/http"

	"github.com/techstock/inventory/internal/api/types"
	"github.com/techstock/inventory/internal/api/validators"
	"github.com/techstock/inventory/internal/services"
)

type SubscriptionsHandler struct {
	svc         services.SubscriptionService
	resourceSvc services.ResourceService
	rgSvc       services.ResourceGroupService
}

func NewSubscriptionsHandler(
	svc services.SubscriptionService,
	resourceSvc services.ResourceService,
	rgSvc services.ResourceGroupService,
) *SubscriptionsHandler {
	return &SubscriptionsHandler{svc: svc, resourceSvc: resourceSvc, rgSvc: rgSvc}
}

func (h *SubscriptionsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	items, pg, err := h.svc.List(r.Context(), page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Paginated(items, pg))
}

func (h *SubscriptionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sub, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(sub))
}

func (h *SubscriptionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSubscriptionRequest
	if err := decode(r, &req); err != nil {
		writeInvalid(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeInvalid(w, validators.Message(err))
		return
	}
	sub, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.OKMessage(sub, "subscription created"))
}

func (h *SubscriptionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.UpdateSubscriptionRequest
	if err := decode(r, &req); err != nil {
		writeInvalid(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeInvalid(w, validators.Message(err))
		return
	}
	sub, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OKMessage(sub, "subscription updated"))
}

func (h *SubscriptionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OKMessage(nil, "subscription deleted"))
}

// Resources handles GET /api/v1/subscriptions/{id}/resources.
func (h *SubscriptionsHandler) Resources(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := h.resourceSvc.ListBySubscription(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(items))
}

// ResourceGroups handles GET /api/v1/subscriptions/{id}/resource-groups.
func (h *SubscriptionsHandler) ResourceGroups(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := h.rgSvc.ListBySubscription(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(items))
}
