package handlers

import (
	"net/http"
	"strings"

	"github.com/techstock/inventory/internal/api/types"
	"github.com/techstock/inventory/internal/services"
)

type TagsHandler struct {
	svc services.TagService
}

func NewTagsHandler(svc services.TagService) *TagsHandler {
	return &TagsHandler{svc: svc}
}

// Overview handles GET /api/v1/tags.
func (h *TagsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Overview(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(out))
}

// Suggestions handles GET /api/v1/tags/suggestions?q=term.
func (h *TagsHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		writeInvalid(w, "query parameter q is required")
		return
	}
	out, err := h.svc.Suggestions(r.Context(), term)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(out))
}
