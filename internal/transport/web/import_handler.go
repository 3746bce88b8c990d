package web

import (
	"net/http"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/dto"
)

// StartImport handles POST /api/imports.
// It validates the request, records a pending run and returns 202: the
// import itself proceeds in the background and is polled by run ID.
func (h *Handler) StartImport(w http.ResponseWriter, r *http.Request) {
	var req dto.ImportStart
	if !decodeJSON(w, r, &req) {
		return
	}

	run, err := h.container.Imports.Start(r.Context(), req, authorizedFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	jsonResponse(w, http.StatusAccepted, run)
}

// GetImport handles GET /api/imports/{id}.
func (h *Handler) GetImport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	run, err := h.container.Imports.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, run)
}

// ListImports handles GET /api/imports.
func (h *Handler) ListImports(w http.ResponseWriter, r *http.Request) {
	p, err := parseListParams(r)
	if err != nil {
		ErrorResponse(w, "invalid pagination: "+err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.container.Imports.List(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, page)
}
