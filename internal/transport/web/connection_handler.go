package web

import "net/http"

// TestConnection handles POST /api/connections/{id}/test.
// It probes the registered connection and reports the outcome; an
// unreachable target is a 200 with reachable=false, not an error status.
func (h *Handler) TestConnection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := h.container.Connections.Test(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, result)
}
