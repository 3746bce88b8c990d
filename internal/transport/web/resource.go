package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/domain"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/repository"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/service"
)

// entityAPI is the uniform surface every catalog resource exposes over
// HTTP. The concrete services satisfy it via their embedded generic
// service, including the ones that shadow Get or List for derived fields.
type entityAPI[C any, U any, R any] interface {
	List(ctx context.Context, p repository.ListParams) (service.Page[R], error)
	Search(ctx context.Context, params map[string][]string) ([]R, error)
	Get(ctx context.Context, id uint) (R, error)
	Create(ctx context.Context, spec C, authz *domain.Authorized) (R, error)
	Update(ctx context.Context, id uint, spec U, authz *domain.Authorized) (R, error)
	Delete(ctx context.Context, id uint, authz *domain.Authorized) error
}

// Reserved list query parameters; everything else becomes an equality filter.
var reservedListParams = map[string]bool{
	"offset":   true,
	"limit":    true,
	"order_by": true,
	"order":    true,
}

// parseListParams extracts pagination, ordering and filters from the query.
func parseListParams(r *http.Request) (repository.ListParams, error) {
	q := r.URL.Query()
	var p repository.ListParams

	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, err
		}
		p.Offset = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, err
		}
		p.Limit = n
	}
	p.OrderBy = q.Get("order_by")
	p.Desc = q.Get("order") == "desc"

	for name, values := range q {
		if reservedListParams[name] || len(values) == 0 {
			continue
		}
		if p.Filters == nil {
			p.Filters = make(map[string]any)
		}
		p.Filters[name] = values[0]
	}
	return p, nil
}

// registerResource wires the six uniform routes of one catalog entity.
// Identity is optional on every route: anonymous callers get full access,
// authenticated callers additionally get audit attribution.
func registerResource[C any, U any, R any](mux *http.ServeMux, mw *Middleware, path string, svc entityAPI[C, U, R]) {
	list := func(w http.ResponseWriter, r *http.Request) {
		p, err := parseListParams(r)
		if err != nil {
			ErrorResponse(w, "invalid pagination: "+err.Error(), http.StatusBadRequest)
			return
		}
		page, err := svc.List(r.Context(), p)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, page)
	}

	search := func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.Search(r.Context(), r.URL.Query())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, rows)
	}

	get := func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		row, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, row)
	}

	create := func(w http.ResponseWriter, r *http.Request) {
		var spec C
		if !decodeJSON(w, r, &spec) {
			return
		}
		row, err := svc.Create(r.Context(), spec, authorizedFrom(r.Context()))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		jsonResponse(w, http.StatusCreated, row)
	}

	update := func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var spec U
		if !decodeJSON(w, r, &spec) {
			return
		}
		row, err := svc.Update(r.Context(), id, spec, authorizedFrom(r.Context()))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, row)
	}

	del := func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), id, authorizedFrom(r.Context())); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}

	mux.Handle("GET /api/"+path, chain(list, mw.Identity))
	mux.Handle("GET /api/"+path+"/search", chain(search, mw.Identity))
	mux.Handle("POST /api/"+path, chain(create, mw.Identity))
	mux.Handle("GET /api/"+path+"/{id}", chain(get, mw.Identity))
	mux.Handle("PATCH /api/"+path+"/{id}", chain(update, mw.Identity))
	mux.Handle("DELETE /api/"+path+"/{id}", chain(del, mw.Identity))
}
