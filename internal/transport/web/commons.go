package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/app"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/domain"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/repository"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/service"
)

// Handler is a container for application dependencies that are required by HTTP handlers.
// By embedding the application's dependency injection container, it provides handlers
// with access to services, repositories, and configuration.
type Handler struct {
	container *app.Container
}

// NewHandler creates and returns a new Handler instance.
// It takes the application's dependency injection container as a parameter,
// making it available to all HTTP handlers attached to this Handler.
func NewHandler(container *app.Container) *Handler {
	return &Handler{container: container}
}

// ErrorResponse is a helper function for sending standardized JSON error responses.
// It sets the "Content-Type" header to "application/json", writes the specified HTTP status code,
// and sends a JSON body with an "error" key containing the provided message.
func ErrorResponse(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"error": message,
	})
}

// jsonResponse is a helper function for sending standardized JSON responses.
// It sets the "Content-Type" header to "application/json" and encodes the provided
// data structure into a JSON response body.
func jsonResponse(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// decodeJSON decodes a request body into dst with a 1MB cap. Unknown
// fields are rejected so typos surface as 400s instead of silent no-ops.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		ErrorResponse(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// pathID parses the {id} path segment / Analyse le segment de chemin {id}
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

// authorizedFrom extracts the optional caller identity from the context.
func authorizedFrom(ctx context.Context) *domain.Authorized {
	if a, ok := ctx.Value(AuthorizedContextKey).(*domain.Authorized); ok {
		return a
	}
	return nil
}

// writeServiceError maps domain failures onto HTTP statuses / Traduit les échecs métier en statuts HTTP
func writeServiceError(w http.ResponseWriter, err error) {
	var notFound *repository.NotFoundError
	var createErr *repository.CreateError
	var unknownField *repository.UnknownFieldError
	var numErr *strconv.NumError

	switch {
	case errors.As(err, &notFound):
		ErrorResponse(w, notFound.Error(), http.StatusNotFound)
	case errors.As(err, &createErr):
		ErrorResponse(w, createErr.Error(), http.StatusConflict)
	case errors.As(err, &unknownField):
		ErrorResponse(w, unknownField.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrNegativeOffset),
		errors.Is(err, service.ErrUnsupportedDialect),
		errors.Is(err, service.ErrMissingDSN),
		errors.As(err, &numErr):
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrSoftDeleteUnsupported):
		ErrorResponse(w, err.Error(), http.StatusMethodNotAllowed)
	default:
		ErrorResponse(w, "internal server error", http.StatusInternalServerError)
	}
}
