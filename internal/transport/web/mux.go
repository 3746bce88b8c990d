package web

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/app"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/config"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/dto"
)

// NewMux creates and configures the HTTP router / Crée et configure le routeur HTTP
func NewMux(h *Handler, conf *config.Config, container *app.Container) http.Handler {
	mux := http.NewServeMux()
	mw := NewMiddleware(conf, container.Metrics)

	// Health check endpoints (no auth, no rate limiting for load balancers)
	// These endpoints are typically called frequently by monitoring systems
	// Note: SecurityHeaders is applied globally below, so no need to add it here
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /readiness", h.ReadinessCheck)

	// Prometheus metrics endpoint (protected - requires authentication)
	// This endpoint exposes internal system metrics. If Prometheus must
	// scrape without auth, run metrics on a separate internal port or
	// whitelist the scraper at the infrastructure level.
	mux.Handle("GET /metrics", chain(
		func(w http.ResponseWriter, r *http.Request) {
			promhttp.Handler().ServeHTTP(w, r)
		},
		mw.Auth,
	))

	// Catalog resources: uniform list/search/get/create/update/delete
	registerResource[dto.ProjectCreate, dto.ProjectUpdate, dto.ProjectResponse](mux, mw, "projects", container.Projects)
	registerResource[dto.DataSourceCreate, dto.DataSourceUpdate, dto.DataSourceResponse](mux, mw, "data-sources", container.DataSources)
	registerResource[dto.LayoutCreate, dto.LayoutUpdate, dto.LayoutResponse](mux, mw, "layouts", container.Layouts)
	registerResource[dto.LayoutFieldCreate, dto.LayoutFieldUpdate, dto.LayoutFieldResponse](mux, mw, "layout-fields", container.LayoutFields)
	registerResource[dto.PipelineCreate, dto.PipelineUpdate, dto.PipelineResponse](mux, mw, "pipelines", container.Pipelines)
	registerResource[dto.FlowCreate, dto.FlowUpdate, dto.FlowResponse](mux, mw, "flows", container.Flows)
	registerResource[dto.ConnectionCreate, dto.ConnectionUpdate, dto.ConnectionResponse](mux, mw, "connections", container.Connections)
	registerResource[dto.UserDetailCreate, dto.UserDetailUpdate, dto.UserDetailResponse](mux, mw, "user-details", container.UserDetails)

	// Connection probe and catalog imports
	mux.Handle("POST /api/connections/{id}/test", chain(h.TestConnection, mw.Identity, mw.RateLimitStrict))
	mux.Handle("POST /api/imports", chain(h.StartImport, mw.Identity, mw.RateLimitStrict))
	mux.Handle("GET /api/imports", chain(h.ListImports, mw.Identity))
	mux.Handle("GET /api/imports/{id}", chain(h.GetImport, mw.Identity))

	// Global middlewares - applied in reverse order / Middlewares globaux appliqués en ordre inverse
	var handler http.Handler = mux
	handler = mw.MetricsMiddleware(handler) // Metrics first to capture everything
	handler = mw.RateLimit(handler)
	handler = mw.SecurityHeaders(handler)
	handler = mw.Cors(handler)
	handler = Timeout(30 * time.Second)(handler) // 30s timeout for all requests / Timeout de 30s pour toutes les requêtes
	handler = Logging(handler)                   // Logging includes request ID
	handler = RequestID(handler)                 // RequestID first - generates ID for all middleware

	return handler
}

// chain applies middleware to HTTP handler / Applique les middlewares au gestionnaire HTTP
func chain(f http.HandlerFunc, middlewares ...func(http.Handler) http.Handler) http.Handler {
	var handler http.Handler = f

	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}
