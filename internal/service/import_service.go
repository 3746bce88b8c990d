package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/domain"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/dto"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/introspect"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/metrics"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/repository"
)

// defaultImportTimeout bounds one background import end to end when the
// config does not set one.
const defaultImportTimeout = 10 * time.Minute

// ImportService runs bulk catalog imports / Exécute les imports de catalogue en masse
//
// Start is fire-and-forget: it records a pending run, launches the
// introspection in a detached goroutine and returns immediately. The run
// row is the only progress channel; clients poll it by ID.
type ImportService struct {
	runs        *repository.Repository[domain.ImportRun]
	connections *repository.Repository[domain.Connection]
	dataSources *repository.Repository[domain.DataSource]
	layouts     *repository.Repository[domain.Layout]
	fields      *repository.Repository[domain.LayoutField]
	metrics     *metrics.Metrics
	logger      *slog.Logger
	timeout     time.Duration

	// open is swapped for a fake in tests.
	open func(dialect, dsn string) (introspect.Introspector, error)
}

// NewImportService creates an import service instance / Crée une instance de service d'import
func NewImportService(
	runs *repository.Repository[domain.ImportRun],
	connections *repository.Repository[domain.Connection],
	dataSources *repository.Repository[domain.DataSource],
	layouts *repository.Repository[domain.Layout],
	fields *repository.Repository[domain.LayoutField],
	m *metrics.Metrics,
	logger *slog.Logger,
	timeout time.Duration,
) *ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultImportTimeout
	}
	return &ImportService{
		runs:        runs,
		connections: connections,
		dataSources: dataSources,
		layouts:     layouts,
		fields:      fields,
		metrics:     m,
		logger:      logger,
		timeout:     timeout,
		open:        introspect.Open,
	}
}

// Start validates the request, records a pending run and returns it.
// The import itself proceeds on a background context: cancelling the
// originating request does not cancel the run.
func (s *ImportService) Start(ctx context.Context, req dto.ImportStart, authz *domain.Authorized) (dto.ImportRunResponse, error) {
	conn, err := s.connections.Get(ctx, req.ConnectionID)
	if err != nil {
		return dto.ImportRunResponse{}, err
	}
	if _, err := s.dataSources.Get(ctx, req.DataSourceID); err != nil {
		return dto.ImportRunResponse{}, err
	}
	if !introspect.Supported(conn.Dialect) {
		return dto.ImportRunResponse{}, ErrUnsupportedDialect
	}
	if conn.DSN == "" {
		return dto.ImportRunResponse{}, ErrMissingDSN
	}

	run := &domain.ImportRun{
		ConnectionID: req.ConnectionID,
		DataSourceID: req.DataSourceID,
		Status:       domain.ImportPending,
	}
	run, err = s.runs.Create(ctx, run, authz)
	if err != nil {
		return dto.ImportRunResponse{}, err
	}

	go s.run(run.ID, conn, req.DataSourceID, authz)

	return dto.ImportRunToDTO(run), nil
}

// Get fetches one import run by ID / Récupère un import par ID
func (s *ImportService) Get(ctx context.Context, id uint) (dto.ImportRunResponse, error) {
	run, err := s.runs.Get(ctx, id)
	if err != nil {
		return dto.ImportRunResponse{}, err
	}
	return dto.ImportRunToDTO(run), nil
}

// List returns a page of import runs, most recent first by default.
func (s *ImportService) List(ctx context.Context, p repository.ListParams) (Page[dto.ImportRunResponse], error) {
	if p.OrderBy == "" {
		p.OrderBy = "id"
		p.Desc = true
	}
	rows, err := s.runs.List(ctx, p)
	if err != nil {
		return Page[dto.ImportRunResponse]{}, err
	}
	total, err := s.runs.Count(ctx, p.Filters)
	if err != nil {
		return Page[dto.ImportRunResponse]{}, err
	}
	limit := p.Limit
	if limit <= 0 {
		limit = repository.DefaultLimit
	}
	page := Page[dto.ImportRunResponse]{Items: make([]dto.ImportRunResponse, 0, len(rows)), Total: total, Offset: p.Offset, Limit: limit}
	for i := range rows {
		page.Items = append(page.Items, dto.ImportRunToDTO(&rows[i]))
	}
	return page, nil
}

// run executes one import to completion on a fresh context.
func (s *ImportService) run(runID uint, conn *domain.Connection, dataSourceID uint, authz *domain.Authorized) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	log := s.logger.With("run_id", runID, "connection_id", conn.ID, "data_source_id", dataSourceID)
	log.Info("catalog import started", "dialect", conn.Dialect)

	now := time.Now().UTC()
	if _, err := s.runs.Update(ctx, runID, map[string]any{
		"status":     string(domain.ImportRunning),
		"started_at": now,
	}, nil); err != nil {
		log.Error("failed to mark import running", "error", err)
		return
	}

	layoutsCreated, fieldsCreated, err := s.introspectAndStore(ctx, conn, dataSourceID, authz)
	if err != nil {
		log.Error("catalog import failed", "error", err)
		s.finish(ctx, runID, map[string]any{
			"status":      string(domain.ImportFailed),
			"error":       err.Error(),
			"finished_at": time.Now().UTC(),
		})
		if s.metrics != nil {
			s.metrics.RecordImportRun("failed")
		}
		return
	}

	s.finish(ctx, runID, map[string]any{
		"status":          string(domain.ImportCompleted),
		"layouts_created": layoutsCreated,
		"fields_created":  fieldsCreated,
		"finished_at":     time.Now().UTC(),
	})
	if s.metrics != nil {
		s.metrics.RecordImportRun("completed")
		s.metrics.RecordImportedObjects("layout", layoutsCreated)
		s.metrics.RecordImportedObjects("field", fieldsCreated)
	}
	log.Info("catalog import completed", "layouts", layoutsCreated, "fields", fieldsCreated)
}

func (s *ImportService) finish(ctx context.Context, runID uint, changes map[string]any) {
	if _, err := s.runs.Update(ctx, runID, changes, nil); err != nil {
		s.logger.Error("failed to finalize import run", "run_id", runID, "error", err)
	}
}

// introspectAndStore walks every schema of the source and materializes
// one layout per base table, one layout field per column.
func (s *ImportService) introspectAndStore(ctx context.Context, conn *domain.Connection, dataSourceID uint, authz *domain.Authorized) (int, int, error) {
	intr, err := s.open(conn.Dialect, conn.DSN)
	if err != nil {
		return 0, 0, fmt.Errorf("open source: %w", err)
	}
	defer intr.Close()

	schemas, err := intr.Schemas(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list schemas: %w", err)
	}

	var tables []introspect.Table
	for _, schemaName := range schemas {
		list, err := intr.Tables(ctx, schemaName)
		if err != nil {
			return 0, 0, fmt.Errorf("list tables of %s: %w", schemaName, err)
		}
		tables = append(tables, list...)
	}
	if len(tables) == 0 {
		return 0, 0, nil
	}

	layouts := make([]*domain.Layout, 0, len(tables))
	for _, t := range tables {
		layouts = append(layouts, &domain.Layout{
			DataSourceID: dataSourceID,
			Name:         t.Name,
			Key:          repository.NameToKey(t.Schema + "_" + t.Name),
			SchemaName:   t.Schema,
			SourceTable:  t.Name,
		})
	}
	if err := s.layouts.CreateAll(ctx, layouts, authz); err != nil {
		return 0, 0, fmt.Errorf("store layouts: %w", err)
	}

	var fields []*domain.LayoutField
	for i, t := range tables {
		columns, err := intr.Columns(ctx, t.Schema, t.Name)
		if err != nil {
			return len(layouts), 0, fmt.Errorf("list columns of %s.%s: %w", t.Schema, t.Name, err)
		}
		for _, c := range columns {
			fields = append(fields, &domain.LayoutField{
				LayoutID:     layouts[i].ID,
				Name:         c.Name,
				ColumnName:   c.Name,
				DataType:     c.DataType,
				Ordinal:      c.Ordinal,
				Nullable:     c.Nullable,
				IsPrimaryKey: c.IsPrimaryKey,
			})
		}
	}
	if err := s.fields.CreateAll(ctx, fields, authz); err != nil {
		return len(layouts), 0, fmt.Errorf("store layout fields: %w", err)
	}

	return len(layouts), len(fields), nil
}
