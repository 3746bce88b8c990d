package service

import (
	"context"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/domain"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/dto"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/metrics"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/repository"
)

// ProjectService handles project operations / Gère les opérations sur les projets
type ProjectService struct {
	*EntityService[domain.Project, dto.ProjectCreate, dto.ProjectUpdate, dto.ProjectResponse]
}

// NewProjectService creates a project service instance / Crée une instance de service de projet
func NewProjectService(repo *repository.Repository[domain.Project], m *metrics.Metrics) *ProjectService {
	return &ProjectService{
		EntityService: NewEntityService[domain.Project, dto.ProjectCreate, dto.ProjectUpdate](repo, dto.ProjectToDTO, m),
	}
}

// DataSourceService handles data source operations, decorating responses
// with the live layout count.
type DataSourceService struct {
	*EntityService[domain.DataSource, dto.DataSourceCreate, dto.DataSourceUpdate, dto.DataSourceResponse]
	layouts *repository.Repository[domain.Layout]
}

// NewDataSourceService creates a data source service instance.
func NewDataSourceService(
	repo *repository.Repository[domain.DataSource],
	layouts *repository.Repository[domain.Layout],
	m *metrics.Metrics,
) *DataSourceService {
	return &DataSourceService{
		EntityService: NewEntityService[domain.DataSource, dto.DataSourceCreate, dto.DataSourceUpdate](repo, dto.DataSourceToDTO, m),
		layouts:       layouts,
	}
}

func (s *DataSourceService) layoutCount(ctx context.Context, dataSourceID uint) (int64, error) {
	return s.layouts.Count(ctx, map[string]any{"data_source_id": dataSourceID})
}

// Get fetches a data source with its layout count.
func (s *DataSourceService) Get(ctx context.Context, id uint) (dto.DataSourceResponse, error) {
	resp, err := s.EntityService.Get(ctx, id)
	if err != nil {
		return resp, err
	}
	n, err := s.layoutCount(ctx, id)
	if err != nil {
		return resp, err
	}
	resp.LayoutCount = n
	return resp, nil
}

// List returns a page of data sources, each with its layout count.
// One count query per row; acceptable at catalog scale.
func (s *DataSourceService) List(ctx context.Context, p repository.ListParams) (Page[dto.DataSourceResponse], error) {
	page, err := s.EntityService.List(ctx, p)
	if err != nil {
		return page, err
	}
	for i := range page.Items {
		n, err := s.layoutCount(ctx, page.Items[i].ID)
		if err != nil {
			return page, err
		}
		page.Items[i].LayoutCount = n
	}
	return page, nil
}

// LayoutService handles layout operations, resolving the parent data
// source name on single-row reads.
type LayoutService struct {
	*EntityService[domain.Layout, dto.LayoutCreate, dto.LayoutUpdate, dto.LayoutResponse]
	dataSources *repository.Repository[domain.DataSource]
}

// NewLayoutService creates a layout service instance.
func NewLayoutService(
	repo *repository.Repository[domain.Layout],
	dataSources *repository.Repository[domain.DataSource],
	m *metrics.Metrics,
) *LayoutService {
	return &LayoutService{
		EntityService: NewEntityService[domain.Layout, dto.LayoutCreate, dto.LayoutUpdate](repo, dto.LayoutToDTO, m),
		dataSources:   dataSources,
	}
}

// Get fetches a layout with its parent data source name. A soft-deleted
// parent leaves the name empty rather than failing the read.
func (s *LayoutService) Get(ctx context.Context, id uint) (dto.LayoutResponse, error) {
	resp, err := s.EntityService.Get(ctx, id)
	if err != nil {
		return resp, err
	}
	if parent, err := s.dataSources.Get(ctx, resp.DataSourceID); err == nil {
		resp.DataSourceName = parent.Name
	}
	return resp, nil
}

// LayoutFieldService handles layout field operations.
type LayoutFieldService struct {
	*EntityService[domain.LayoutField, dto.LayoutFieldCreate, dto.LayoutFieldUpdate, dto.LayoutFieldResponse]
}

// NewLayoutFieldService creates a layout field service instance.
func NewLayoutFieldService(repo *repository.Repository[domain.LayoutField], m *metrics.Metrics) *LayoutFieldService {
	return &LayoutFieldService{
		EntityService: NewEntityService[domain.LayoutField, dto.LayoutFieldCreate, dto.LayoutFieldUpdate](repo, dto.LayoutFieldToDTO, m),
	}
}

// PipelineService handles pipeline operations.
type PipelineService struct {
	*EntityService[domain.Pipeline, dto.PipelineCreate, dto.PipelineUpdate, dto.PipelineResponse]
}

// NewPipelineService creates a pipeline service instance.
func NewPipelineService(repo *repository.Repository[domain.Pipeline], m *metrics.Metrics) *PipelineService {
	return &PipelineService{
		EntityService: NewEntityService[domain.Pipeline, dto.PipelineCreate, dto.PipelineUpdate](repo, dto.PipelineToDTO, m),
	}
}

// FlowService handles flow operations.
type FlowService struct {
	*EntityService[domain.Flow, dto.FlowCreate, dto.FlowUpdate, dto.FlowResponse]
}

// NewFlowService creates a flow service instance.
func NewFlowService(repo *repository.Repository[domain.Flow], m *metrics.Metrics) *FlowService {
	return &FlowService{
		EntityService: NewEntityService[domain.Flow, dto.FlowCreate, dto.FlowUpdate](repo, dto.FlowToDTO, m),
	}
}

// UserDetailService handles user detail operations.
type UserDetailService struct {
	*EntityService[domain.UserDetail, dto.UserDetailCreate, dto.UserDetailUpdate, dto.UserDetailResponse]
}

// NewUserDetailService creates a user detail service instance.
func NewUserDetailService(repo *repository.Repository[domain.UserDetail], m *metrics.Metrics) *UserDetailService {
	return &UserDetailService{
		EntityService: NewEntityService[domain.UserDetail, dto.UserDetailCreate, dto.UserDetailUpdate](repo, dto.UserDetailToDTO, m),
	}
}
