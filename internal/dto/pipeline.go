package dto

import "github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/domain"

// PipelineCreate is the insert shape for pipelines.
type PipelineCreate struct {
	ProjectID   uint   `json:"project_id"`
	Name        string `json:"name"`
	Key         string `json:"key,omitempty"`
	Description string `json:"description,omitempty"`
	Definition  string `json:"definition,omitempty"`
	Schedule    string `json:"schedule,omitempty"`
}

func (c PipelineCreate) Entity() domain.Pipeline {
	return domain.Pipeline{
		ProjectID:   c.ProjectID,
		Name:        c.Name,
		Key:         c.Key,
		Description: c.Description,
		Definition:  c.Definition,
		Schedule:    c.Schedule,
	}
}

// PipelineUpdate is the sparse patch shape for pipelines.
type PipelineUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Definition  *string `json:"definition"`
	Schedule    *string `json:"schedule"`
}

func (u PipelineUpdate) Changes() map[string]any {
	ch := map[string]any{}
	if u.Name != nil {
		ch["name"] = *u.Name
	}
	if u.Description != nil {
		ch["description"] = *u.Description
	}
	if u.Definition != nil {
		ch["definition"] = *u.Definition
	}
	if u.Schedule != nil {
		ch["schedule"] = *u.Schedule
	}
	return ch
}

// PipelineResponse is the output projection for pipelines.
type PipelineResponse struct {
	ID          uint   `json:"id"`
	ProjectID   uint   `json:"project_id"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
	Definition  string `json:"definition,omitempty"`
	Schedule    string `json:"schedule,omitempty"`
	AuditFields
}

// PipelineToDTO converts domain.Pipeline to PipelineResponse.
func PipelineToDTO(p *domain.Pipeline) PipelineResponse {
	return PipelineResponse{
		ID:          p.ID,
		ProjectID:   p.ProjectID,
		Name:        p.Name,
		Key:         p.Key,
		Description: p.Description,
		Definition:  p.Definition,
		Schedule:    p.Schedule,
		AuditFields: auditOf(p.CatalogModel),
	}
}

// FlowCreate is the insert shape for flows.
type FlowCreate struct {
	PipelineID  uint   `json:"pipeline_id"`
	Name        string `json:"name"`
	Key         string `json:"key,omitempty"`
	Description string `json:"description,omitempty"`
	Definition  string `json:"definition,omitempty"`
	Position    int    `json:"position,omitempty"`
}

func (c FlowCreate) Entity() domain.Flow {
	return domain.Flow{
		PipelineID:  c.PipelineID,
		Name:        c.Name,
		Key:         c.Key,
		Description: c.Description,
		Definition:  c.Definition,
		Position:    c.Position,
	}
}

// FlowUpdate is the sparse patch shape for flows.
type FlowUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Definition  *string `json:"definition"`
	Position    *int    `json:"position"`
}

func (u FlowUpdate) Changes() map[string]any {
	ch := map[string]any{}
	if u.Name != nil {
		ch["name"] = *u.Name
	}
	if u.Description != nil {
		ch["description"] = *u.Description
	}
	if u.Definition != nil {
		ch["definition"] = *u.Definition
	}
	if u.Position != nil {
		ch["position"] = *u.Position
	}
	return ch
}

// FlowResponse is the output projection for flows.
type FlowResponse struct {
	ID          uint   `json:"id"`
	PipelineID  uint   `json:"pipeline_id"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
	Definition  string `json:"definition,omitempty"`
	Position    int    `json:"position"`
	AuditFields
}

// FlowToDTO converts domain.Flow to FlowResponse.
func FlowToDTO(f *domain.Flow) FlowResponse {
	return FlowResponse{
		ID:          f.ID,
		PipelineID:  f.PipelineID,
		Name:        f.Name,
		Key:         f.Key,
		Description: f.Description,
		Definition:  f.Definition,
		Position:    f.Position,
		AuditFields: auditOf(f.CatalogModel),
	}
}
