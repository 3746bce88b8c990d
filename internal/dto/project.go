// Package dto defines the request and response shapes of the catalog
// API: what a client may set on insert (create specs), what it may patch
// (update specs, pointer fields with sparse semantics) and what it gets
// back (responses). Audit columns and soft-delete flags never appear in
// create or update specs.
package dto

import (
	"time"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/domain"
)

// AuditFields is the audit projection shared by responses / Projection d'audit commune aux réponses
type AuditFields struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *uint     `json:"created_by,omitempty"`
	UpdatedBy *uint     `json:"updated_by,omitempty"`
}

func auditOf(m domain.CatalogModel) AuditFields {
	return AuditFields{
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		CreatedBy: m.CreatedBy,
		UpdatedBy: m.UpdatedBy,
	}
}

// ProjectCreate is the insert shape for projects / Forme d'insertion des projets
type ProjectCreate struct {
	Name        string `json:"name"`
	Key         string `json:"key,omitempty"` // Derived from name when omitted / Dérivée du nom si omise
	Description string `json:"description,omitempty"`
}

// Entity maps the create spec onto a new domain row.
func (c ProjectCreate) Entity() domain.Project {
	return domain.Project{Name: c.Name, Key: c.Key, Description: c.Description}
}

// ProjectUpdate is the sparse patch shape for projects / Forme de patch partiel des projets
type ProjectUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Changes returns only the explicitly provided fields.
func (u ProjectUpdate) Changes() map[string]any {
	ch := map[string]any{}
	if u.Name != nil {
		ch["name"] = *u.Name
	}
	if u.Description != nil {
		ch["description"] = *u.Description
	}
	return ch
}

// ProjectResponse is the output projection for projects / Projection de sortie des projets
type ProjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
	AuditFields
}

// ProjectToDTO converts domain.Project to ProjectResponse / Convertit domain.Project en ProjectResponse
func ProjectToDTO(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Key:         p.Key,
		Description: p.Description,
		AuditFields: auditOf(p.CatalogModel),
	}
}
