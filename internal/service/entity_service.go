// Package service implements the catalog use cases on top of the generic
// repository: DTO mapping, derived fields, the connection probe and the
// background catalog import.
package service

import (
	"context"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/domain"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/metrics"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/repository"
)

// CreateSpec builds a fresh domain row from a create request.
type CreateSpec[T any] interface {
	Entity() T
}

// UpdateSpec exposes the explicitly provided fields of a sparse patch.
type UpdateSpec interface {
	Changes() map[string]any
}

// Page is one page of a listing plus the unpaged total / Une page de liste plus le total non paginé
type Page[R any] struct {
	Items  []R   `json:"items"`
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

// EntityService binds a repository to its DTO projections / Lie un repository à ses projections DTO
//
// T is the domain row, C the create spec, U the update spec, R the
// response. Concrete services embed an EntityService and shadow the
// methods that need derived fields.
type EntityService[T any, C CreateSpec[T], U UpdateSpec, R any] struct {
	repo    *repository.Repository[T]
	toDTO   func(*T) R
	metrics *metrics.Metrics
}

// NewEntityService creates a generic entity service instance / Crée une instance de service d'entité générique
func NewEntityService[T any, C CreateSpec[T], U UpdateSpec, R any](
	repo *repository.Repository[T],
	toDTO func(*T) R,
	m *metrics.Metrics,
) *EntityService[T, C, U, R] {
	return &EntityService[T, C, U, R]{repo: repo, toDTO: toDTO, metrics: m}
}

// Entity returns the entity type name.
func (s *EntityService[T, C, U, R]) Entity() string { return s.repo.Entity() }

func (s *EntityService[T, C, U, R]) record(operation string, err error) {
	if s.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	s.metrics.RecordEntityOperation(s.repo.Entity(), operation, status)
}

// List returns a page of live rows with the matching total / Retourne une page de lignes actives avec le total
func (s *EntityService[T, C, U, R]) List(ctx context.Context, p repository.ListParams) (Page[R], error) {
	var page Page[R]
	rows, err := s.repo.List(ctx, p)
	if err != nil {
		s.record("list", err)
		return page, err
	}
	total, err := s.repo.Count(ctx, p.Filters)
	if err != nil {
		s.record("list", err)
		return page, err
	}

	limit := p.Limit
	if limit <= 0 {
		limit = repository.DefaultLimit
	}
	page = Page[R]{Items: make([]R, 0, len(rows)), Total: total, Offset: p.Offset, Limit: limit}
	for i := range rows {
		page.Items = append(page.Items, s.toDTO(&rows[i]))
	}
	s.record("list", nil)
	return page, nil
}

// Search returns live rows matching typed per-field predicates.
func (s *EntityService[T, C, U, R]) Search(ctx context.Context, params map[string][]string) ([]R, error) {
	rows, err := s.repo.Search(ctx, params)
	if err != nil {
		s.record("search", err)
		return nil, err
	}
	out := make([]R, 0, len(rows))
	for i := range rows {
		out = append(out, s.toDTO(&rows[i]))
	}
	s.record("search", nil)
	return out, nil
}

// Get fetches one live row by ID / Récupère une ligne active par ID
func (s *EntityService[T, C, U, R]) Get(ctx context.Context, id uint) (R, error) {
	var zero R
	row, err := s.repo.Get(ctx, id)
	if err != nil {
		s.record("get", err)
		return zero, err
	}
	s.record("get", nil)
	return s.toDTO(row), nil
}

// Create inserts a new row from the create spec / Insère une ligne à partir de la spéc de création
func (s *EntityService[T, C, U, R]) Create(ctx context.Context, spec C, authz *domain.Authorized) (R, error) {
	var zero R
	entity := spec.Entity()
	row, err := s.repo.Create(ctx, &entity, authz)
	if err != nil {
		s.record("create", err)
		return zero, err
	}
	s.record("create", nil)
	return s.toDTO(row), nil
}

// Update applies a sparse patch and returns the refreshed row.
func (s *EntityService[T, C, U, R]) Update(ctx context.Context, id uint, spec U, authz *domain.Authorized) (R, error) {
	var zero R
	row, err := s.repo.Update(ctx, id, spec.Changes(), authz)
	if err != nil {
		s.record("update", err)
		return zero, err
	}
	s.record("update", nil)
	return s.toDTO(row), nil
}

// Delete soft-deletes a row / Supprime logiquement une ligne
func (s *EntityService[T, C, U, R]) Delete(ctx context.Context, id uint, authz *domain.Authorized) error {
	err := s.repo.Delete(ctx, id, authz)
	s.record("delete", err)
	return err
}
