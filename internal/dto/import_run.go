package dto

import (
	"time"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/domain"
)

// ImportStart is the request shape to launch a catalog import.
type ImportStart struct {
	ConnectionID uint `json:"connection_id"`
	DataSourceID uint `json:"data_source_id"`
}

// ImportRunResponse is the output projection for import runs.
type ImportRunResponse struct {
	ID             uint       `json:"id"`
	ConnectionID   uint       `json:"connection_id"`
	DataSourceID   uint       `json:"data_source_id"`
	Status         string     `json:"status"`
	LayoutsCreated int        `json:"layouts_created"`
	FieldsCreated  int        `json:"fields_created"`
	Error          string     `json:"error,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ImportRunToDTO converts domain.ImportRun to ImportRunResponse.
func ImportRunToDTO(r *domain.ImportRun) ImportRunResponse {
	return ImportRunResponse{
		ID:             r.ID,
		ConnectionID:   r.ConnectionID,
		DataSourceID:   r.DataSourceID,
		Status:         string(r.Status),
		LayoutsCreated: r.LayoutsCreated,
		FieldsCreated:  r.FieldsCreated,
		Error:          r.Error,
		StartedAt:      r.StartedAt,
		FinishedAt:     r.FinishedAt,
		CreatedAt:      r.CreatedAt,
	}
}
