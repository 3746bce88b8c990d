package domain

import "time"

// ImportRunStatus represents the lifecycle of a bulk import / Représente le cycle de vie d'un import en masse
type ImportRunStatus string

const (
	ImportPending   ImportRunStatus = "pending"
	ImportRunning   ImportRunStatus = "running"
	ImportCompleted ImportRunStatus = "completed"
	ImportFailed    ImportRunStatus = "failed"
)

// IsValid checks if status is valid / Vérifie si le statut est valide
func (s ImportRunStatus) IsValid() bool {
	return s == ImportPending || s == ImportRunning || s == ImportCompleted || s == ImportFailed
}

// Terminal reports whether the run can no longer change state.
func (s ImportRunStatus) Terminal() bool {
	return s == ImportCompleted || s == ImportFailed
}

// ImportRun records one background catalog import / Enregistre un import de catalogue en arrière-plan
//
// Import runs are an audit trail, not catalog content: they have no soft
// delete and are never removed through the repository.
type ImportRun struct {
	ID             uint            `gorm:"primaryKey"`
	ConnectionID   uint            `gorm:"not null;index"`
	DataSourceID   uint            `gorm:"not null;index"`
	Status         ImportRunStatus `gorm:"not null;default:'pending'"`
	LayoutsCreated int             `gorm:"not null;default:0"`
	FieldsCreated  int             `gorm:"not null;default:0"`
	Error          string          `gorm:"column:error"`
	StartedAt      *time.Time
	FinishedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CreatedBy      *uint `gorm:"column:created_by"`
}

func (ImportRun) TableName() string { return "import_runs" }
