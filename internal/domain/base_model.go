package domain

import "time"

// CatalogModel provides common fields for catalog entities / Fournit les champs communs aux entités du catalogue
//
// Soft delete is a two-state flag: a row is either active (false) or
// deleted (true). The column is NOT NULL so there is no "absent" state.
// Audit columns are written by the repository layer only, never by callers.
type CatalogModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time // Record creation time / Heure de création de l'enregistrement
	UpdatedAt time.Time // Record last update time / Heure de dernière mise à jour
	CreatedBy *uint     `gorm:"column:created_by"` // Attribution on insert / Attribution à l'insertion
	UpdatedBy *uint     `gorm:"column:updated_by"` // Attribution on update / Attribution à la mise à jour
	DeletedBy *uint     `gorm:"column:deleted_by"` // Attribution on soft delete / Attribution à la suppression logique
	IsDeleted bool      `gorm:"column:is_deleted;not null;default:false"`
}

// Deleted checks if soft-deleted / Vérifie si supprimé (soft delete)
func (m *CatalogModel) Deleted() bool {
	return m.IsDeleted
}

// Authorized is the attribution context extracted by the auth layer.
// The repository never enforces permissions with it; it only stamps
// created_by/updated_by/deleted_by when an Authorized value is present.
type Authorized struct {
	UserDetailID uint
}
