package domain

// UserDetail is a catalog user record / Fiche utilisateur du catalogue
//
// Credentials live in the upstream identity provider; this row only
// carries what the catalog needs for display and attribution. Accepts a
// client-supplied ID so it can mirror the provider's identifier.
type UserDetail struct {
	CatalogModel
	Email       string `gorm:"uniqueIndex;not null"`
	DisplayName string `gorm:"column:display_name"`
	Role        string `gorm:"not null;default:'viewer'"`
}

func (UserDetail) TableName() string { return "user_details" }
