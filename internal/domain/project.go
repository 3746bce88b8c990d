package domain

// Project is the top-level grouping for catalog objects / Regroupement de premier niveau des objets du catalogue
type Project struct {
	CatalogModel
	Name        string `gorm:"not null;index"`
	Key         string `gorm:"uniqueIndex;not null"` // Derived from Name when absent / Dérivée du nom si absente
	Description string `gorm:"column:description"`
}

func (Project) TableName() string { return "projects" }
