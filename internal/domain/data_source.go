package domain

// DataSource groups layouts imported from one source system / Regroupe les layouts importés d'un système source
type DataSource struct {
	CatalogModel
	ProjectID   uint   `gorm:"not null;index"`
	Name        string `gorm:"not null;index"`
	Key         string `gorm:"uniqueIndex;not null"`
	Description string `gorm:"column:description"`
	SourceType  string `gorm:"column:source_type"` // e.g. "postgres", "mysql", "sqlite", "file"
}

func (DataSource) TableName() string { return "data_sources" }

// Layout describes one table or file shape of a data source / Décrit une table ou un fichier d'une source de données
type Layout struct {
	CatalogModel
	DataSourceID uint   `gorm:"not null;index"`
	Name         string `gorm:"not null;index"`
	Key          string `gorm:"not null;index"`
	SchemaName   string `gorm:"column:schema_name"`
	SourceTable  string `gorm:"column:table_name"`
	RowCount     int64  `gorm:"column:row_count;not null;default:0"`
}

func (Layout) TableName() string { return "layouts" }

// LayoutField is one column of a layout / Une colonne d'un layout
type LayoutField struct {
	CatalogModel
	LayoutID     uint   `gorm:"not null;index"`
	Name         string `gorm:"not null;index"`
	ColumnName   string `gorm:"column:column_name;not null"`
	DataType     string `gorm:"column:data_type"`
	Ordinal      int    `gorm:"not null;default:0"`
	Nullable     bool   `gorm:"not null;default:true"`
	IsPrimaryKey bool   `gorm:"column:is_primary_key;not null;default:false"`
}

func (LayoutField) TableName() string { return "layout_fields" }
