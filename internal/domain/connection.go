package domain

// Connection holds the coordinates of an external database / Coordonnées d'une base de données externe
//
// The DSN may embed credentials; it never leaves the service through the
// API (response shapes omit it). Connections accept a client-supplied ID,
// a quirk inherited from upstream tooling that pre-allocates IDs.
type Connection struct {
	CatalogModel
	Name         string `gorm:"not null;index"`
	Key          string `gorm:"uniqueIndex;not null"`
	Dialect      string `gorm:"not null"` // "postgres", "mysql" or "sqlite"
	Host         string
	Port         int    `gorm:"not null;default:0"`
	DatabaseName string `gorm:"column:database_name"`
	Username     string
	DSN          string `gorm:"column:dsn"`
}

func (Connection) TableName() string { return "connections" }
