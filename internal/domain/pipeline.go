package domain

// Pipeline is an orchestrated set of flows / Ensemble orchestré de flows
type Pipeline struct {
	CatalogModel
	ProjectID   uint   `gorm:"not null;index"`
	Name        string `gorm:"not null;index"`
	Key         string `gorm:"uniqueIndex;not null"`
	Description string `gorm:"column:description"`
	Definition  string `gorm:"column:definition"` // JSON document, stored verbatim / Document JSON, stocké tel quel
	Schedule    string `gorm:"column:schedule"`   // Cron expression, informational only / Expression cron, informative
}

func (Pipeline) TableName() string { return "pipelines" }

// Flow is one step of a pipeline / Une étape d'un pipeline
type Flow struct {
	CatalogModel
	PipelineID  uint   `gorm:"not null;index"`
	Name        string `gorm:"not null;index"`
	Key         string `gorm:"not null;index"`
	Description string `gorm:"column:description"`
	Definition  string `gorm:"column:definition"`
	Position    int    `gorm:"not null;default:0"` // Order within the pipeline / Ordre dans le pipeline
}

func (Flow) TableName() string { return "flows" }
