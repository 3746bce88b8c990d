package dto

import "github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/domain"

// DataSourceCreate is the insert shape for data sources.
type DataSourceCreate struct {
	ProjectID   uint   `json:"project_id"`
	Name        string `json:"name"`
	Key         string `json:"key,omitempty"`
	Description string `json:"description,omitempty"`
	SourceType  string `json:"source_type,omitempty"`
}

func (c DataSourceCreate) Entity() domain.DataSource {
	return domain.DataSource{
		ProjectID:   c.ProjectID,
		Name:        c.Name,
		Key:         c.Key,
		Description: c.Description,
		SourceType:  c.SourceType,
	}
}

// DataSourceUpdate is the sparse patch shape for data sources.
type DataSourceUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SourceType  *string `json:"source_type"`
}

func (u DataSourceUpdate) Changes() map[string]any {
	ch := map[string]any{}
	if u.Name != nil {
		ch["name"] = *u.Name
	}
	if u.Description != nil {
		ch["description"] = *u.Description
	}
	if u.SourceType != nil {
		ch["source_type"] = *u.SourceType
	}
	return ch
}

// DataSourceResponse carries the derived layout count alongside the row.
type DataSourceResponse struct {
	ID          uint   `json:"id"`
	ProjectID   uint   `json:"project_id"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
	SourceType  string `json:"source_type,omitempty"`
	LayoutCount int64  `json:"layout_count"`
	AuditFields
}

// DataSourceToDTO converts domain.DataSource to DataSourceResponse.
func DataSourceToDTO(d *domain.DataSource) DataSourceResponse {
	return DataSourceResponse{
		ID:          d.ID,
		ProjectID:   d.ProjectID,
		Name:        d.Name,
		Key:         d.Key,
		Description: d.Description,
		SourceType:  d.SourceType,
		AuditFields: auditOf(d.CatalogModel),
	}
}

// LayoutCreate is the insert shape for layouts.
type LayoutCreate struct {
	DataSourceID uint   `json:"data_source_id"`
	Name         string `json:"name"`
	Key          string `json:"key,omitempty"`
	SchemaName   string `json:"schema_name,omitempty"`
	TableName    string `json:"table_name,omitempty"`
	RowCount     int64  `json:"row_count,omitempty"`
}

func (c LayoutCreate) Entity() domain.Layout {
	return domain.Layout{
		DataSourceID: c.DataSourceID,
		Name:         c.Name,
		Key:          c.Key,
		SchemaName:   c.SchemaName,
		SourceTable:  c.TableName,
		RowCount:     c.RowCount,
	}
}

// LayoutUpdate is the sparse patch shape for layouts.
type LayoutUpdate struct {
	Name       *string `json:"name"`
	SchemaName *string `json:"schema_name"`
	TableName  *string `json:"table_name"`
	RowCount   *int64  `json:"row_count"`
}

func (u LayoutUpdate) Changes() map[string]any {
	ch := map[string]any{}
	if u.Name != nil {
		ch["name"] = *u.Name
	}
	if u.SchemaName != nil {
		ch["schema_name"] = *u.SchemaName
	}
	if u.TableName != nil {
		ch["table_name"] = *u.TableName
	}
	if u.RowCount != nil {
		ch["row_count"] = *u.RowCount
	}
	return ch
}

// LayoutResponse carries the parent data source name when resolved.
type LayoutResponse struct {
	ID             uint   `json:"id"`
	DataSourceID   uint   `json:"data_source_id"`
	DataSourceName string `json:"data_source_name,omitempty"`
	Name           string `json:"name"`
	Key            string `json:"key"`
	SchemaName     string `json:"schema_name,omitempty"`
	TableName      string `json:"table_name,omitempty"`
	RowCount       int64  `json:"row_count"`
	AuditFields
}

// LayoutToDTO converts domain.Layout to LayoutResponse.
func LayoutToDTO(l *domain.Layout) LayoutResponse {
	return LayoutResponse{
		ID:           l.ID,
		DataSourceID: l.DataSourceID,
		Name:         l.Name,
		Key:          l.Key,
		SchemaName:   l.SchemaName,
		TableName:    l.SourceTable,
		RowCount:     l.RowCount,
		AuditFields:  auditOf(l.CatalogModel),
	}
}

// LayoutFieldCreate is the insert shape for layout fields.
type LayoutFieldCreate struct {
	LayoutID     uint   `json:"layout_id"`
	Name         string `json:"name"`
	ColumnName   string `json:"column_name,omitempty"`
	DataType     string `json:"data_type,omitempty"`
	Ordinal      int    `json:"ordinal,omitempty"`
	Nullable     bool   `json:"nullable,omitempty"`
	IsPrimaryKey bool   `json:"is_primary_key,omitempty"`
}

func (c LayoutFieldCreate) Entity() domain.LayoutField {
	return domain.LayoutField{
		LayoutID:     c.LayoutID,
		Name:         c.Name,
		ColumnName:   c.ColumnName,
		DataType:     c.DataType,
		Ordinal:      c.Ordinal,
		Nullable:     c.Nullable,
		IsPrimaryKey: c.IsPrimaryKey,
	}
}

// LayoutFieldUpdate is the sparse patch shape for layout fields.
type LayoutFieldUpdate struct {
	Name         *string `json:"name"`
	ColumnName   *string `json:"column_name"`
	DataType     *string `json:"data_type"`
	Ordinal      *int    `json:"ordinal"`
	Nullable     *bool   `json:"nullable"`
	IsPrimaryKey *bool   `json:"is_primary_key"`
}

func (u LayoutFieldUpdate) Changes() map[string]any {
	ch := map[string]any{}
	if u.Name != nil {
		ch["name"] = *u.Name
	}
	if u.ColumnName != nil {
		ch["column_name"] = *u.ColumnName
	}
	if u.DataType != nil {
		ch["data_type"] = *u.DataType
	}
	if u.Ordinal != nil {
		ch["ordinal"] = *u.Ordinal
	}
	if u.Nullable != nil {
		ch["nullable"] = *u.Nullable
	}
	if u.IsPrimaryKey != nil {
		ch["is_primary_key"] = *u.IsPrimaryKey
	}
	return ch
}

// LayoutFieldResponse is the output projection for layout fields.
type LayoutFieldResponse struct {
	ID           uint   `json:"id"`
	LayoutID     uint   `json:"layout_id"`
	Name         string `json:"name"`
	ColumnName   string `json:"column_name,omitempty"`
	DataType     string `json:"data_type,omitempty"`
	Ordinal      int    `json:"ordinal"`
	Nullable     bool   `json:"nullable"`
	IsPrimaryKey bool   `json:"is_primary_key"`
	AuditFields
}

// LayoutFieldToDTO converts domain.LayoutField to LayoutFieldResponse.
func LayoutFieldToDTO(f *domain.LayoutField) LayoutFieldResponse {
	return LayoutFieldResponse{
		ID:           f.ID,
		LayoutID:     f.LayoutID,
		Name:         f.Name,
		ColumnName:   f.ColumnName,
		DataType:     f.DataType,
		Ordinal:      f.Ordinal,
		Nullable:     f.Nullable,
		IsPrimaryKey: f.IsPrimaryKey,
		AuditFields:  auditOf(f.CatalogModel),
	}
}
