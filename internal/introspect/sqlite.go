package introspect

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// sqliteSchema is the only schema a plain SQLite file exposes.
const sqliteSchema = "main"

type sqliteIntrospector struct {
	db *sql.DB
}

func openSQLite(dsn string) (Introspector, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite source: %w", err)
	}
	return &sqliteIntrospector{db: db}, nil
}

func (s *sqliteIntrospector) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqliteIntrospector) Schemas(ctx context.Context) ([]string, error) {
	return []string{sqliteSchema}, nil
}

func (s *sqliteIntrospector) Tables(ctx context.Context, schema string) ([]Table, error) {
	query := `SELECT name FROM sqlite_master
	          WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	          ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []Table
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, Table{Schema: sqliteSchema, Name: name})
	}
	return tables, rows.Err()
}

func (s *sqliteIntrospector) Columns(ctx context.Context, schema, table string) ([]Column, error) {
	// pragma_table_info supports parameter binding, unlike PRAGMA syntax.
	query := `SELECT cid, name, type, "notnull", pk FROM pragma_table_info(?) ORDER BY cid`
	rows, err := s.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var c Column
		var cid, notNull, pk int
		if err := rows.Scan(&cid, &c.Name, &c.DataType, &notNull, &pk); err != nil {
			return nil, err
		}
		c.Ordinal = cid + 1 // pragma ordinals start at 0
		c.Nullable = notNull == 0
		c.IsPrimaryKey = pk > 0
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

func (s *sqliteIntrospector) Close() error {
	return s.db.Close()
}
