package introspect

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

type mysqlIntrospector struct {
	db *sql.DB
}

func openMySQL(dsn string) (Introspector, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql source: %w", err)
	}
	return &mysqlIntrospector{db: db}, nil
}

func (m *mysqlIntrospector) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *mysqlIntrospector) Schemas(ctx context.Context) ([]string, error) {
	query := `SELECT schema_name FROM information_schema.schemata
	          WHERE schema_name NOT IN ('mysql', 'information_schema', 'performance_schema', 'sys')
	          ORDER BY schema_name`
	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schemas []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		schemas = append(schemas, name)
	}
	return schemas, rows.Err()
}

func (m *mysqlIntrospector) Tables(ctx context.Context, schema string) ([]Table, error) {
	query := `SELECT table_name FROM information_schema.tables
	          WHERE table_schema = ? AND table_type = 'BASE TABLE'
	          ORDER BY table_name`
	rows, err := m.db.QueryContext(ctx, query, schema)
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
		tables = append(tables, Table{Schema: schema, Name: name})
	}
	return tables, rows.Err()
}

func (m *mysqlIntrospector) Columns(ctx context.Context, schema, table string) ([]Column, error) {
	query := `SELECT column_name, data_type, ordinal_position, is_nullable, column_key
	          FROM information_schema.columns
	          WHERE table_schema = ? AND table_name = ?
	          ORDER BY ordinal_position`
	rows, err := m.db.QueryContext(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var c Column
		var nullable, key string
		if err := rows.Scan(&c.Name, &c.DataType, &c.Ordinal, &nullable, &key); err != nil {
			return nil, err
		}
		c.Nullable = nullable == "YES"
		c.IsPrimaryKey = key == "PRI"
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

func (m *mysqlIntrospector) Close() error {
	return m.db.Close()
}
