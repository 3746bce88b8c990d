package introspect

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type postgresIntrospector struct {
	db *sql.DB
}

func openPostgres(dsn string) (Introspector, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres source: %w", err)
	}
	return &postgresIntrospector{db: db}, nil
}

func (p *postgresIntrospector) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *postgresIntrospector) Schemas(ctx context.Context) ([]string, error) {
	query := `SELECT schema_name FROM information_schema.schemata
	          WHERE schema_name NOT IN ('pg_catalog', 'information_schema')
	            AND schema_name NOT LIKE 'pg_%'
	          ORDER BY schema_name`
	rows, err := p.db.QueryContext(ctx, query)
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

func (p *postgresIntrospector) Tables(ctx context.Context, schema string) ([]Table, error) {
	query := `SELECT table_name FROM information_schema.tables
	          WHERE table_schema = $1 AND table_type = 'BASE TABLE'
	          ORDER BY table_name`
	rows, err := p.db.QueryContext(ctx, query, schema)
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

func (p *postgresIntrospector) Columns(ctx context.Context, schema, table string) ([]Column, error) {
	pks, err := p.primaryKeys(ctx, schema, table)
	if err != nil {
		return nil, err
	}

	query := `SELECT column_name, data_type, ordinal_position, is_nullable
	          FROM information_schema.columns
	          WHERE table_schema = $1 AND table_name = $2
	          ORDER BY ordinal_position`
	rows, err := p.db.QueryContext(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var c Column
		var nullable string
		if err := rows.Scan(&c.Name, &c.DataType, &c.Ordinal, &nullable); err != nil {
			return nil, err
		}
		c.Nullable = nullable == "YES"
		c.IsPrimaryKey = pks[c.Name]
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

func (p *postgresIntrospector) primaryKeys(ctx context.Context, schema, table string) (map[string]bool, error) {
	query := `SELECT kcu.column_name
	          FROM information_schema.table_constraints tc
	          JOIN information_schema.key_column_usage kcu
	            ON tc.constraint_name = kcu.constraint_name
	           AND tc.table_schema = kcu.table_schema
	          WHERE tc.constraint_type = 'PRIMARY KEY'
	            AND tc.table_schema = $1 AND tc.table_name = $2`
	rows, err := p.db.QueryContext(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pks := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		pks[name] = true
	}
	return pks, rows.Err()
}

func (p *postgresIntrospector) Close() error {
	return p.db.Close()
}
