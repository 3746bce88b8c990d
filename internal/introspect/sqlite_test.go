package introspect_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/introspect"
)

// seedSourceDB creates a sqlite file with two tables to introspect.
func seedSourceDB(t *testing.T) string {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "source.db")
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open seed database: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE customers (
			id INTEGER PRIMARY KEY,
			email TEXT NOT NULL,
			full_name TEXT
		)`,
		`CREATE TABLE orders (
			id INTEGER PRIMARY KEY,
			customer_id INTEGER NOT NULL,
			total REAL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to seed source database: %v", err)
		}
	}
	return dsn
}

func TestSQLiteIntrospector(t *testing.T) {
	dsn := seedSourceDB(t)
	ctx := context.Background()

	intro, err := introspect.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer intro.Close()

	if err := intro.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	schemas, err := intro.Schemas(ctx)
	if err != nil {
		t.Fatalf("Schemas failed: %v", err)
	}
	if len(schemas) != 1 || schemas[0] != "main" {
		t.Errorf("expected single 'main' schema, got %v", schemas)
	}

	tables, err := intro.Tables(ctx, "main")
	if err != nil {
		t.Fatalf("Tables failed: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if tables[0].Name != "customers" || tables[1].Name != "orders" {
		t.Errorf("expected name-ordered tables, got %v", tables)
	}
	if tables[0].Schema != "main" {
		t.Errorf("expected schema 'main' on tables, got %q", tables[0].Schema)
	}

	columns, err := intro.Columns(ctx, "main", "customers")
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	if len(columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(columns))
	}

	id := columns[0]
	if id.Name != "id" || !id.IsPrimaryKey {
		t.Errorf("expected primary key column 'id' first, got %+v", id)
	}
	if id.Ordinal != 1 {
		t.Errorf("ordinals must start at 1, got %d", id.Ordinal)
	}

	email := columns[1]
	if email.Name != "email" || email.Nullable {
		t.Errorf("expected NOT NULL column 'email', got %+v", email)
	}
	if email.DataType != "TEXT" {
		t.Errorf("expected declared type TEXT, got %q", email.DataType)
	}

	fullName := columns[2]
	if fullName.Name != "full_name" || !fullName.Nullable {
		t.Errorf("expected nullable column 'full_name', got %+v", fullName)
	}
}

func TestOpenUnsupportedDialect(t *testing.T) {
	if _, err := introspect.Open("oracle", "dsn"); err == nil {
		t.Fatal("expected error for unregistered dialect")
	}
}

func TestSupported(t *testing.T) {
	for _, dialect := range []string{"sqlite", "SQLite3", "mysql", "postgres", "POSTGRESQL"} {
		if !introspect.Supported(dialect) {
			t.Errorf("expected dialect %q to be supported", dialect)
		}
	}
	if introspect.Supported("mssql") {
		t.Error("mssql must not be reported as supported")
	}
}
