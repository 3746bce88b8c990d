package db

import (
	"fmt"
	"strings"
)

// DatabaseType identifies the dialect the catalog persists to / Identifie le dialecte de persistance du catalogue
type DatabaseType string

// Dialects the catalog ships DDL for. Anything else is rejected at
// startup rather than at first query.
const (
	SQLite     DatabaseType = "sqlite"
	MySQL      DatabaseType = "mysql"
	PostgreSQL DatabaseType = "postgres"
)

// ParseDatabaseType normalizes a configured dialect name, accepting the
// common aliases. The empty string means SQLite so a bare development
// config boots against a local file.
func ParseDatabaseType(s string) (DatabaseType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sqlite", "sqlite3":
		return SQLite, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql":
		return PostgreSQL, nil
	}
	return "", fmt.Errorf("unsupported catalog database type %q", s)
}
