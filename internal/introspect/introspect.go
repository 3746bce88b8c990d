// Package introspect reads the shape of external source databases:
// schemas, tables and columns, plus a connectivity check. Each dialect
// registers an opener; callers never switch on the dialect themselves.
//
// Connections are opened per call and must be closed by the caller; no
// pooling contract is offered for source databases.
package introspect

import (
	"context"
	"fmt"
	"strings"
)

// Table identifies one table of a source schema / Identifie une table d'un schéma source
type Table struct {
	Schema string
	Name   string
}

// Column describes one column of a source table / Décrit une colonne d'une table source
type Column struct {
	Name         string
	DataType     string
	Ordinal      int
	Nullable     bool
	IsPrimaryKey bool
}

// Introspector reads schema metadata from one source database / Lit les métadonnées d'une base source
type Introspector interface {
	// Ping verifies connectivity / Vérifie la connectivité
	Ping(ctx context.Context) error

	// Schemas lists user schemas, system schemas excluded / Liste les schémas utilisateur
	Schemas(ctx context.Context) ([]string, error)

	// Tables lists base tables of a schema / Liste les tables d'un schéma
	Tables(ctx context.Context, schema string) ([]Table, error)

	// Columns lists columns of a table in ordinal order / Liste les colonnes d'une table
	Columns(ctx context.Context, schema, table string) ([]Column, error)

	// Close releases the underlying connection / Libère la connexion sous-jacente
	Close() error
}

// OpenFunc opens an introspector for a DSN / Ouvre un introspecteur pour un DSN
type OpenFunc func(dsn string) (Introspector, error)

// openerRegistry holds all dialect openers. No switch statements - just
// a map lookup, same shape as the repository's database registries.
var openerRegistry = map[string]OpenFunc{
	"sqlite":     openSQLite,
	"sqlite3":    openSQLite,
	"mysql":      openMySQL,
	"postgres":   openPostgres,
	"postgresql": openPostgres,
}

// Register adds a dialect opener / Ajoute un ouvreur de dialecte
func Register(dialect string, open OpenFunc) {
	openerRegistry[strings.ToLower(dialect)] = open
}

// Open creates an introspector for a dialect / Crée un introspecteur pour un dialecte
func Open(dialect, dsn string) (Introspector, error) {
	open, ok := openerRegistry[strings.ToLower(dialect)]
	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
	return open(dsn)
}

// Supported reports whether a dialect has a registered opener.
func Supported(dialect string) bool {
	_, ok := openerRegistry[strings.ToLower(dialect)]
	return ok
}
