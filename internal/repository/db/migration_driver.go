package db

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
)

// MigrationTarget couples a dialect with its migrate driver and the
// directory of SQL files shipped for it / Associe un dialecte à son
// driver de migration et à son répertoire de fichiers SQL
type MigrationTarget struct {
	driverName string
	sourceDir  string
	wrap       func(*sql.DB) (database.Driver, error)
}

// migrationTargets covers exactly the dialects the catalog ships DDL
// for, one migrations/<dialect> directory each.
var migrationTargets = map[DatabaseType]MigrationTarget{
	SQLite: {
		driverName: "sqlite3",
		sourceDir:  "migrations/sqlite",
		wrap: func(conn *sql.DB) (database.Driver, error) {
			return sqlite.WithInstance(conn, &sqlite.Config{})
		},
	},
	MySQL: {
		driverName: "mysql",
		sourceDir:  "migrations/mysql",
		wrap: func(conn *sql.DB) (database.Driver, error) {
			return mysql.WithInstance(conn, &mysql.Config{})
		},
	},
	PostgreSQL: {
		driverName: "postgres",
		sourceDir:  "migrations/postgres",
		wrap: func(conn *sql.DB) (database.Driver, error) {
			return postgres.WithInstance(conn, &postgres.Config{})
		},
	},
}

// MigrationTargetFor resolves the migration target for a dialect / Résout la cible de migration d'un dialecte
func MigrationTargetFor(dbType DatabaseType) (MigrationTarget, error) {
	target, ok := migrationTargets[dbType]
	if !ok {
		return MigrationTarget{}, fmt.Errorf("no migrations shipped for database type %q", dbType)
	}
	return target, nil
}

// Driver wraps an open connection in the dialect's migrate driver.
func (t MigrationTarget) Driver(conn *sql.DB) (database.Driver, error) {
	return t.wrap(conn)
}

// DriverName returns the migrate driver name / Retourne le nom du driver de migration
func (t MigrationTarget) DriverName() string { return t.driverName }

// SourceDir returns the default SQL directory when the config does not
// override the migrations path.
func (t MigrationTarget) SourceDir() string { return t.sourceDir }
