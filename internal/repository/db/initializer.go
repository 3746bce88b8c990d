// Package db opens and migrates the catalog database. Dialect-specific
// behavior lives behind registries so adding a dialect means registering
// an initializer and a migration driver, not editing switch statements.
package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite" // CGO-free SQLite driver for the sqlite dialector
)

// DatabaseConfig holds database connection config / Contient la config de connexion BD
type DatabaseConfig struct {
	Type         DatabaseType
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	LogQueries   bool
}

// DatabaseInitializer opens a GORM session for one dialect / Ouvre une session GORM pour un dialecte
type DatabaseInitializer interface {
	Initialize(config DatabaseConfig) (*gorm.DB, error)
	Type() DatabaseType
}

// InitializerRegistry manages database initializers / Gère les initialiseurs de BD
type InitializerRegistry struct {
	factories map[DatabaseType]func() DatabaseInitializer
}

// NewInitializerRegistry creates registry / Crée le registre
func NewInitializerRegistry() *InitializerRegistry {
	return &InitializerRegistry{factories: make(map[DatabaseType]func() DatabaseInitializer)}
}

// Register registers initializer factory / Enregistre une factory d'initialiseur
func (r *InitializerRegistry) Register(dbType DatabaseType, factory func() DatabaseInitializer) {
	r.factories[dbType] = factory
}

// Get retrieves initializer / Récupère l'initialiseur
func (r *InitializerRegistry) Get(dbType DatabaseType, fallback func() DatabaseInitializer) DatabaseInitializer {
	if factory, exists := r.factories[dbType]; exists {
		return factory()
	}
	return fallback()
}

var initializerRegistry = func() *InitializerRegistry {
	registry := NewInitializerRegistry()
	registry.Register(MySQL, func() DatabaseInitializer { return &mysqlInitializer{} })
	registry.Register(PostgreSQL, func() DatabaseInitializer { return &postgresInitializer{} })
	registry.Register(SQLite, func() DatabaseInitializer { return &sqliteInitializer{} })
	return registry
}()

// NewDatabaseInitializer creates initializer for database type / Crée l'initialiseur pour le type de BD
func NewDatabaseInitializer(dbType DatabaseType) DatabaseInitializer {
	return initializerRegistry.Get(dbType, func() DatabaseInitializer { return &sqliteInitializer{} })
}

// baseInitializer provides common functionality / Fournit les fonctionnalités communes
type baseInitializer struct{}

func (b *baseInitializer) open(dialector gorm.Dialector, config DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if config.LogQueries {
		logLevel = logger.Info
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	maxOpen := config.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 25
	}
	maxIdle := config.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 5
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return gdb, nil
}

// MySQL initializer / Initialiseur MySQL
type mysqlInitializer struct {
	baseInitializer
}

func (i *mysqlInitializer) Initialize(config DatabaseConfig) (*gorm.DB, error) {
	gdb, err := i.open(mysql.Open(config.DSN), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}
	log.Println("MySQL database connected successfully")
	return gdb, nil
}

func (i *mysqlInitializer) Type() DatabaseType {
	return MySQL
}

// PostgreSQL initializer / Initialiseur PostgreSQL
type postgresInitializer struct {
	baseInitializer
}

func (i *postgresInitializer) Initialize(config DatabaseConfig) (*gorm.DB, error) {
	gdb, err := i.open(postgres.Open(config.DSN), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	log.Println("PostgreSQL database connected successfully")
	return gdb, nil
}

func (i *postgresInitializer) Type() DatabaseType {
	return PostgreSQL
}

// SQLite initializer / Initialiseur SQLite
type sqliteInitializer struct {
	baseInitializer
}

func (i *sqliteInitializer) Initialize(config DatabaseConfig) (*gorm.DB, error) {
	// DriverName points the dialector at the modernc driver so the
	// build stays CGO-free.
	gdb, err := i.open(sqlite.Dialector{DriverName: "sqlite", DSN: config.DSN}, config)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite connection: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	// SQLite-specific PRAGMAs for performance and concurrency
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, pragma := range pragmas {
		if _, err := sqlDB.Exec(pragma); err != nil {
			log.Printf("Warning: failed to execute pragma (%s): %v", pragma, err)
		}
	}

	log.Println("SQLite database connected successfully")
	return gdb, nil
}

func (i *sqliteInitializer) Type() DatabaseType {
	return SQLite
}
