// Package app wires the catalog API together: database, migrations,
// repositories, services and background tasks.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file" // Required for file-based migrations
	"gorm.io/gorm"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/config"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/domain"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/metrics"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/repository"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/repository/db"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/service"
)

// Container holds application dependencies / Contient les dépendances de l'application
type Container struct {
	DB      *gorm.DB
	SQLDB   *sql.DB
	Config  *config.Config
	Metrics *metrics.Metrics

	Projects     *service.ProjectService
	DataSources  *service.DataSourceService
	Layouts      *service.LayoutService
	LayoutFields *service.LayoutFieldService
	Pipelines    *service.PipelineService
	Flows        *service.FlowService
	Connections  *service.ConnectionService
	UserDetails  *service.UserDetailService
	Imports      *service.ImportService

	ctxCancel context.CancelFunc
}

// NewContainer initializes application container / Initialise le conteneur de l'application
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// Initialize metrics first (no dependencies)
	c.Metrics = metrics.NewMetrics(nil)

	if err := c.initDatabase(); err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}

	if err := c.runMigrations(); err != nil {
		c.Close() // Ensure database connection is closed on migration failure
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	if err := c.initServices(); err != nil {
		c.Close()
		return nil, fmt.Errorf("service init: %w", err)
	}

	c.startPoolGauge()
	return c, nil
}

func (c *Container) databaseType() (db.DatabaseType, error) {
	return db.ParseDatabaseType(c.Config.Database.Type)
}

// initDatabase initializes database connection / Initialise la connexion à la base de données
func (c *Container) initDatabase() error {
	dbType, err := c.databaseType()
	if err != nil {
		return err
	}

	dbConfig := db.DatabaseConfig{
		Type:         dbType,
		DSN:          c.Config.Database.DSN,
		MaxOpenConns: c.Config.Database.MaxOpenConns,
		MaxIdleConns: c.Config.Database.MaxIdleConns,
		LogQueries:   c.Config.Database.LogQueries,
	}

	initializer := db.NewDatabaseInitializer(dbType)

	database, err := initializer.Initialize(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize %s database: %w", dbType, err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("failed to access %s connection pool: %w", dbType, err)
	}

	c.DB = database
	c.SQLDB = sqlDB
	return nil
}

// runMigrations applies database migrations / Applique les migrations de base de données
func (c *Container) runMigrations() error {
	dbType, err := c.databaseType()
	if err != nil {
		return err
	}

	target, err := db.MigrationTargetFor(dbType)
	if err != nil {
		return err
	}

	driver, err := target.Driver(c.SQLDB)
	if err != nil {
		return fmt.Errorf("could not create %s migration driver: %w", dbType, err)
	}

	path := c.Config.Database.MigrationsPath
	if path == "" {
		path = target.SourceDir()
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+path,
		target.DriverName(),
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	log.Printf("Applying %s database migrations...", dbType)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Println("Database migrations applied successfully.")
	return nil
}

// initServices builds repositories and services / Construit les repositories et services
func (c *Container) initServices() error {
	keyed := repository.Config{NameField: "Name", KeyField: "Key"}

	projects, err := repository.New[domain.Project](c.DB, keyed)
	if err != nil {
		return err
	}
	dataSources, err := repository.New[domain.DataSource](c.DB, keyed)
	if err != nil {
		return err
	}
	layouts, err := repository.New[domain.Layout](c.DB, keyed)
	if err != nil {
		return err
	}
	layoutFields, err := repository.New[domain.LayoutField](c.DB, repository.Config{})
	if err != nil {
		return err
	}
	pipelines, err := repository.New[domain.Pipeline](c.DB, keyed)
	if err != nil {
		return err
	}
	flows, err := repository.New[domain.Flow](c.DB, keyed)
	if err != nil {
		return err
	}
	connections, err := repository.New[domain.Connection](c.DB, keyed)
	if err != nil {
		return err
	}
	userDetails, err := repository.New[domain.UserDetail](c.DB, repository.Config{})
	if err != nil {
		return err
	}
	importRuns, err := repository.New[domain.ImportRun](c.DB, repository.Config{})
	if err != nil {
		return err
	}

	c.Projects = service.NewProjectService(projects, c.Metrics)
	c.DataSources = service.NewDataSourceService(dataSources, layouts, c.Metrics)
	c.Layouts = service.NewLayoutService(layouts, dataSources, c.Metrics)
	c.LayoutFields = service.NewLayoutFieldService(layoutFields, c.Metrics)
	c.Pipelines = service.NewPipelineService(pipelines, c.Metrics)
	c.Flows = service.NewFlowService(flows, c.Metrics)
	c.Connections = service.NewConnectionService(connections, c.Metrics, c.Config.Import.TestTimeout)
	c.UserDetails = service.NewUserDetailService(userDetails, c.Metrics)
	c.Imports = service.NewImportService(importRuns, connections, dataSources, layouts, layoutFields, c.Metrics, nil, c.Config.Import.Timeout)

	log.Printf("Services initialized for %s database", c.Config.Database.Type)
	return nil
}

// startPoolGauge keeps the connection pool gauge current / Maintient à jour la jauge du pool de connexions
func (c *Container) startPoolGauge() {
	ctx, cancel := context.WithCancel(context.Background())
	c.ctxCancel = cancel

	go func() {
		c.Metrics.SetBackgroundTaskStatus("db_pool_gauge", true)
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				stats := c.SQLDB.Stats()
				c.Metrics.UpdateDatabaseConnections(stats.OpenConnections)
			case <-ctx.Done():
				c.Metrics.SetBackgroundTaskStatus("db_pool_gauge", false)
				return
			}
		}
	}()

	stats := c.SQLDB.Stats()
	c.Metrics.UpdateDatabaseConnections(stats.OpenConnections)
}

// Close releases container resources / Libère les ressources du conteneur
func (c *Container) Close() error {
	if c.ctxCancel != nil {
		c.ctxCancel()
	}
	if c.SQLDB != nil {
		return c.SQLDB.Close()
	}
	return nil
}
