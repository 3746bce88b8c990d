package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/config"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/dto"
)

// TestNewContainer boots the full container once: database, migrations,
// repositories and services. A single test keeps the default prometheus
// registry from seeing duplicate collectors.
func TestNewContainer(t *testing.T) {
	cfg := &config.Config{
		Environment: "development",
		Database: config.DatabaseConfig{
			Type:           "sqlite",
			DSN:            filepath.Join(t.TempDir(), "container_test.db"),
			MigrationsPath: "../../migrations/sqlite",
			MaxOpenConns:   5,
			MaxIdleConns:   2,
		},
		Auth: config.AuthConfig{
			JWTSecret:           "test-secret-must-be-at-least-32-characters-long",
			AccessTokenDuration: 15 * time.Minute,
		},
	}

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer failed: %v", err)
	}
	defer container.Close()

	if container.DB == nil || container.SQLDB == nil {
		t.Fatal("expected database handles on the container")
	}
	if container.Metrics == nil {
		t.Fatal("expected metrics on the container")
	}

	// Migrations created the catalog tables
	for _, table := range []string{
		"projects", "data_sources", "layouts", "layout_fields",
		"pipelines", "flows", "connections", "user_details", "import_runs",
	} {
		var name string
		err := container.SQLDB.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("expected migrated table %q: %v", table, err)
		}
	}

	// Services are wired and usable
	ctx := context.Background()
	created, err := container.Projects.Create(ctx, dto.ProjectCreate{Name: "Container Smoke"}, nil)
	if err != nil {
		t.Fatalf("project create through the container failed: %v", err)
	}
	if created.Key != "container_smoke" {
		t.Errorf("expected derived key, got %q", created.Key)
	}

	if container.Connections == nil || container.Imports == nil || container.UserDetails == nil {
		t.Error("expected all services wired on the container")
	}
}

func TestDatabaseTypeDefaultsToSQLite(t *testing.T) {
	c := &Container{Config: &config.Config{}}
	got, err := c.databaseType()
	if err != nil {
		t.Fatalf("databaseType failed: %v", err)
	}
	if string(got) != "sqlite" {
		t.Errorf("expected sqlite default, got %q", got)
	}

	c.Config.Database.Type = "oracle"
	if _, err := c.databaseType(); err == nil {
		t.Error("expected error for a dialect without shipped migrations")
	}
}
