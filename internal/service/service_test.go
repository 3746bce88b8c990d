package service

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/domain"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/dto"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "service_test.db") +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&domain.Project{},
		&domain.DataSource{},
		&domain.Layout{},
		&domain.LayoutField{},
		&domain.Connection{},
		&domain.ImportRun{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func mustRepo[T any](t *testing.T, db *gorm.DB, cfg repository.Config) *repository.Repository[T] {
	t.Helper()
	repo, err := repository.New[T](db, cfg)
	if err != nil {
		t.Fatalf("failed to build repository: %v", err)
	}
	return repo
}

var keyed = repository.Config{NameField: "Name", KeyField: "Key"}

func TestProjectServiceCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(mustRepo[domain.Project](t, db, keyed), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.ProjectCreate{Name: "Data Warehouse"}, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Key != "data_warehouse" {
		t.Errorf("expected derived key in the response, got %q", created.Key)
	}

	desc := "central reporting store"
	updated, err := svc.Update(ctx, created.ID, dto.ProjectUpdate{Description: &desc}, &domain.Authorized{UserDetailID: 4})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Description != desc {
		t.Errorf("expected patched description, got %q", updated.Description)
	}
	if updated.Name != "Data Warehouse" {
		t.Errorf("omitted field must survive the patch, got %q", updated.Name)
	}
	if updated.UpdatedBy == nil || *updated.UpdatedBy != 4 {
		t.Errorf("expected updated_by=4 in the response, got %v", updated.UpdatedBy)
	}

	page, err := svc.List(ctx, repository.ListParams{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("expected one project, got total=%d items=%d", page.Total, len(page.Items))
	}
	if page.Limit != repository.DefaultLimit {
		t.Errorf("expected default limit %d in the page, got %d", repository.DefaultLimit, page.Limit)
	}

	if err := svc.Delete(ctx, created.ID, nil); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); err == nil {
		t.Fatal("deleted project must not be readable")
	}
}

func TestDataSourceServiceLayoutCount(t *testing.T) {
	db := newTestDB(t)
	layouts := mustRepo[domain.Layout](t, db, keyed)
	svc := NewDataSourceService(mustRepo[domain.DataSource](t, db, keyed), layouts, nil)
	ctx := context.Background()

	ds, err := svc.Create(ctx, dto.DataSourceCreate{ProjectID: 1, Name: "orders db"}, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for _, name := range []string{"orders", "order_items"} {
		if _, err := layouts.Create(ctx, &domain.Layout{DataSourceID: ds.ID, Name: name}, nil); err != nil {
			t.Fatalf("layout create failed: %v", err)
		}
	}

	got, err := svc.Get(ctx, ds.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.LayoutCount != 2 {
		t.Errorf("expected layout_count=2, got %d", got.LayoutCount)
	}

	page, err := svc.List(ctx, repository.ListParams{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].LayoutCount != 2 {
		t.Errorf("expected layout_count=2 on the listed row, got %+v", page.Items)
	}
}

func TestLayoutServiceResolvesDataSourceName(t *testing.T) {
	db := newTestDB(t)
	dataSources := mustRepo[domain.DataSource](t, db, keyed)
	svc := NewLayoutService(mustRepo[domain.Layout](t, db, keyed), dataSources, nil)
	ctx := context.Background()

	parent, err := dataSources.Create(ctx, &domain.DataSource{ProjectID: 1, Name: "billing db"}, nil)
	if err != nil {
		t.Fatalf("data source create failed: %v", err)
	}

	created, err := svc.Create(ctx, dto.LayoutCreate{DataSourceID: parent.ID, Name: "invoices", TableName: "invoices"}, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.DataSourceName != "billing db" {
		t.Errorf("expected resolved parent name, got %q", got.DataSourceName)
	}
	if got.TableName != "invoices" {
		t.Errorf("expected table name in the response, got %q", got.TableName)
	}

	// A soft-deleted parent downgrades the read, it does not fail it
	if err := dataSources.Delete(ctx, parent.ID, nil); err != nil {
		t.Fatalf("data source delete failed: %v", err)
	}
	got, err = svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed after parent delete: %v", err)
	}
	if got.DataSourceName != "" {
		t.Errorf("expected empty parent name for deleted parent, got %q", got.DataSourceName)
	}
}
