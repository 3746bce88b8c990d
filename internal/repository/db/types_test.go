package db

import "testing"

func TestParseDatabaseType(t *testing.T) {
	tests := []struct {
		in      string
		want    DatabaseType
		wantErr bool
	}{
		{"", SQLite, false},
		{"sqlite", SQLite, false},
		{"SQLite3", SQLite, false},
		{"mysql", MySQL, false},
		{"MariaDB", MySQL, false},
		{"postgres", PostgreSQL, false},
		{"postgresql", PostgreSQL, false},
		{" Postgres ", PostgreSQL, false},
		{"oracle", "", true},
		{"mssql", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDatabaseType(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDatabaseType(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDatabaseType(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDatabaseType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMigrationTargetFor(t *testing.T) {
	for _, dt := range []DatabaseType{SQLite, MySQL, PostgreSQL} {
		target, err := MigrationTargetFor(dt)
		if err != nil {
			t.Fatalf("MigrationTargetFor(%s) failed: %v", dt, err)
		}
		if target.DriverName() == "" {
			t.Errorf("%s target has no driver name", dt)
		}
		if target.SourceDir() != "migrations/"+string(dt) {
			t.Errorf("%s target source dir = %q", dt, target.SourceDir())
		}
	}

	if _, err := MigrationTargetFor("oracle"); err == nil {
		t.Error("expected error for a dialect without shipped migrations")
	}
}
