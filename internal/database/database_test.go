package database_test

import (
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"lifeos/internal/database"
	"lifeos/internal/logger"
	"lifeos/internal/models"
)

func init() {
	logger.Init("test")
}

func newSQLiteManager(t *testing.T) *database.Manager {
	t.Helper()

	cfg := &database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "lifeos.db"),
	}
	m, err := database.NewManager(cfg)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	t.Cleanup(func() {
		if err := m.Close(); err != nil {
			t.Errorf("failed to close manager: %v", err)
		}
	})
	return m
}

func TestManager_MigrateUpAndDown(t *testing.T) {
	m := newSQLiteManager(t)

	version, dirty, err := m.MigrationVersion()
	if err != nil {
		t.Fatalf("version before migrating: %v", err)
	}
	if version != 0 || dirty {
		t.Fatalf("expected a fresh database, got version=%d dirty=%v", version, dirty)
	}

	if err := m.Migrate(); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	if err := m.Migrate(); err != nil {
		t.Fatalf("second migrate up should be a no-op: %v", err)
	}

	version, dirty, err = m.MigrationVersion()
	if err != nil {
		t.Fatalf("version after migrating: %v", err)
	}
	if version != 1 || dirty {
		t.Errorf("expected version 1, got version=%d dirty=%v", version, dirty)
	}

	if err := m.Rollback(1); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	for _, table := range []string{"users", "tasks", "finances", "resources"} {
		if m.DB().Migrator().HasTable(table) {
			t.Errorf("expected table %s to be dropped", table)
		}
	}

	if err := m.Rollback(0); err == nil {
		t.Error("expected an error for a zero step rollback")
	}
}

func TestManager_MigrationsMatchModels(t *testing.T) {
	m := newSQLiteManager(t)
	if err := m.Migrate(); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	db := m.DB()

	for _, model := range database.AllModels {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			t.Fatalf("parse %T: %v", model, err)
		}
		if !db.Migrator().HasTable(stmt.Schema.Table) {
			t.Errorf("missing table %s", stmt.Schema.Table)
			continue
		}
		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" {
				continue
			}
			if !db.Migrator().HasColumn(model, field.DBName) {
				t.Errorf("table %s is missing column %s", stmt.Schema.Table, field.DBName)
			}
		}
	}

	if !db.Migrator().HasIndex(&models.Resource{}, "idx_resources_planner_day") {
		t.Error("missing idx_resources_planner_day")
	}
}

func TestManager_PlannerDayIsUnique(t *testing.T) {
	m := newSQLiteManager(t)
	if err := m.Migrate(); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	db := m.DB()

	user := models.User{Email: "ann@example.com", Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	plan := func() *models.Resource {
		return &models.Resource{UserID: user.ID, Label: "Mon", Type: models.ResourceTypePlanner, Status: models.ResourceStatusActive, Category: "Mon"}
	}

	if err := db.Create(plan()).Error; err != nil {
		t.Fatalf("create first plan: %v", err)
	}
	err := db.Create(plan()).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestConfig_MigrationURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  database.Config
		want string
	}{
		{
			name: "sqlite",
			cfg:  database.Config{Driver: database.DriverSQLite, Path: "/var/lib/lifeos/lifeos.db"},
			want: "sqlite3:///var/lib/lifeos/lifeos.db",
		},
		{
			name: "postgres_escapes_password",
			cfg: database.Config{
				Driver: database.DriverPostgres, Host: "db", Port: "5432",
				User: "lifeos", Password: "p@ss/word", DBName: "lifeos", SSLMode: "disable",
			},
			want: "postgres://lifeos:p%40ss%2Fword@db:5432/lifeos?sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.MigrationURL(); got != tt.want {
				t.Errorf("MigrationURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
