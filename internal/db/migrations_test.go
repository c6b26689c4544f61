package db_test

import (
	"path/filepath"
	"testing"

	"github.com/chshwong/calorie-sub012/internal/db"
)

func TestApplyMigrationsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "calorie.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 6 {
		t.Fatalf("expected 6 migration versions, got %d", migrationCount)
	}

	for _, table := range []string{"food_master", "food_servings", "log_entries", "bundles", "bundle_items", "water_logs", "exercise_logs", "daily_goals"} {
		var count int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count); err != nil {
			t.Fatalf("check table %s: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}
}

func TestMigrationsEnforceFoodInvariants(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "calorie.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	_, err = sqldb.Exec(`
INSERT INTO food_master(id, name, serving_size, serving_unit, calories_kcal)
VALUES('bad-food', 'bad', 0, 'g', 100)`)
	if err == nil {
		t.Fatalf("expected serving_size > 0 check to reject zero")
	}

	_, err = sqldb.Exec(`
INSERT INTO log_entries(food_id, food_name, meal, quantity, unit_label, master_units, calories_kcal, logged_at)
VALUES('x', 'x', 'brunch', 1, 'g', 1, 1, '2026-08-01T08:00:00Z')`)
	if err == nil {
		t.Fatalf("expected meal check constraint to reject unknown meal")
	}
}
