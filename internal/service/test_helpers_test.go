package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/chshwong/calorie-sub012/internal/db"
	"github.com/chshwong/calorie-sub012/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calorie.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func f64(v float64) *float64 { return &v }

// seedOats inserts a 100 g food at 200 kcal with partial macro data and
// returns its id.
func seedOats(t *testing.T, sqldb *sql.DB) string {
	t.Helper()
	id, err := service.CreateFood(sqldb, service.CreateFoodInput{
		Name:         "oats",
		ServingSize:  100,
		ServingUnit:  "g",
		CaloriesKcal: 200,
		ProteinG:     f64(10),
		CarbsG:       f64(60),
		IsCustom:     true,
	})
	if err != nil {
		t.Fatalf("seed oats: %v", err)
	}
	return id
}

func seedMilk(t *testing.T, sqldb *sql.DB) string {
	t.Helper()
	id, err := service.CreateFood(sqldb, service.CreateFoodInput{
		Name:         "milk",
		ServingSize:  250,
		ServingUnit:  "ml",
		CaloriesKcal: 120,
		ProteinG:     f64(8),
		IsCustom:     true,
	})
	if err != nil {
		t.Fatalf("seed milk: %v", err)
	}
	return id
}
