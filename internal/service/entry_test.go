package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/chshwong/calorie-sub012/internal/service"
)

func TestLogFoodRawUnitConverts(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	id := seedOats(t, sqldb)

	// 0.25 kg of a per-100g food = 250 master units = 2.5x nutrients
	entryID, err := service.LogFood(sqldb, service.LogFoodInput{
		Food:     id,
		Unit:     "kg",
		Quantity: 0.25,
		Meal:     "breakfast",
		LoggedAt: time.Date(2026, 8, 27, 8, 0, 0, 0, time.Local),
	})
	if err != nil {
		t.Fatalf("log food: %v", err)
	}
	if entryID <= 0 {
		t.Fatalf("expected positive entry id, got %d", entryID)
	}

	entries, err := service.ListLogEntries(sqldb, service.ListLogEntriesFilter{Date: "2026-08-27"})
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.MasterUnits != 250 {
		t.Fatalf("expected 250 master units, got %v", e.MasterUnits)
	}
	if e.CaloriesKcal != 500 {
		t.Fatalf("expected 500 kcal, got %v", e.CaloriesKcal)
	}
	if e.ProteinG == nil || *e.ProteinG != 25 {
		t.Fatalf("expected 25 g protein, got %v", e.ProteinG)
	}
	if e.FatG != nil {
		t.Fatalf("fat unknown on the food must stay null on the entry")
	}
}

func TestLogFoodSavedServing(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	id := seedOats(t, sqldb)
	if _, err := service.AddServing(sqldb, service.AddServingInput{
		Food: id, ServingName: "1 scoop", WeightG: f64(50),
	}); err != nil {
		t.Fatalf("add serving: %v", err)
	}

	if _, err := service.LogFood(sqldb, service.LogFoodInput{
		Food:     id,
		Serving:  "1 scoop",
		Quantity: 2,
		Meal:     "lunch",
		LoggedAt: time.Date(2026, 8, 27, 12, 30, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("log saved serving: %v", err)
	}

	entries, err := service.ListLogEntries(sqldb, service.ListLogEntriesFilter{Date: "2026-08-27"})
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	e := entries[0]
	if e.MasterUnits != 100 {
		t.Fatalf("expected 100 master units for two 50 g scoops, got %v", e.MasterUnits)
	}
	if e.CaloriesKcal != 200 {
		t.Fatalf("expected 200 kcal, got %v", e.CaloriesKcal)
	}
	if e.UnitLabel != "1 scoop" {
		t.Fatalf("expected serving name as unit label, got %q", e.UnitLabel)
	}
}

func TestLogFoodDefaultsToDefaultServing(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	id := seedOats(t, sqldb)
	if _, err := service.AddServing(sqldb, service.AddServingInput{
		Food: id, ServingName: "1 bowl", WeightG: f64(80), IsDefault: true,
	}); err != nil {
		t.Fatalf("add default serving: %v", err)
	}

	// no serving, no unit, no quantity: one default serving gets logged
	if _, err := service.LogFood(sqldb, service.LogFoodInput{
		Food:     id,
		Meal:     "dinner",
		LoggedAt: time.Date(2026, 8, 27, 19, 0, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("log default: %v", err)
	}

	entries, err := service.ListLogEntries(sqldb, service.ListLogEntriesFilter{Date: "2026-08-27"})
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	e := entries[0]
	if e.Quantity != 1 || e.UnitLabel != "1 bowl" {
		t.Fatalf("expected 1 of %q, got %g %q", "1 bowl", e.Quantity, e.UnitLabel)
	}
	if e.MasterUnits != 80 {
		t.Fatalf("expected 80 master units, got %v", e.MasterUnits)
	}
	if e.CaloriesKcal != 160 {
		t.Fatalf("expected 160 kcal, got %v", e.CaloriesKcal)
	}
}

func TestLogFoodCanonicalFallbackWithoutServings(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	id := seedMilk(t, sqldb)

	if _, err := service.LogFood(sqldb, service.LogFoodInput{
		Food:     id,
		Meal:     "snack",
		LoggedAt: time.Date(2026, 8, 27, 16, 0, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("log canonical fallback: %v", err)
	}

	entries, err := service.ListLogEntries(sqldb, service.ListLogEntriesFilter{Date: "2026-08-27"})
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	e := entries[0]
	if e.Quantity != 250 || e.UnitLabel != "ml" {
		t.Fatalf("expected 250 ml canonical fallback, got %g %q", e.Quantity, e.UnitLabel)
	}
	if e.CaloriesKcal != 120 {
		t.Fatalf("expected 120 kcal, got %v", e.CaloriesKcal)
	}
}

func TestLogFoodRejectsServingPlusUnit(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	id := seedOats(t, sqldb)

	_, err := service.LogFood(sqldb, service.LogFoodInput{
		Food: id, Serving: "1 scoop", Unit: "g", Quantity: 1, Meal: "lunch",
	})
	if err == nil || !strings.Contains(err.Error(), "cannot be combined") {
		t.Fatalf("expected serving/unit conflict, got %v", err)
	}
}

func TestLogFoodRejectsUnknownMeal(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	id := seedOats(t, sqldb)

	_, err := service.LogFood(sqldb, service.LogFoodInput{
		Food: id, Unit: "g", Quantity: 100, Meal: "brunch",
	})
	if err == nil || !strings.Contains(err.Error(), "unknown meal") {
		t.Fatalf("expected meal validation, got %v", err)
	}
}

func TestDayNutrientTotals(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	oats := seedOats(t, sqldb)
	milk := seedMilk(t, sqldb)
	day := time.Date(2026, 8, 27, 9, 0, 0, 0, time.Local)

	if _, err := service.LogFood(sqldb, service.LogFoodInput{Food: oats, Unit: "g", Quantity: 100, Meal: "breakfast", LoggedAt: day}); err != nil {
		t.Fatalf("log oats: %v", err)
	}
	if _, err := service.LogFood(sqldb, service.LogFoodInput{Food: milk, Unit: "ml", Quantity: 250, Meal: "breakfast", LoggedAt: day}); err != nil {
		t.Fatalf("log milk: %v", err)
	}

	total, err := service.DayNutrientTotals(sqldb, "2026-08-27")
	if err != nil {
		t.Fatalf("day totals: %v", err)
	}
	if total.CaloriesKcal != 320 {
		t.Fatalf("expected 320 kcal total, got %v", total.CaloriesKcal)
	}
	if total.ProteinG == nil || *total.ProteinG != 18 {
		t.Fatalf("expected 18 g protein, got %v", total.ProteinG)
	}
	// carbs known only for oats; milk's null must not erase it
	if total.CarbsG == nil || *total.CarbsG != 60 {
		t.Fatalf("expected 60 g carbs, got %v", total.CarbsG)
	}
	if total.FatG != nil {
		t.Fatalf("fat unknown everywhere should stay null")
	}
}

func TestDeleteLogEntry(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	id := seedOats(t, sqldb)
	entryID, err := service.LogFood(sqldb, service.LogFoodInput{Food: id, Unit: "g", Quantity: 50, Meal: "snack"})
	if err != nil {
		t.Fatalf("log food: %v", err)
	}
	if err := service.DeleteLogEntry(sqldb, entryID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if err := service.DeleteLogEntry(sqldb, entryID); err == nil {
		t.Fatalf("expected not-found on second delete")
	}
}
