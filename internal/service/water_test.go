package service_test

import (
	"testing"
	"time"

	"github.com/chshwong/calorie-sub012/internal/service"
)

func TestAddWaterNormalizesUnits(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	day := time.Date(2026, 8, 27, 10, 0, 0, 0, time.Local)

	if _, err := service.AddWater(sqldb, service.AddWaterInput{Amount: 1, Unit: "cup", LoggedAt: day}); err != nil {
		t.Fatalf("add cup of water: %v", err)
	}
	if _, err := service.AddWater(sqldb, service.AddWaterInput{Amount: 500, LoggedAt: day}); err != nil {
		t.Fatalf("add ml of water: %v", err)
	}

	total, err := service.WaterTotalML(sqldb, "2026-08-27")
	if err != nil {
		t.Fatalf("water total: %v", err)
	}
	if total != 740 {
		t.Fatalf("expected 740 ml, got %v", total)
	}

	logs, err := service.ListWater(sqldb, "2026-08-27")
	if err != nil {
		t.Fatalf("list water: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 water logs, got %d", len(logs))
	}
}

func TestAddWaterRejectsWeightUnit(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	if _, err := service.AddWater(sqldb, service.AddWaterInput{Amount: 1, Unit: "kg"}); err == nil {
		t.Fatalf("expected error for non-volume unit")
	}
}

func TestAddWaterRejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	if _, err := service.AddWater(sqldb, service.AddWaterInput{Amount: 0, Unit: "ml"}); err == nil {
		t.Fatalf("expected error for zero amount")
	}
}
