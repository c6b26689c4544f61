package service_test

import (
	"testing"
	"time"

	"github.com/chshwong/calorie-sub012/internal/service"
)

func TestAddAndListExercise(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	day := time.Date(2026, 8, 27, 7, 0, 0, 0, time.Local)
	duration := 30

	id, err := service.AddExercise(sqldb, service.AddExerciseInput{
		ExerciseType:   "running",
		CaloriesBurned: 320,
		DurationMin:    &duration,
		PerformedAt:    day,
	})
	if err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	logs, err := service.ListExercise(sqldb, "2026-08-27")
	if err != nil {
		t.Fatalf("list exercise: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
	if logs[0].Source != "manual" {
		t.Fatalf("expected manual source default, got %q", logs[0].Source)
	}
	if logs[0].DurationMin == nil || *logs[0].DurationMin != 30 {
		t.Fatalf("expected 30 min duration, got %v", logs[0].DurationMin)
	}

	burn, err := service.ExerciseBurnTotal(sqldb, "2026-08-27")
	if err != nil {
		t.Fatalf("burn total: %v", err)
	}
	if burn != 320 {
		t.Fatalf("expected 320 burned, got %d", burn)
	}
}

func TestUpsertSyncedExerciseIdempotent(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.Local)

	in := service.AddExerciseInput{
		ExerciseType:   "fitbit daily activity",
		CaloriesBurned: 2100,
		PerformedAt:    day,
		Source:         "fitbit",
		SourceRef:      "2026-08-27",
	}
	if err := service.UpsertSyncedExercise(sqldb, in); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	in.CaloriesBurned = 2300
	if err := service.UpsertSyncedExercise(sqldb, in); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	logs, err := service.ListExercise(sqldb, "2026-08-27")
	if err != nil {
		t.Fatalf("list exercise: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected single upserted row, got %d", len(logs))
	}
	if logs[0].CaloriesBurned != 2300 {
		t.Fatalf("expected refreshed burn 2300, got %d", logs[0].CaloriesBurned)
	}
}

func TestDeleteExercise(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	id, err := service.AddExercise(sqldb, service.AddExerciseInput{
		ExerciseType:   "cycling",
		CaloriesBurned: 150,
	})
	if err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	if err := service.DeleteExercise(sqldb, id); err != nil {
		t.Fatalf("delete exercise: %v", err)
	}
	if err := service.DeleteExercise(sqldb, id); err == nil {
		t.Fatalf("expected not-found on second delete")
	}
}
