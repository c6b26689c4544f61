package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/chshwong/calorie-sub012/internal/provider/fitbit"
	"github.com/chshwong/calorie-sub012/internal/service"
)

type fakeFitbit struct {
	days map[string]fitbit.DaySummary
}

func (f *fakeFitbit) ActivitySummary(_ context.Context, date string) (fitbit.DaySummary, error) {
	if summary, ok := f.days[date]; ok {
		return summary, nil
	}
	return fitbit.DaySummary{Date: date}, nil
}

func TestSyncFitbitUpsertsAndSkipsEmptyDays(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	until := time.Date(2026, 8, 27, 0, 0, 0, 0, time.Local)
	fake := &fakeFitbit{days: map[string]fitbit.DaySummary{
		"2026-08-27": {Date: "2026-08-27", CaloriesOut: 2400, ActiveMinutes: 45, Steps: 9000},
		"2026-08-26": {Date: "2026-08-26", CaloriesOut: 2100, Steps: 6000},
		// 2026-08-25 has no data and comes back with zero calories.
	}}

	result, err := service.SyncFitbit(context.Background(), sqldb, fake, service.SyncFitbitInput{Days: 3, Until: until})
	if err != nil {
		t.Fatalf("sync fitbit: %v", err)
	}
	if result.Synced != 2 || result.Skipped != 1 {
		t.Fatalf("expected 2 synced 1 skipped, got %+v", result)
	}

	burn, err := service.ExerciseBurnTotal(sqldb, "2026-08-27")
	if err != nil {
		t.Fatalf("burn total: %v", err)
	}
	if burn != 2400 {
		t.Fatalf("expected 2400 kcal burned on 2026-08-27, got %d", burn)
	}
}

func TestSyncFitbitRepeatRefreshesInsteadOfDuplicating(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	until := time.Date(2026, 8, 27, 0, 0, 0, 0, time.Local)
	fake := &fakeFitbit{days: map[string]fitbit.DaySummary{
		"2026-08-27": {Date: "2026-08-27", CaloriesOut: 2400, Steps: 9000},
	}}

	for _, calories := range []int{2400, 2650} {
		fake.days["2026-08-27"] = fitbit.DaySummary{Date: "2026-08-27", CaloriesOut: calories, Steps: 9000}
		if _, err := service.SyncFitbit(context.Background(), sqldb, fake, service.SyncFitbitInput{Days: 1, Until: until}); err != nil {
			t.Fatalf("sync fitbit at %d kcal: %v", calories, err)
		}
	}

	logs, err := service.ListExercise(sqldb, "2026-08-27")
	if err != nil {
		t.Fatalf("list exercise: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected one exercise log after repeat sync, got %d", len(logs))
	}
	if logs[0].CaloriesBurned != 2650 {
		t.Fatalf("expected refreshed 2650 kcal, got %d", logs[0].CaloriesBurned)
	}
}

func TestSyncFitbitRejectsOversizedWindow(t *testing.T) {
	t.Parallel()
	var sqldb *sql.DB // never touched, the window check fires first
	_, err := service.SyncFitbit(context.Background(), sqldb, &fakeFitbit{}, service.SyncFitbitInput{Days: 60})
	if err == nil {
		t.Fatal("expected error for 60 day window")
	}
}
