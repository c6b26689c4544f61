package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chshwong/calorie-sub012/internal/provider/fitbit"
)

// fitbitFetcher is the slice of the Fitbit client the sync needs; tests
// substitute a fake.
type fitbitFetcher interface {
	ActivitySummary(ctx context.Context, date string) (fitbit.DaySummary, error)
}

type SyncFitbitInput struct {
	Days int
	// Until is the last day to sync, inclusive. Zero means today.
	Until time.Time
}

type SyncResult struct {
	Synced  int
	Skipped int
}

// SyncFitbit pulls daily activity summaries for the trailing window and
// upserts one "fitbit daily activity" log per day, keyed by date so repeat
// syncs refresh rather than duplicate. Fetches fan out with a small bound to
// stay polite against the API.
func SyncFitbit(ctx context.Context, sqldb *sql.DB, client fitbitFetcher, in SyncFitbitInput) (SyncResult, error) {
	if in.Days <= 0 {
		in.Days = 1
	}
	if in.Days > 31 {
		return SyncResult{}, fmt.Errorf("sync window must be <= 31 days")
	}
	until := in.Until
	if until.IsZero() {
		until = time.Now()
	}

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(3)

	var mu sync.Mutex
	summaries := make([]fitbit.DaySummary, 0, in.Days)
	for i := 0; i < in.Days; i++ {
		date := until.AddDate(0, 0, -i).Format("2006-01-02")
		grp.Go(func() error {
			summary, err := client.ActivitySummary(ctx, date)
			if err != nil {
				return fmt.Errorf("fetch fitbit day %s: %w", date, err)
			}
			mu.Lock()
			summaries = append(summaries, summary)
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return SyncResult{}, err
	}

	var result SyncResult
	for _, summary := range summaries {
		if summary.CaloriesOut <= 0 {
			result.Skipped++
			continue
		}
		performedAt, err := time.ParseInLocation("2006-01-02", summary.Date, time.Local)
		if err != nil {
			return result, fmt.Errorf("parse fitbit date %q: %w", summary.Date, err)
		}
		var duration *int
		if summary.ActiveMinutes > 0 {
			v := summary.ActiveMinutes
			duration = &v
		}
		if err := UpsertSyncedExercise(sqldb, AddExerciseInput{
			ExerciseType:   "fitbit daily activity",
			CaloriesBurned: summary.CaloriesOut,
			DurationMin:    duration,
			PerformedAt:    performedAt,
			Source:         "fitbit",
			SourceRef:      summary.Date,
			Notes:          fmt.Sprintf("%d steps", summary.Steps),
		}); err != nil {
			return result, err
		}
		result.Synced++
	}
	return result, nil
}
