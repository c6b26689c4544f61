package service

import (
	"database/sql"

	"github.com/chshwong/calorie-sub012/internal/model"
	"github.com/chshwong/calorie-sub012/internal/nutrition"
)

// DaySummary rolls one day of the log up against the goal in effect.
type DaySummary struct {
	Date          string
	Entries       []model.LogEntry
	Consumed      nutrition.Nutrients
	ExerciseBurn  int
	WaterML       float64
	Goal          *model.DailyGoal
	NetCalories   float64
	RemainingKcal *float64
}

func SummarizeDay(sqldb *sql.DB, date string) (*DaySummary, error) {
	entries, err := ListLogEntries(sqldb, ListLogEntriesFilter{Date: date, Limit: 1000})
	if err != nil {
		return nil, err
	}
	consumed, err := DayNutrientTotals(sqldb, date)
	if err != nil {
		return nil, err
	}
	burn, err := ExerciseBurnTotal(sqldb, date)
	if err != nil {
		return nil, err
	}
	waterML, err := WaterTotalML(sqldb, date)
	if err != nil {
		return nil, err
	}
	goal, err := GoalForDate(sqldb, date)
	if err != nil {
		return nil, err
	}

	summary := &DaySummary{
		Date:         date,
		Entries:      entries,
		Consumed:     consumed,
		ExerciseBurn: burn,
		WaterML:      waterML,
		Goal:         goal,
		NetCalories:  consumed.CaloriesKcal - float64(burn),
	}
	if goal != nil {
		remaining := float64(goal.CaloriesKcal) - summary.NetCalories
		summary.RemainingKcal = &remaining
	}
	return summary, nil
}
