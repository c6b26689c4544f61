package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/chshwong/calorie-sub012/internal/model"
)

type SetGoalInput struct {
	CaloriesKcal  int
	ProteinG      float64
	CarbsG        float64
	FatG          float64
	EffectiveDate string
}

func SetGoal(sqldb *sql.DB, in SetGoalInput) error {
	if in.CaloriesKcal < 0 {
		return fmt.Errorf("calories must be >= 0")
	}
	for name, v := range map[string]float64{"protein": in.ProteinG, "carbs": in.CarbsG, "fat": in.FatG} {
		if err := validateNonNegativeFloat(name, v); err != nil {
			return err
		}
	}
	date := strings.TrimSpace(in.EffectiveDate)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid effective date %q, expected YYYY-MM-DD", in.EffectiveDate)
	}
	_, err := sqldb.Exec(`
INSERT INTO daily_goals(calories_kcal, protein_g, carbs_g, fat_g, effective_date)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(effective_date) DO UPDATE SET
  calories_kcal = excluded.calories_kcal,
  protein_g = excluded.protein_g,
  carbs_g = excluded.carbs_g,
  fat_g = excluded.fat_g
`, in.CaloriesKcal, in.ProteinG, in.CarbsG, in.FatG, date)
	if err != nil {
		return fmt.Errorf("set goal: %w", err)
	}
	return nil
}

// GoalForDate returns the goal in effect on the given date: the newest goal
// whose effective_date is on or before it. No goal returns nil, not an error.
func GoalForDate(sqldb *sql.DB, date string) (*model.DailyGoal, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	var g model.DailyGoal
	err := sqldb.QueryRow(`
SELECT id, calories_kcal, protein_g, carbs_g, fat_g, effective_date, created_at
FROM daily_goals
WHERE effective_date <= ?
ORDER BY effective_date DESC
LIMIT 1
`, date).Scan(&g.ID, &g.CaloriesKcal, &g.ProteinG, &g.CarbsG, &g.FatG, &g.EffectiveDate, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("goal for %s: %w", date, err)
	}
	return &g, nil
}
