package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/chshwong/calorie-sub012/internal/model"
	"github.com/chshwong/calorie-sub012/internal/nutrition"
)

type LogFoodInput struct {
	Food     string
	Serving  string
	Unit     string
	Quantity float64
	Meal     string
	LoggedAt time.Time
	Notes    string
}

type ListLogEntriesFilter struct {
	Date  string
	Meal  string
	Limit int
}

// LogFood resolves the requested serving option for a food, converts the
// quantity to the food's canonical unit, scales the canonical nutrients and
// persists the rounded snapshot. With neither a serving nor a unit the food's
// default serving is used; the quantity then defaults to the resolved default
// quantity when not given.
func LogFood(sqldb *sql.DB, in LogFoodInput) (int64, error) {
	if strings.TrimSpace(in.Serving) != "" && strings.TrimSpace(in.Unit) != "" {
		return 0, fmt.Errorf("--serving cannot be combined with --unit")
	}
	food, err := ResolveFood(sqldb, in.Food)
	if err != nil {
		return 0, err
	}
	servings, err := ListServings(sqldb, food.ID)
	if err != nil {
		return 0, err
	}

	option, quantity, label, err := pickServingOption(food, servings, in)
	if err != nil {
		return 0, err
	}

	masterUnits := nutrition.MasterUnits(option, quantity, food)
	n := nutrition.RoundForDisplay(nutrition.ScaleToQuantity(food, masterUnits))

	meal, err := normalizeMeal(in.Meal)
	if err != nil {
		return 0, err
	}
	loggedAt := in.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = time.Now()
	}

	res, err := sqldb.Exec(`
INSERT INTO log_entries(
  food_id, food_name, meal, quantity, unit_label, master_units,
  calories_kcal, protein_g, carbs_g, fat_g, saturated_fat_g, trans_fat_g, sugar_g, fiber_g, sodium_mg,
  logged_at, notes
) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		food.ID,
		food.Name,
		meal,
		quantity,
		label,
		masterUnits,
		n.CaloriesKcal,
		nullableArg(n.ProteinG),
		nullableArg(n.CarbsG),
		nullableArg(n.FatG),
		nullableArg(n.SaturatedFatG),
		nullableArg(n.TransFatG),
		nullableArg(n.SugarG),
		nullableArg(n.FiberG),
		nullableArg(n.SodiumMg),
		loggedAt.Format(time.RFC3339),
		strings.TrimSpace(in.Notes),
	)
	if err != nil {
		return 0, fmt.Errorf("insert log entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted log entry id: %w", err)
	}
	return id, nil
}

func pickServingOption(food *model.FoodMaster, servings []model.FoodServing, in LogFoodInput) (nutrition.ServingOption, float64, string, error) {
	quantity := in.Quantity

	if ref := strings.TrimSpace(in.Serving); ref != "" {
		var saved *model.FoodServing
		for i := range servings {
			if servings[i].ID == ref || normalizeName(servings[i].ServingName) == normalizeName(ref) {
				saved = &servings[i]
				break
			}
		}
		if saved == nil {
			return nutrition.ServingOption{}, 0, "", fmt.Errorf("serving %q not found for food %q", ref, food.Name)
		}
		if quantity <= 0 {
			quantity = 1
		}
		return nutrition.SavedOption(saved), quantity, saved.ServingName, nil
	}

	if unit := strings.TrimSpace(in.Unit); unit != "" {
		if quantity <= 0 {
			return nutrition.ServingOption{}, 0, "", fmt.Errorf("quantity must be > 0")
		}
		u := nutrition.ParseUnit(unit)
		return nutrition.RawOption(u), quantity, u.String(), nil
	}

	d := nutrition.ResolveDefaultServing(food, servings)
	if quantity <= 0 {
		quantity = d.Quantity
	}
	if d.Serving != nil {
		return nutrition.SavedOption(d.Serving), quantity, d.Serving.ServingName, nil
	}
	return nutrition.RawOption(nutrition.ParseUnit(d.Unit)), quantity, d.Unit, nil
}

func ListLogEntries(sqldb *sql.DB, f ListLogEntriesFilter) ([]model.LogEntry, error) {
	query := `
SELECT id, food_id, food_name, meal, quantity, unit_label, master_units,
       calories_kcal, protein_g, carbs_g, fat_g, saturated_fat_g, trans_fat_g, sugar_g, fiber_g, sodium_mg,
       logged_at, IFNULL(notes, '')
FROM log_entries
WHERE 1=1`
	args := make([]any, 0, 4)

	if strings.TrimSpace(f.Date) != "" {
		start, end, err := dayBounds(f.Date)
		if err != nil {
			return nil, err
		}
		query += ` AND logged_at >= ? AND logged_at < ?`
		args = append(args, start, end)
	}
	if strings.TrimSpace(f.Meal) != "" {
		meal, err := normalizeMeal(f.Meal)
		if err != nil {
			return nil, err
		}
		query += ` AND meal = ?`
		args = append(args, meal)
	}
	query += ` ORDER BY logged_at DESC`
	if f.Limit <= 0 {
		f.Limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	rows, err := sqldb.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.LogEntry, 0)
	for rows.Next() {
		var e model.LogEntry
		var protein, carbs, fat, satFat, transFat, sugar, fiber, sodium sql.NullFloat64
		var loggedAtRaw string
		if err := rows.Scan(
			&e.ID, &e.FoodID, &e.FoodName, &e.Meal, &e.Quantity, &e.UnitLabel, &e.MasterUnits,
			&e.CaloriesKcal, &protein, &carbs, &fat, &satFat, &transFat, &sugar, &fiber, &sodium,
			&loggedAtRaw, &e.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		loggedAt, err := time.Parse(time.RFC3339, loggedAtRaw)
		if err != nil {
			return nil, fmt.Errorf("parse logged_at for entry %d: %w", e.ID, err)
		}
		e.LoggedAt = loggedAt
		e.ProteinG = scanNullable(protein)
		e.CarbsG = scanNullable(carbs)
		e.FatG = scanNullable(fat)
		e.SaturatedFatG = scanNullable(satFat)
		e.TransFatG = scanNullable(transFat)
		e.SugarG = scanNullable(sugar)
		e.FiberG = scanNullable(fiber)
		e.SodiumMg = scanNullable(sodium)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate log entries: %w", err)
	}
	return entries, nil
}

func DeleteLogEntry(sqldb *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("log entry id must be > 0")
	}
	res, err := sqldb.Exec(`DELETE FROM log_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete log entry %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for log entry %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("log entry %d not found", id)
	}
	return nil
}

// DayNutrientTotals sums the persisted snapshots for one day. Stored entries
// are already display-rounded, so the totals add those values as-is.
func DayNutrientTotals(sqldb *sql.DB, date string) (nutrition.Nutrients, error) {
	entries, err := ListLogEntries(sqldb, ListLogEntriesFilter{Date: date, Limit: 1000})
	if err != nil {
		return nutrition.Nutrients{}, err
	}
	var total nutrition.Nutrients
	for _, e := range entries {
		total = nutrition.AddNutrients(total, nutrition.Nutrients{
			CaloriesKcal:  e.CaloriesKcal,
			ProteinG:      e.ProteinG,
			CarbsG:        e.CarbsG,
			FatG:          e.FatG,
			SaturatedFatG: e.SaturatedFatG,
			TransFatG:     e.TransFatG,
			SugarG:        e.SugarG,
			FiberG:        e.FiberG,
			SodiumMg:      e.SodiumMg,
		})
	}
	return total, nil
}
