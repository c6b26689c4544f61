package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chshwong/calorie-sub012/internal/model"
)

type CreateFoodInput struct {
	Name          string
	Brand         string
	ServingSize   float64
	ServingUnit   string
	CaloriesKcal  float64
	ProteinG      *float64
	CarbsG        *float64
	FatG          *float64
	SaturatedFatG *float64
	TransFatG     *float64
	SugarG        *float64
	FiberG        *float64
	SodiumMg      *float64
	IsCustom      bool
}

type UpdateFoodInput struct {
	Name          string
	Brand         string
	ServingSize   float64
	ServingUnit   string
	CaloriesKcal  float64
	ProteinG      *float64
	CarbsG        *float64
	FatG          *float64
	SaturatedFatG *float64
	TransFatG     *float64
	SugarG        *float64
	FiberG        *float64
	SodiumMg      *float64
}

func validateFoodFields(name string, servingSize float64, calories float64, nutrients map[string]*float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("food name is required")
	}
	if servingSize <= 0 {
		return fmt.Errorf("serving size must be > 0")
	}
	if err := validateNonNegativeFloat("calories", calories); err != nil {
		return err
	}
	for field, v := range nutrients {
		if err := validateNullableNonNegative(field, v); err != nil {
			return err
		}
	}
	return nil
}

func CreateFood(sqldb *sql.DB, in CreateFoodInput) (string, error) {
	if err := validateFoodFields(in.Name, in.ServingSize, in.CaloriesKcal, map[string]*float64{
		"protein":       in.ProteinG,
		"carbs":         in.CarbsG,
		"fat":           in.FatG,
		"saturated fat": in.SaturatedFatG,
		"trans fat":     in.TransFatG,
		"sugar":         in.SugarG,
		"fiber":         in.FiberG,
		"sodium":        in.SodiumMg,
	}); err != nil {
		return "", err
	}
	if strings.TrimSpace(in.ServingUnit) == "" {
		return "", fmt.Errorf("serving unit is required")
	}

	id := uuid.NewString()
	_, err := sqldb.Exec(`
INSERT INTO food_master(
  id, name, brand, serving_size, serving_unit, calories_kcal,
  protein_g, carbs_g, fat_g, saturated_fat_g, trans_fat_g, sugar_g, fiber_g, sodium_mg, is_custom
) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		id,
		strings.TrimSpace(in.Name),
		strings.TrimSpace(in.Brand),
		in.ServingSize,
		strings.TrimSpace(in.ServingUnit),
		in.CaloriesKcal,
		nullableArg(in.ProteinG),
		nullableArg(in.CarbsG),
		nullableArg(in.FatG),
		nullableArg(in.SaturatedFatG),
		nullableArg(in.TransFatG),
		nullableArg(in.SugarG),
		nullableArg(in.FiberG),
		nullableArg(in.SodiumMg),
		in.IsCustom,
	)
	if err != nil {
		return "", fmt.Errorf("insert food: %w", err)
	}
	return id, nil
}

// ResolveFood looks a food up by id first, then by exact normalized name.
func ResolveFood(sqldb *sql.DB, idOrName string) (*model.FoodMaster, error) {
	idOrName = strings.TrimSpace(idOrName)
	if idOrName == "" {
		return nil, fmt.Errorf("food identifier is required")
	}
	food, err := scanFood(sqldb.QueryRow(foodSelectBase()+` WHERE id = ?`, idOrName))
	if err == nil {
		return food, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("resolve food %q: %w", idOrName, err)
	}
	food, err = scanFood(sqldb.QueryRow(foodSelectBase()+` WHERE LOWER(name) = ? ORDER BY created_at LIMIT 1`, normalizeName(idOrName)))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("food %q not found", idOrName)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve food %q: %w", idOrName, err)
	}
	return food, nil
}

func SearchFoods(sqldb *sql.DB, query string, limit int) ([]model.FoodMaster, error) {
	if limit <= 0 {
		limit = 50
	}
	q := foodSelectBase() + ` WHERE 1=1`
	args := make([]any, 0, 2)
	if strings.TrimSpace(query) != "" {
		q += ` AND LOWER(name) LIKE ?`
		args = append(args, "%"+normalizeName(query)+"%")
	}
	q += ` ORDER BY name ASC LIMIT ?`
	args = append(args, limit)

	rows, err := sqldb.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("search foods: %w", err)
	}
	defer rows.Close()

	foods := make([]model.FoodMaster, 0)
	for rows.Next() {
		food, err := scanFoodRows(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, *food)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return foods, nil
}

func UpdateFood(sqldb *sql.DB, idOrName string, in UpdateFoodInput) error {
	food, err := ResolveFood(sqldb, idOrName)
	if err != nil {
		return err
	}
	if err := validateFoodFields(in.Name, in.ServingSize, in.CaloriesKcal, map[string]*float64{
		"protein":       in.ProteinG,
		"carbs":         in.CarbsG,
		"fat":           in.FatG,
		"saturated fat": in.SaturatedFatG,
		"trans fat":     in.TransFatG,
		"sugar":         in.SugarG,
		"fiber":         in.FiberG,
		"sodium":        in.SodiumMg,
	}); err != nil {
		return err
	}
	if strings.TrimSpace(in.ServingUnit) == "" {
		return fmt.Errorf("serving unit is required")
	}

	_, err = sqldb.Exec(`
UPDATE food_master
SET name = ?, brand = ?, serving_size = ?, serving_unit = ?, calories_kcal = ?,
    protein_g = ?, carbs_g = ?, fat_g = ?, saturated_fat_g = ?, trans_fat_g = ?,
    sugar_g = ?, fiber_g = ?, sodium_mg = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`,
		strings.TrimSpace(in.Name),
		strings.TrimSpace(in.Brand),
		in.ServingSize,
		strings.TrimSpace(in.ServingUnit),
		in.CaloriesKcal,
		nullableArg(in.ProteinG),
		nullableArg(in.CarbsG),
		nullableArg(in.FatG),
		nullableArg(in.SaturatedFatG),
		nullableArg(in.TransFatG),
		nullableArg(in.SugarG),
		nullableArg(in.FiberG),
		nullableArg(in.SodiumMg),
		food.ID,
	)
	if err != nil {
		return fmt.Errorf("update food %q: %w", idOrName, err)
	}
	return nil
}

func DeleteFood(sqldb *sql.DB, idOrName string) error {
	food, err := ResolveFood(sqldb, idOrName)
	if err != nil {
		return err
	}
	res, err := sqldb.Exec(`DELETE FROM food_master WHERE id = ?`, food.ID)
	if err != nil {
		return fmt.Errorf("delete food %q: %w", idOrName, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for food %q: %w", idOrName, err)
	}
	if affected == 0 {
		return fmt.Errorf("food %q not found", idOrName)
	}
	return nil
}

func foodSelectBase() string {
	return `
SELECT id, name, brand, serving_size, serving_unit, calories_kcal,
       protein_g, carbs_g, fat_g, saturated_fat_g, trans_fat_g, sugar_g, fiber_g, sodium_mg,
       is_custom, created_at, updated_at
FROM food_master`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFoodFrom(s rowScanner) (*model.FoodMaster, error) {
	var food model.FoodMaster
	var protein, carbs, fat, satFat, transFat, sugar, fiber, sodium sql.NullFloat64
	var createdAt, updatedAt time.Time
	if err := s.Scan(
		&food.ID,
		&food.Name,
		&food.Brand,
		&food.ServingSize,
		&food.ServingUnit,
		&food.CaloriesKcal,
		&protein,
		&carbs,
		&fat,
		&satFat,
		&transFat,
		&sugar,
		&fiber,
		&sodium,
		&food.IsCustom,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	food.ProteinG = scanNullable(protein)
	food.CarbsG = scanNullable(carbs)
	food.FatG = scanNullable(fat)
	food.SaturatedFatG = scanNullable(satFat)
	food.TransFatG = scanNullable(transFat)
	food.SugarG = scanNullable(sugar)
	food.FiberG = scanNullable(fiber)
	food.SodiumMg = scanNullable(sodium)
	food.CreatedAt = createdAt
	food.UpdatedAt = updatedAt
	return &food, nil
}

func scanFood(row *sql.Row) (*model.FoodMaster, error) {
	return scanFoodFrom(row)
}

func scanFoodRows(rows *sql.Rows) (*model.FoodMaster, error) {
	food, err := scanFoodFrom(rows)
	if err != nil {
		return nil, fmt.Errorf("scan food: %w", err)
	}
	return food, nil
}
