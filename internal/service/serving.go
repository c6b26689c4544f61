package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/chshwong/calorie-sub012/internal/model"
	"github.com/chshwong/calorie-sub012/internal/nutrition"
)

type AddServingInput struct {
	Food        string
	ServingName string
	WeightG     *float64
	VolumeML    *float64
	SortOrder   *int64
	IsDefault   bool
}

func AddServing(sqldb *sql.DB, in AddServingInput) (string, error) {
	food, err := ResolveFood(sqldb, in.Food)
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(in.ServingName)
	if name == "" {
		return "", fmt.Errorf("serving name is required")
	}
	if in.WeightG == nil && in.VolumeML == nil {
		return "", fmt.Errorf("serving needs a weight or a volume measurement")
	}
	if in.WeightG != nil && *in.WeightG <= 0 {
		return "", fmt.Errorf("serving weight must be > 0")
	}
	if in.VolumeML != nil && *in.VolumeML <= 0 {
		return "", fmt.Errorf("serving volume must be > 0")
	}

	id := uuid.NewString()
	tx, err := sqldb.Begin()
	if err != nil {
		return "", fmt.Errorf("begin serving tx: %w", err)
	}
	if in.IsDefault {
		if _, err := tx.Exec(`UPDATE food_servings SET is_default = 0 WHERE food_id = ?`, food.ID); err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("clear default servings for food %q: %w", food.Name, err)
		}
	}
	var sortOrder any
	if in.SortOrder != nil {
		sortOrder = *in.SortOrder
	}
	if _, err := tx.Exec(`
INSERT INTO food_servings(id, food_id, serving_name, weight_g, volume_ml, sort_order, is_default)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, id, food.ID, name, nullableArg(in.WeightG), nullableArg(in.VolumeML), sortOrder, in.IsDefault); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("insert serving: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit serving tx: %w", err)
	}
	return id, nil
}

// ListServings returns a food's servings ordered is_default DESC then
// sort_order ASC, the order BuildServingOptions expects.
func ListServings(sqldb *sql.DB, foodID string) ([]model.FoodServing, error) {
	rows, err := sqldb.Query(`
SELECT id, food_id, serving_name, weight_g, volume_ml, sort_order, is_default, created_at
FROM food_servings
WHERE food_id = ?
ORDER BY is_default DESC, IFNULL(sort_order, 0) ASC, id ASC
`, foodID)
	if err != nil {
		return nil, fmt.Errorf("list servings: %w", err)
	}
	defer rows.Close()

	servings := make([]model.FoodServing, 0)
	for rows.Next() {
		var s model.FoodServing
		var weight, volume sql.NullFloat64
		var sortOrder sql.NullInt64
		if err := rows.Scan(&s.ID, &s.FoodID, &s.ServingName, &weight, &volume, &sortOrder, &s.IsDefault, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan serving: %w", err)
		}
		s.WeightG = scanNullable(weight)
		s.VolumeML = scanNullable(volume)
		if sortOrder.Valid {
			v := sortOrder.Int64
			s.SortOrder = &v
		}
		servings = append(servings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate servings: %w", err)
	}
	return servings, nil
}

// SetDefaultServing marks one serving as the food's default and clears every
// other default in the same transaction, keeping the steady-state invariant
// of a single default row.
func SetDefaultServing(sqldb *sql.DB, foodRef, servingRef string) error {
	food, err := ResolveFood(sqldb, foodRef)
	if err != nil {
		return err
	}
	serving, err := resolveServing(sqldb, food.ID, servingRef)
	if err != nil {
		return err
	}

	tx, err := sqldb.Begin()
	if err != nil {
		return fmt.Errorf("begin default serving tx: %w", err)
	}
	if _, err := tx.Exec(`UPDATE food_servings SET is_default = 0 WHERE food_id = ?`, food.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear default servings for food %q: %w", food.Name, err)
	}
	if _, err := tx.Exec(`UPDATE food_servings SET is_default = 1 WHERE id = ?`, serving.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("set default serving %q: %w", serving.ServingName, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit default serving tx: %w", err)
	}
	return nil
}

func DeleteServing(sqldb *sql.DB, foodRef, servingRef string) error {
	food, err := ResolveFood(sqldb, foodRef)
	if err != nil {
		return err
	}
	serving, err := resolveServing(sqldb, food.ID, servingRef)
	if err != nil {
		return err
	}
	if _, err := sqldb.Exec(`DELETE FROM food_servings WHERE id = ?`, serving.ID); err != nil {
		return fmt.Errorf("delete serving %q: %w", serving.ServingName, err)
	}
	return nil
}

// DefaultServingForFood resolves the serving a caller should pre-select.
func DefaultServingForFood(sqldb *sql.DB, foodRef string) (*model.FoodMaster, nutrition.DefaultServing, error) {
	food, err := ResolveFood(sqldb, foodRef)
	if err != nil {
		return nil, nutrition.DefaultServing{}, err
	}
	servings, err := ListServings(sqldb, food.ID)
	if err != nil {
		return nil, nutrition.DefaultServing{}, err
	}
	return food, nutrition.ResolveDefaultServing(food, servings), nil
}

func resolveServing(sqldb *sql.DB, foodID, idOrName string) (*model.FoodServing, error) {
	idOrName = strings.TrimSpace(idOrName)
	if idOrName == "" {
		return nil, fmt.Errorf("serving identifier is required")
	}
	servings, err := ListServings(sqldb, foodID)
	if err != nil {
		return nil, err
	}
	for i := range servings {
		if servings[i].ID == idOrName || normalizeName(servings[i].ServingName) == normalizeName(idOrName) {
			return &servings[i], nil
		}
	}
	return nil, fmt.Errorf("serving %q not found", idOrName)
}
