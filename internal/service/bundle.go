package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chshwong/calorie-sub012/internal/model"
	"github.com/chshwong/calorie-sub012/internal/nutrition"
)

type AddBundleItemInput struct {
	Bundle   string
	Food     string
	Serving  string
	Unit     string
	Quantity float64
}

type LogBundleInput struct {
	Bundle   string
	Meal     string
	LoggedAt time.Time
	Notes    string
}

// BundleSummary is the full nutrient rollup for a bundle, computed fresh from
// the catalog on every call.
type BundleSummary struct {
	Bundle    model.Bundle
	Items     []model.BundleItem
	Nutrients nutrition.Nutrients
}

func CreateBundle(sqldb *sql.DB, name, notes string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("bundle name is required")
	}
	id := uuid.NewString()
	if _, err := sqldb.Exec(`INSERT INTO bundles(id, name, notes) VALUES(?, ?, ?)`, id, name, strings.TrimSpace(notes)); err != nil {
		return "", fmt.Errorf("create bundle: %w", err)
	}
	return id, nil
}

func ResolveBundle(sqldb *sql.DB, idOrName string) (*model.Bundle, error) {
	idOrName = strings.TrimSpace(idOrName)
	if idOrName == "" {
		return nil, fmt.Errorf("bundle identifier is required")
	}
	var b model.Bundle
	err := sqldb.QueryRow(`
SELECT id, name, IFNULL(notes, ''), created_at, updated_at FROM bundles WHERE id = ? OR LOWER(name) = ?
`, idOrName, normalizeName(idOrName)).Scan(&b.ID, &b.Name, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bundle %q not found", idOrName)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve bundle %q: %w", idOrName, err)
	}
	return &b, nil
}

func ListBundles(sqldb *sql.DB) ([]model.Bundle, error) {
	rows, err := sqldb.Query(`SELECT id, name, IFNULL(notes, ''), created_at, updated_at FROM bundles ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list bundles: %w", err)
	}
	defer rows.Close()
	bundles := make([]model.Bundle, 0)
	for rows.Next() {
		var b model.Bundle
		if err := rows.Scan(&b.ID, &b.Name, &b.Notes, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bundle: %w", err)
		}
		bundles = append(bundles, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bundles: %w", err)
	}
	return bundles, nil
}

func AddBundleItem(sqldb *sql.DB, in AddBundleItemInput) (int64, error) {
	if strings.TrimSpace(in.Serving) != "" && strings.TrimSpace(in.Unit) != "" {
		return 0, fmt.Errorf("--serving cannot be combined with --unit")
	}
	if in.Quantity <= 0 {
		return 0, fmt.Errorf("quantity must be > 0")
	}
	bundle, err := ResolveBundle(sqldb, in.Bundle)
	if err != nil {
		return 0, err
	}
	food, err := ResolveFood(sqldb, in.Food)
	if err != nil {
		return 0, err
	}

	servingID := ""
	unitLabel := strings.TrimSpace(in.Unit)
	if ref := strings.TrimSpace(in.Serving); ref != "" {
		serving, err := resolveServing(sqldb, food.ID, ref)
		if err != nil {
			return 0, err
		}
		servingID = serving.ID
		unitLabel = serving.ServingName
	}
	if servingID == "" && unitLabel == "" {
		unitLabel = food.ServingUnit
	}

	res, err := sqldb.Exec(`
INSERT INTO bundle_items(bundle_id, food_id, serving_id, unit_label, quantity, sort_order)
VALUES(?, ?, ?, ?, ?, (SELECT IFNULL(MAX(sort_order), 0) + 1 FROM bundle_items WHERE bundle_id = ?))
`, bundle.ID, food.ID, servingID, unitLabel, in.Quantity, bundle.ID)
	if err != nil {
		return 0, fmt.Errorf("add bundle item: %w", err)
	}
	if _, err := sqldb.Exec(`UPDATE bundles SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, bundle.ID); err != nil {
		return 0, fmt.Errorf("touch bundle %q: %w", bundle.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve bundle item id: %w", err)
	}
	return id, nil
}

func RemoveBundleItem(sqldb *sql.DB, bundleRef string, itemID int64) error {
	bundle, err := ResolveBundle(sqldb, bundleRef)
	if err != nil {
		return err
	}
	res, err := sqldb.Exec(`DELETE FROM bundle_items WHERE bundle_id = ? AND id = ?`, bundle.ID, itemID)
	if err != nil {
		return fmt.Errorf("remove bundle item %d: %w", itemID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for bundle item %d: %w", itemID, err)
	}
	if affected == 0 {
		return fmt.Errorf("bundle item %d not found in bundle %q", itemID, bundle.Name)
	}
	return nil
}

func listBundleItems(sqldb *sql.DB, bundleID string) ([]model.BundleItem, error) {
	rows, err := sqldb.Query(`
SELECT bi.id, bi.bundle_id, bi.food_id, fm.name, IFNULL(bi.serving_id, ''), IFNULL(bi.unit_label, ''), bi.quantity, bi.sort_order
FROM bundle_items bi
JOIN food_master fm ON fm.id = bi.food_id
WHERE bi.bundle_id = ?
ORDER BY bi.sort_order ASC
`, bundleID)
	if err != nil {
		return nil, fmt.Errorf("list bundle items: %w", err)
	}
	defer rows.Close()
	items := make([]model.BundleItem, 0)
	for rows.Next() {
		var item model.BundleItem
		if err := rows.Scan(&item.ID, &item.BundleID, &item.FoodID, &item.FoodName, &item.ServingID, &item.UnitLabel, &item.Quantity, &item.SortOrder); err != nil {
			return nil, fmt.Errorf("scan bundle item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bundle items: %w", err)
	}
	return items, nil
}

// Summary recomputes the bundle's nutrient totals through the serving and
// scaling paths. Accumulation stays unrounded; display rounding happens once
// on the final sum so item-level rounding error cannot pile up.
func Summary(sqldb *sql.DB, bundleRef string) (*BundleSummary, error) {
	bundle, err := ResolveBundle(sqldb, bundleRef)
	if err != nil {
		return nil, err
	}
	items, err := listBundleItems(sqldb, bundle.ID)
	if err != nil {
		return nil, err
	}

	var total nutrition.Nutrients
	for _, item := range items {
		n, err := bundleItemNutrients(sqldb, item)
		if err != nil {
			return nil, err
		}
		total = nutrition.AddNutrients(total, n)
	}
	return &BundleSummary{
		Bundle:    *bundle,
		Items:     items,
		Nutrients: nutrition.RoundForDisplay(total),
	}, nil
}

// LogBundle writes one log entry per bundle item, so a logged bundle stays
// editable food by food afterwards.
func LogBundle(sqldb *sql.DB, in LogBundleInput) ([]int64, error) {
	bundle, err := ResolveBundle(sqldb, in.Bundle)
	if err != nil {
		return nil, err
	}
	items, err := listBundleItems(sqldb, bundle.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("bundle %q has no items", bundle.Name)
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		logIn := LogFoodInput{
			Food:     item.FoodID,
			Quantity: item.Quantity,
			Meal:     in.Meal,
			LoggedAt: in.LoggedAt,
			Notes:    strings.TrimSpace(in.Notes),
		}
		if item.ServingID != "" {
			logIn.Serving = item.ServingID
		} else {
			logIn.Unit = item.UnitLabel
		}
		id, err := LogFood(sqldb, logIn)
		if err != nil {
			return nil, fmt.Errorf("log bundle item %q: %w", item.FoodName, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func bundleItemNutrients(sqldb *sql.DB, item model.BundleItem) (nutrition.Nutrients, error) {
	food, err := ResolveFood(sqldb, item.FoodID)
	if err != nil {
		return nutrition.Nutrients{}, err
	}
	if item.ServingID != "" {
		serving, err := resolveServing(sqldb, food.ID, item.ServingID)
		if err != nil {
			return nutrition.Nutrients{}, err
		}
		return nutrition.ForServing(food, serving, item.Quantity), nil
	}
	option := nutrition.RawOption(nutrition.ParseUnit(item.UnitLabel))
	masterUnits := nutrition.MasterUnits(option, item.Quantity, food)
	return nutrition.ScaleToQuantity(food, masterUnits), nil
}
