package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "food_catalog",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS food_master (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  serving_size REAL NOT NULL CHECK(serving_size > 0),
  serving_unit TEXT NOT NULL,
  calories_kcal REAL NOT NULL CHECK(calories_kcal >= 0),
  protein_g REAL CHECK(protein_g >= 0),
  carbs_g REAL CHECK(carbs_g >= 0),
  fat_g REAL CHECK(fat_g >= 0),
  saturated_fat_g REAL CHECK(saturated_fat_g >= 0),
  trans_fat_g REAL CHECK(trans_fat_g >= 0),
  sugar_g REAL CHECK(sugar_g >= 0),
  fiber_g REAL CHECK(fiber_g >= 0),
  sodium_mg REAL CHECK(sodium_mg >= 0),
  is_custom INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_food_master_name ON food_master(name);

CREATE TABLE IF NOT EXISTS food_servings (
  id TEXT PRIMARY KEY,
  food_id TEXT NOT NULL,
  serving_name TEXT NOT NULL,
  weight_g REAL CHECK(weight_g > 0),
  volume_ml REAL CHECK(volume_ml > 0),
  sort_order INTEGER,
  is_default INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(food_id) REFERENCES food_master(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_food_servings_food_id ON food_servings(food_id);
`,
	},
	{
		version: 2,
		name:    "log_entries",
		sql: `
CREATE TABLE IF NOT EXISTS log_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  food_id TEXT NOT NULL,
  food_name TEXT NOT NULL,
  meal TEXT NOT NULL CHECK(meal IN ('breakfast', 'lunch', 'dinner', 'snack')),
  quantity REAL NOT NULL CHECK(quantity >= 0),
  unit_label TEXT NOT NULL,
  master_units REAL NOT NULL CHECK(master_units >= 0),
  calories_kcal REAL NOT NULL CHECK(calories_kcal >= 0),
  protein_g REAL,
  carbs_g REAL,
  fat_g REAL,
  saturated_fat_g REAL,
  trans_fat_g REAL,
  sugar_g REAL,
  fiber_g REAL,
  sodium_mg REAL,
  logged_at DATETIME NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(food_id) REFERENCES food_master(id)
);

CREATE INDEX IF NOT EXISTS idx_log_entries_logged_at ON log_entries(logged_at);
CREATE INDEX IF NOT EXISTS idx_log_entries_food_id ON log_entries(food_id);
`,
	},
	{
		version: 3,
		name:    "bundles",
		sql: `
CREATE TABLE IF NOT EXISTS bundles (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  notes TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS bundle_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  bundle_id TEXT NOT NULL,
  food_id TEXT NOT NULL,
  serving_id TEXT NOT NULL DEFAULT '',
  unit_label TEXT NOT NULL DEFAULT '',
  quantity REAL NOT NULL CHECK(quantity > 0),
  sort_order INTEGER NOT NULL DEFAULT 0,
  FOREIGN KEY(bundle_id) REFERENCES bundles(id) ON DELETE CASCADE,
  FOREIGN KEY(food_id) REFERENCES food_master(id)
);

CREATE INDEX IF NOT EXISTS idx_bundle_items_bundle_id ON bundle_items(bundle_id);
`,
	},
	{
		version: 4,
		name:    "water_logs",
		sql: `
CREATE TABLE IF NOT EXISTS water_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  amount_ml REAL NOT NULL CHECK(amount_ml > 0),
  logged_at DATETIME NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_water_logs_logged_at ON water_logs(logged_at);
`,
	},
	{
		version: 5,
		name:    "exercise_logs",
		sql: `
CREATE TABLE IF NOT EXISTS exercise_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  exercise_type TEXT NOT NULL,
  calories_burned INTEGER NOT NULL CHECK(calories_burned >= 0),
  duration_min INTEGER CHECK(duration_min > 0),
  performed_at DATETIME NOT NULL,
  source TEXT NOT NULL DEFAULT 'manual' CHECK(source IN ('manual', 'fitbit')),
  source_ref TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_exercise_logs_performed_at ON exercise_logs(performed_at);
CREATE UNIQUE INDEX IF NOT EXISTS idx_exercise_logs_source_ref
  ON exercise_logs(source, source_ref) WHERE source_ref <> '';
`,
	},
	{
		version: 6,
		name:    "daily_goals",
		sql: `
CREATE TABLE IF NOT EXISTS daily_goals (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  calories_kcal INTEGER NOT NULL CHECK(calories_kcal >= 0),
  protein_g REAL NOT NULL CHECK(protein_g >= 0),
  carbs_g REAL NOT NULL CHECK(carbs_g >= 0),
  fat_g REAL NOT NULL CHECK(fat_g >= 0),
  effective_date TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(effective_date)
);
`,
	},
}

func ApplyMigrations(sqldb *sql.DB) error {
	if _, err := sqldb.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := sqldb.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := sqldb.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	return nil
}
