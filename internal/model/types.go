package model

import "time"

// FoodMaster is the canonical nutrition record for a food item. All nutrient
// fields are expressed per ServingSize ServingUnit (the canonical basis).
// CaloriesKcal is always present; the remaining nutrient fields are nullable
// because most user-entered foods only carry partial label data.
type FoodMaster struct {
	ID            string
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
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FoodServing is an alternate named serving for a food ("1 slice", "1 cup
// chopped"). Exactly one of WeightG/VolumeML is meaningful, selected by the
// owning food's canonical unit dimension.
type FoodServing struct {
	ID          string
	FoodID      string
	ServingName string
	WeightG     *float64
	VolumeML    *float64
	SortOrder   *int64
	IsDefault   bool
	CreatedAt   time.Time
}

type LogEntry struct {
	ID            int64
	FoodID        string
	FoodName      string
	Meal          string
	Quantity      float64
	UnitLabel     string
	MasterUnits   float64
	CaloriesKcal  float64
	ProteinG      *float64
	CarbsG        *float64
	FatG          *float64
	SaturatedFatG *float64
	TransFatG     *float64
	SugarG        *float64
	FiberG        *float64
	SodiumMg      *float64
	LoggedAt      time.Time
	Notes         string
}

type Bundle struct {
	ID        string
	Name      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BundleItem pins a quantity of a food inside a bundle. ServingID is set when
// the item was added through a named serving; empty means the quantity is in
// UnitLabel (a raw unit or the food's canonical unit).
type BundleItem struct {
	ID        int64
	BundleID  string
	FoodID    string
	FoodName  string
	ServingID string
	UnitLabel string
	Quantity  float64
	SortOrder int64
}

type WaterLog struct {
	ID       int64
	AmountML float64
	LoggedAt time.Time
}

type ExerciseLog struct {
	ID             int64
	ExerciseType   string
	CaloriesBurned int
	DurationMin    *int
	PerformedAt    time.Time
	Source         string
	SourceRef      string
	Notes          string
}

type DailyGoal struct {
	ID            int64
	CaloriesKcal  int
	ProteinG      float64
	CarbsG        float64
	FatG          float64
	EffectiveDate string
	CreatedAt     time.Time
}
