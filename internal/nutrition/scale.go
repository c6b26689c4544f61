package nutrition

import (
	"math"

	"github.com/chshwong/calorie-sub012/internal/model"
)

// Nutrients is the nine-field nutrient tuple scaled to a requested quantity.
// CaloriesKcal is always present; the nullable fields stay nil whenever the
// source food has no value for them, so absence is never rendered as zero.
type Nutrients struct {
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

// PerMasterUnit divides every canonical nutrient field by the food's serving
// size, yielding nutrients per single canonical unit.
func PerMasterUnit(food *model.FoodMaster) Nutrients {
	size := food.ServingSize
	if size <= 0 {
		// serving_size > 0 is enforced at write time; guard against a bad row
		// rather than emitting Inf.
		size = 1
	}
	n := canonical(food)
	return Nutrients{
		CaloriesKcal:  n.CaloriesKcal / size,
		ProteinG:      divideNullable(n.ProteinG, size),
		CarbsG:        divideNullable(n.CarbsG, size),
		FatG:          divideNullable(n.FatG, size),
		SaturatedFatG: divideNullable(n.SaturatedFatG, size),
		TransFatG:     divideNullable(n.TransFatG, size),
		SugarG:        divideNullable(n.SugarG, size),
		FiberG:        divideNullable(n.FiberG, size),
		SodiumMg:      divideNullable(n.SodiumMg, size),
	}
}

// ScaleToQuantity scales the food's canonical nutrients to quantity expressed
// in the food's canonical unit. Null fields propagate; nothing here fails.
func ScaleToQuantity(food *model.FoodMaster, quantityInMasterUnits float64) Nutrients {
	return ScaleNutrients(PerMasterUnit(food), quantityInMasterUnits)
}

// ForServing scales canonical nutrients to quantity of a named serving. The
// factor comes from the serving's relevant measurement (weight for weight
// foods, volume otherwise) relative to the serving size. A serving missing
// that measurement scales to zero so callers can detect an unresolvable
// serving from the result itself.
func ForServing(food *model.FoodMaster, serving *model.FoodServing, quantity float64) Nutrients {
	return ScaleToQuantity(food, quantity*normalizedServingValue(serving, food))
}

// ScaleNutrients multiplies every field by factor, keeping nil fields nil.
func ScaleNutrients(n Nutrients, factor float64) Nutrients {
	return Nutrients{
		CaloriesKcal:  n.CaloriesKcal * factor,
		ProteinG:      scaleNullable(n.ProteinG, factor),
		CarbsG:        scaleNullable(n.CarbsG, factor),
		FatG:          scaleNullable(n.FatG, factor),
		SaturatedFatG: scaleNullable(n.SaturatedFatG, factor),
		TransFatG:     scaleNullable(n.TransFatG, factor),
		SugarG:        scaleNullable(n.SugarG, factor),
		FiberG:        scaleNullable(n.FiberG, factor),
		SodiumMg:      scaleNullable(n.SodiumMg, factor),
	}
}

// AddNutrients accumulates two nutrient tuples, for bundle and day totals.
// A field is nil in the sum only when it is nil on both sides; a food with no
// protein data should not erase the protein contributed by another.
func AddNutrients(a, b Nutrients) Nutrients {
	return Nutrients{
		CaloriesKcal:  a.CaloriesKcal + b.CaloriesKcal,
		ProteinG:      addNullable(a.ProteinG, b.ProteinG),
		CarbsG:        addNullable(a.CarbsG, b.CarbsG),
		FatG:          addNullable(a.FatG, b.FatG),
		SaturatedFatG: addNullable(a.SaturatedFatG, b.SaturatedFatG),
		TransFatG:     addNullable(a.TransFatG, b.TransFatG),
		SugarG:        addNullable(a.SugarG, b.SugarG),
		FiberG:        addNullable(a.FiberG, b.FiberG),
		SodiumMg:      addNullable(a.SodiumMg, b.SodiumMg),
	}
}

// RoundForDisplay applies the display precision policy: calories to the
// nearest integer, gram fields to one decimal, sodium to whole milligrams.
// Scaling itself never rounds, so callers can chain arithmetic (bundle
// totals) before precision is lost; this runs only at persistence or print.
func RoundForDisplay(n Nutrients) Nutrients {
	return Nutrients{
		CaloriesKcal:  math.Round(n.CaloriesKcal),
		ProteinG:      roundNullable(n.ProteinG, 1),
		CarbsG:        roundNullable(n.CarbsG, 1),
		FatG:          roundNullable(n.FatG, 1),
		SaturatedFatG: roundNullable(n.SaturatedFatG, 1),
		TransFatG:     roundNullable(n.TransFatG, 1),
		SugarG:        roundNullable(n.SugarG, 1),
		FiberG:        roundNullable(n.FiberG, 1),
		SodiumMg:      roundNullable(n.SodiumMg, 0),
	}
}

func canonical(food *model.FoodMaster) Nutrients {
	return Nutrients{
		CaloriesKcal:  food.CaloriesKcal,
		ProteinG:      food.ProteinG,
		CarbsG:        food.CarbsG,
		FatG:          food.FatG,
		SaturatedFatG: food.SaturatedFatG,
		TransFatG:     food.TransFatG,
		SugarG:        food.SugarG,
		FiberG:        food.FiberG,
		SodiumMg:      food.SodiumMg,
	}
}

func scaleNullable(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v * factor
	return &out
}

func divideNullable(v *float64, divisor float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v / divisor
	return &out
}

func addNullable(a, b *float64) *float64 {
	if a == nil && b == nil {
		return nil
	}
	var sum float64
	if a != nil {
		sum += *a
	}
	if b != nil {
		sum += *b
	}
	return &sum
}

func roundNullable(v *float64, decimals int) *float64 {
	if v == nil {
		return nil
	}
	pow := math.Pow(10, float64(decimals))
	out := math.Round(*v*pow) / pow
	return &out
}
