package nutrition

import (
	"fmt"
	"sort"

	"github.com/chshwong/calorie-sub012/internal/model"
)

// ServingOption is a selectable serving choice for a food: either a persisted
// named serving ("saved") or a bare convertible unit ("raw"). Options are
// derived on demand and never persisted.
type ServingOption struct {
	// Unit is the raw unit for a raw option; zero-valued when Saved is set.
	Unit Unit
	// Saved is the backing serving row for a saved option, nil for raw.
	Saved *model.FoodServing
}

func (o ServingOption) IsSaved() bool { return o.Saved != nil }

func (o ServingOption) Label() string {
	if o.Saved != nil {
		return o.Saved.ServingName
	}
	return o.Unit.String()
}

// RawOption wraps a unit as a serving option.
func RawOption(u Unit) ServingOption { return ServingOption{Unit: u} }

// SavedOption wraps a persisted serving as a serving option.
func SavedOption(s *model.FoodServing) ServingOption { return ServingOption{Saved: s} }

// DefaultServing is the quantity/unit a caller should pre-select for a food.
// Serving is nil when the food's own canonical serving was chosen.
type DefaultServing struct {
	Quantity float64
	Unit     string
	Serving  *model.FoodServing
}

// BuildServingOptions returns saved servings first, in the order given (the
// storage layer orders is_default DESC, sort_order ASC), followed by the raw
// unit options for the food's dimension. Named servings are more specific than
// generic unit entry and callers present them first.
func BuildServingOptions(food *model.FoodMaster, servings []model.FoodServing) []ServingOption {
	units := AllowedUnitsFor(food.ServingUnit)
	options := make([]ServingOption, 0, len(servings)+len(units))
	for i := range servings {
		options = append(options, SavedOption(&servings[i]))
	}
	for _, u := range units {
		options = append(options, RawOption(u))
	}
	return options
}

// ResolveDefaultServing picks the serving to pre-select. Among is_default rows
// it orders by sort_order ascending (null as 0) with a lexicographic id
// tie-break, so multiple defaults (a data-quality anomaly it must not crash
// on) still resolve to the same row on every call. No default row at all
// falls back to the food's canonical serving.
func ResolveDefaultServing(food *model.FoodMaster, servings []model.FoodServing) DefaultServing {
	defaults := make([]model.FoodServing, 0, len(servings))
	for _, s := range servings {
		if s.IsDefault {
			defaults = append(defaults, s)
		}
	}
	if len(defaults) == 0 {
		return DefaultServing{Quantity: food.ServingSize, Unit: food.ServingUnit}
	}
	sort.SliceStable(defaults, func(i, j int) bool {
		oi, oj := sortOrderOrZero(defaults[i]), sortOrderOrZero(defaults[j])
		if oi != oj {
			return oi < oj
		}
		return defaults[i].ID < defaults[j].ID
	})
	picked := defaults[0]
	return DefaultServing{Quantity: 1, Unit: picked.ServingName, Serving: &picked}
}

// MasterUnits computes how many canonical units of the food the given quantity
// of the chosen option represents. It never fails: a saved serving missing its
// relevant measurement contributes zero, and a raw unit that cannot be
// converted is treated as already being the canonical unit. Servings are
// user-curated data and a best-effort number beats a crashed computation here.
func MasterUnits(option ServingOption, quantity float64, food *model.FoodMaster) float64 {
	if option.Saved != nil {
		return quantity * normalizedServingValue(option.Saved, food)
	}
	converted, err := ConvertToMasterUnit(quantity, option.Unit, food)
	if err != nil {
		return quantity
	}
	return converted
}

// FormatDefault renders a default serving the way log listings label it.
func FormatDefault(d DefaultServing) string {
	return fmt.Sprintf("%g %s", d.Quantity, d.Unit)
}

func normalizedServingValue(s *model.FoodServing, food *model.FoodMaster) float64 {
	if IsWeightUnit(food.ServingUnit) {
		if s.WeightG == nil {
			return 0
		}
		return *s.WeightG
	}
	if s.VolumeML == nil {
		return 0
	}
	return *s.VolumeML
}

func sortOrderOrZero(s model.FoodServing) int64 {
	if s.SortOrder == nil {
		return 0
	}
	return *s.SortOrder
}
