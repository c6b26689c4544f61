package nutrition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chshwong/calorie-sub012/internal/model"
)

// UnitKind classifies a unit into one of two convertible dimensions, or opaque
// for anything else ("piece", "serving", typos). Opaque units are never
// convertible but are still carried around so the UI can display them.
type UnitKind int

const (
	KindOpaque UnitKind = iota
	KindWeight
	KindVolume
)

// Unit is a parsed unit string. Recognized units hold their canonical token;
// opaque units keep the original string for diagnostics.
type Unit struct {
	kind UnitKind
	name string
}

var (
	ErrUnknownUnit       = errors.New("unknown unit")
	ErrDimensionMismatch = errors.New("no direct unit conversion allowed")
)

// Conversion factors route through a single base unit per dimension (grams,
// millilitres) so the table stays linear in the number of units.
var gramsPer = map[string]float64{
	"g":  1,
	"kg": 1000,
	"oz": 28.3495,
	"lb": 453.592,
}

var mlPer = map[string]float64{
	"ml":    1,
	"l":     1000,
	"fl oz": 29.5735,
	"cup":   240,
	"tbsp":  15,
	"tsp":   5,
}

var unitAliases = map[string]string{
	"floz":  "fl oz",
	"fl-oz": "fl oz",
	"lbs":   "lb",
}

// ParseUnit is total: any string parses, unrecognized ones to an opaque unit.
func ParseUnit(s string) Unit {
	name := strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := unitAliases[name]; ok {
		name = canonical
	}
	if _, ok := gramsPer[name]; ok {
		return Unit{kind: KindWeight, name: name}
	}
	if _, ok := mlPer[name]; ok {
		return Unit{kind: KindVolume, name: name}
	}
	return Unit{kind: KindOpaque, name: strings.TrimSpace(s)}
}

func (u Unit) Kind() UnitKind { return u.kind }
func (u Unit) IsWeight() bool { return u.kind == KindWeight }
func (u Unit) IsVolume() bool { return u.kind == KindVolume }
func (u Unit) String() string { return u.name }

func IsWeightUnit(s string) bool { return ParseUnit(s).IsWeight() }
func IsVolumeUnit(s string) bool { return ParseUnit(s).IsVolume() }

// ConvertWeight converts a quantity between weight units via grams. The
// identity case returns the quantity untouched: dividing and multiplying by
// the same factor is not guaranteed to round-trip in floating point, and the
// no-op conversion is the most common call.
func ConvertWeight(quantity float64, from, to Unit) (float64, error) {
	fromFactor, ok := gramsPer[from.name]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownUnit, from.name)
	}
	toFactor, ok := gramsPer[to.name]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownUnit, to.name)
	}
	if from.name == to.name {
		return quantity, nil
	}
	return quantity * fromFactor / toFactor, nil
}

// ConvertVolume converts a quantity between volume units via millilitres,
// with the same identity short-circuit as ConvertWeight.
func ConvertVolume(quantity float64, from, to Unit) (float64, error) {
	fromFactor, ok := mlPer[from.name]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownUnit, from.name)
	}
	toFactor, ok := mlPer[to.name]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownUnit, to.name)
	}
	if from.name == to.name {
		return quantity, nil
	}
	return quantity * fromFactor / toFactor, nil
}

// ConvertToMasterUnit converts quantity expressed in from into the food's
// canonical serving unit. Both units must live in the same dimension; a
// weight/volume straddle (or an opaque unit on either side) is an error.
func ConvertToMasterUnit(quantity float64, from Unit, food *model.FoodMaster) (float64, error) {
	master := ParseUnit(food.ServingUnit)
	switch {
	case from.IsWeight() && master.IsWeight():
		return ConvertWeight(quantity, from, master)
	case from.IsVolume() && master.IsVolume():
		return ConvertVolume(quantity, from, master)
	default:
		return 0, fmt.Errorf("%w between %q and %q", ErrDimensionMismatch, from.name, master.name)
	}
}

// AllowedUnitsFor returns every unit in the dimension of the food's canonical
// unit, or just the canonical unit itself when it is opaque, so a caller
// always has at least one valid unit to offer.
func AllowedUnitsFor(foodServingUnit string) []Unit {
	master := ParseUnit(foodServingUnit)
	switch master.kind {
	case KindWeight:
		return weightUnits()
	case KindVolume:
		return volumeUnits()
	default:
		return []Unit{master}
	}
}

func weightUnits() []Unit {
	return []Unit{
		{kind: KindWeight, name: "g"},
		{kind: KindWeight, name: "kg"},
		{kind: KindWeight, name: "oz"},
		{kind: KindWeight, name: "lb"},
	}
}

func volumeUnits() []Unit {
	return []Unit{
		{kind: KindVolume, name: "ml"},
		{kind: KindVolume, name: "l"},
		{kind: KindVolume, name: "fl oz"},
		{kind: KindVolume, name: "cup"},
		{kind: KindVolume, name: "tbsp"},
		{kind: KindVolume, name: "tsp"},
	}
}
