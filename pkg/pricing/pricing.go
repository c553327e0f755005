// Package pricing computes the price of a composed pizza.
//
// The base price of a multi-flavor pizza is the arithmetic mean of the
// selected flavors' prices. The size multiplier applies to that base only;
// border, extras and sauces are added on top at face value.
package pricing

import (
	"errors"

	"github.com/example/pizzaria/pkg/models"
	"github.com/shopspring/decimal"
)

var (
	ErrTooManyFlavors = errors.New("too many flavors for this size")
	ErrNoFlavor       = errors.New("choose at least one flavor")
	ErrNotAFlavor     = errors.New("product cannot be used as a pizza flavor")
)

var multipliers = map[models.Size]decimal.Decimal{
	models.SizeP:  decimal.RequireFromString("0.7"),
	models.SizeM:  decimal.NewFromInt(1),
	models.SizeG:  decimal.RequireFromString("1.3"),
	models.SizeGG: decimal.RequireFromString("1.6"),
}

// Flavor is one of the N flavors sharing a pizza. Fraction is always 1/N.
type Flavor struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Fraction  float64         `json:"fraction"`
}

// Option is a border, extra or sauce.
type Option struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func MaxFlavors(size models.Size) int {
	switch size {
	case models.SizeG:
		return 3
	case models.SizeGG:
		return 4
	default:
		return 2
	}
}

func Multiplier(size models.Size) decimal.Decimal {
	if m, ok := multipliers[size]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// Base is the size-independent flavor price: zero, the single flavor's
// price, or the mean of all selected flavors.
func Base(flavors []Flavor) decimal.Decimal {
	switch len(flavors) {
	case 0:
		return decimal.Zero
	case 1:
		return flavors[0].Price
	}
	sum := decimal.Zero
	for _, f := range flavors {
		sum = sum.Add(f.Price)
	}
	return sum.Div(decimal.NewFromInt(int64(len(flavors))))
}

func Price(flavors []Flavor, size models.Size, border Option, extras, sauces []Option) decimal.Decimal {
	total := Base(flavors).Mul(Multiplier(size))
	total = total.Add(border.Price)
	for _, e := range extras {
		total = total.Add(e.Price)
	}
	for _, s := range sauces {
		total = total.Add(s.Price)
	}
	return total
}

// IsFlavor reports whether a product may be picked as a pizza flavor.
func IsFlavor(p models.Product) bool {
	switch p.Category {
	case models.CategoryDessert, models.CategoryDrink, models.CategoryCombo:
		return false
	}
	return true
}
