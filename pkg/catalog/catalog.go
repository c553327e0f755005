// Package catalog holds the storefront reference data: the seeded menu and
// the border, extra and sauce options offered while customizing a pizza.
package catalog

import (
	"github.com/example/pizzaria/pkg/models"
	"github.com/example/pizzaria/pkg/pricing"
	"github.com/shopspring/decimal"
)

const (
	BorderNone  = "none"
	SauceTomato = "tomato"
)

var Products = []models.Product{
	{
		ID:          "1",
		Name:        "Margherita",
		Description: "Molho de tomate, mussarela, manjericão fresco e azeite",
		Price:       price("42.90"),
		Image:       "/assets/pizza-margherita.jpg",
		Category:    models.CategoryClassic,
		Available:   true,
	},
	{
		ID:          "2",
		Name:        "Pepperoni",
		Description: "Molho de tomate, mussarela e pepperoni",
		Price:       price("48.90"),
		Image:       "/assets/pizza-pepperoni.jpg",
		Category:    models.CategoryClassic,
		Available:   true,
	},
	{
		ID:          "3",
		Name:        "Portuguesa",
		Description: "Molho de tomate, mussarela, presunto, ovos, cebola e azeitonas",
		Price:       price("52.90"),
		Image:       "/assets/pizza-portuguesa.jpg",
		Category:    models.CategoryClassic,
		Available:   true,
	},
	{
		ID:          "4",
		Name:        "Quatro Queijos",
		Description: "Molho branco, mussarela, parmesão, gorgonzola e catupiry",
		Price:       price("54.90"),
		Image:       "/assets/pizza-queijos.jpg",
		Category:    models.CategorySpecial,
		Available:   true,
	},
	{
		ID:          "5",
		Name:        "Chef Signature",
		Description: "Molho especial, mussarela de búfala, tomate seco e rúcula",
		Price:       price("62.90"),
		Image:       "/assets/hero-pizza.jpg",
		Category:    models.CategorySpecial,
		Available:   true,
	},
}

var Borders = []pricing.Option{
	{ID: BorderNone, Name: "Sem Borda", Price: decimal.Zero},
	{ID: "catupiry", Name: "Borda de Catupiry", Price: price("8.90")},
	{ID: "cheddar", Name: "Borda de Cheddar", Price: price("8.90")},
	{ID: "chocolate", Name: "Borda de Chocolate", Price: price("10.90")},
	{ID: "goiabada", Name: "Borda de Goiabada", Price: price("10.90")},
}

var Extras = []pricing.Option{
	{ID: "extra_cheese", Name: "Extra Queijo", Price: price("5.00")},
	{ID: "extra_bacon", Name: "Extra Bacon", Price: price("7.00")},
	{ID: "extra_pepperoni", Name: "Extra Pepperoni", Price: price("8.00")},
	{ID: "extra_olives", Name: "Extra Azeitonas", Price: price("3.00")},
	{ID: "extra_onion", Name: "Extra Cebola", Price: price("2.00")},
	{ID: "extra_mushroom", Name: "Extra Champignon", Price: price("6.00")},
	{ID: "catupiry", Name: "Catupiry", Price: price("8.00")},
	{ID: "cream_cheese", Name: "Cream Cheese", Price: price("7.00")},
}

var Sauces = []pricing.Option{
	{ID: SauceTomato, Name: "Molho de Tomate", Price: decimal.Zero},
	{ID: "bbq", Name: "Molho Barbecue", Price: price("3.00")},
	{ID: "garlic", Name: "Molho de Alho", Price: price("3.00")},
	{ID: "pesto", Name: "Molho Pesto", Price: price("5.00")},
	{ID: "white", Name: "Molho Branco", Price: price("4.00")},
}

// NewBuilder starts a customization with the storefront defaults: size M,
// no border and tomato sauce.
func NewBuilder() *pricing.Builder {
	border, _ := Find(Borders, BorderNone)
	tomato, _ := Find(Sauces, SauceTomato)
	return pricing.NewBuilder(border, tomato)
}

// Flavors keeps the products that can be used as pizza flavors.
func Flavors(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if pricing.IsFlavor(p) {
			out = append(out, p)
		}
	}
	return out
}

func Find(options []pricing.Option, id string) (pricing.Option, bool) {
	for _, o := range options {
		if o.ID == id {
			return o, true
		}
	}
	return pricing.Option{}, false
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
