package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryClassic Category = "classic"
	CategorySpecial Category = "special"
	CategoryDessert Category = "dessert"
	CategoryDrink   Category = "drink"
	CategoryCombo   Category = "combo"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryClassic, CategorySpecial, CategoryDessert, CategoryDrink, CategoryCombo:
		return true
	}
	return false
}

// Size is the pizza size label shown to buyers.
type Size string

const (
	SizeP  Size = "P"
	SizeM  Size = "M"
	SizeG  Size = "G"
	SizeGG Size = "GG"
)

var Sizes = []Size{SizeP, SizeM, SizeG, SizeGG}

func ParseSize(s string) (Size, error) {
	for _, size := range Sizes {
		if string(size) == s {
			return size, nil
		}
	}
	return "", fmt.Errorf("invalid size %q", s)
}

type Product struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `gorm:"type:varchar(255)" json:"image"`
	Category    Category        `gorm:"type:varchar(20);index;not null" json:"category"`
	Available   bool            `gorm:"not null" json:"available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
