package models

import "time"

type Favorite struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Phone     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_favorite_owner_product" json:"phone"`
	ProductID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_owner_product" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

type Address struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Phone        string    `gorm:"type:varchar(20);not null;index" json:"phone"`
	Label        string    `gorm:"type:varchar(60)" json:"label"`
	CEP          string    `gorm:"type:varchar(9);not null" json:"cep"`
	State        string    `gorm:"type:varchar(2)" json:"state"`
	Neighborhood string    `gorm:"type:varchar(100)" json:"neighborhood"`
	Street       string    `gorm:"type:varchar(150)" json:"street"`
	Number       string    `gorm:"type:varchar(20)" json:"number"`
	Complement   string    `gorm:"type:varchar(100)" json:"complement"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Address) TableName() string {
	return "addresses"
}

// TimeClockEntry is one employee shift; ClockOut stays nil while the shift is open.
type TimeClockEntry struct {
	ID         string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	EmployeeID string     `gorm:"type:varchar(36);not null;index" json:"employee_id"`
	Date       string     `gorm:"type:varchar(10);not null" json:"date"`
	ClockIn    time.Time  `gorm:"not null" json:"clock_in"`
	ClockOut   *time.Time `json:"clock_out"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (TimeClockEntry) TableName() string {
	return "time_clock"
}

// All lists every model managed by migrations.
func All() []interface{} {
	return []interface{}{
		&Product{},
		&Order{},
		&Coupon{},
		&Favorite{},
		&Address{},
		&TimeClockEntry{},
	}
}
