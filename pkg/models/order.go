package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Raw order statuses as written by checkout, staff and automation.
const (
	StatusPending    = "pendente"
	StatusPreparing  = "preparando"
	StatusCooking    = "em preparo"
	StatusReady      = "pronto"
	StatusOnTheWay   = "em rota de entrega"
	StatusOutForTrip = "saiu para entrega"
	StatusDelivered  = "entregue"
	StatusCancelled  = "cancelado"
)

type Order struct {
	ID            string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderNumber   string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"order_number"`
	UserID        *string         `gorm:"type:varchar(36)" json:"user_id,omitempty"`
	CustomerName  string          `gorm:"type:varchar(100);not null" json:"customer_name"`
	Phone         string          `gorm:"type:varchar(20);index;not null" json:"phone"`
	CEP           string          `gorm:"type:varchar(9);not null" json:"cep"`
	State         string          `gorm:"type:varchar(2);not null" json:"state"`
	Neighborhood  string          `gorm:"type:varchar(100);not null" json:"neighborhood"`
	Street        string          `gorm:"type:varchar(150);not null" json:"street"`
	Number        string          `gorm:"type:varchar(20);not null" json:"number"`
	Complement    string          `gorm:"type:varchar(100)" json:"complement"`
	PaymentMethod string          `gorm:"type:varchar(40);not null" json:"payment_method"`
	Items         []OrderItem     `gorm:"type:text;serializer:json" json:"items"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2)" json:"subtotal"`
	DeliveryFee   decimal.Decimal `gorm:"type:decimal(10,2)" json:"delivery_fee"`
	Discount      decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount"`
	CouponCode    *string         `gorm:"type:varchar(40)" json:"coupon_code,omitempty"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	Status        string          `gorm:"type:varchar(30);default:'pendente';index" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is the line snapshot stored with the order.
type OrderItem struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	Size         Size            `json:"size"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Observations string          `json:"observations,omitempty"`
	Extras       []string        `json:"extras,omitempty"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Address renders the delivery address on one line.
func (o *Order) Address() string {
	addr := o.Street + ", " + o.Number
	if o.Complement != "" {
		addr += " - " + o.Complement
	}
	return addr + ", " + o.Neighborhood + ", " + o.State + ", CEP " + o.CEP
}

// StatusEvent is published on an order's push channel whenever its status
// is written.
type StatusEvent struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}
