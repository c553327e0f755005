package notify

import (
	"time"

	"github.com/example/pizzaria/pkg/models"
)

const StatusUpdatedKind = "status_atualizado"

// OrderCreated is posted to the webhook once an order has been stored.
type OrderCreated struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"numero_pedido"`
	Customer    Customer  `json:"cliente"`
	Address     Address   `json:"endereco"`
	Items       []Item    `json:"itens"`
	Payment     Payment   `json:"pagamento"`
	Amounts     Amounts   `json:"valores"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type Customer struct {
	Name  string `json:"nome"`
	Phone string `json:"telefone"`
}

type Address struct {
	CEP          string `json:"cep"`
	State        string `json:"estado"`
	Neighborhood string `json:"bairro"`
	Street       string `json:"rua"`
	Number       string `json:"numero"`
	Complement   string `json:"complemento"`
}

type Item struct {
	ProductID    string  `json:"id"`
	Name         string  `json:"nome"`
	Size         string  `json:"tamanho"`
	Quantity     int     `json:"quantidade"`
	UnitPrice    float64 `json:"preco_unitario"`
	TotalPrice   float64 `json:"preco_total"`
	Observations string  `json:"observacoes"`
}

type Payment struct {
	Method string `json:"forma"`
}

type Amounts struct {
	DeliveryFee float64 `json:"taxa_entrega"`
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"desconto"`
	Coupon      *string `json:"cupom"`
	Total       float64 `json:"total"`
}

// StatusChanged is posted whenever staff or automation moves an order.
type StatusChanged struct {
	Kind          string    `json:"tipo"`
	OrderID       string    `json:"pedido_id"`
	OrderNumber   string    `json:"numero_pedido"`
	NewStatus     string    `json:"status_novo"`
	CustomerPhone string    `json:"telefone_cliente"`
	CustomerName  string    `json:"nome_cliente"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewOrderCreated(o *models.Order) *OrderCreated {
	items := make([]Item, len(o.Items))
	for i, it := range o.Items {
		items[i] = Item{
			ProductID:    it.ProductID,
			Name:         it.Name,
			Size:         string(it.Size),
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice.InexactFloat64(),
			TotalPrice:   it.LineTotal().InexactFloat64(),
			Observations: it.Observations,
		}
	}

	return &OrderCreated{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Customer:    Customer{Name: o.CustomerName, Phone: o.Phone},
		Address: Address{
			CEP:          o.CEP,
			State:        o.State,
			Neighborhood: o.Neighborhood,
			Street:       o.Street,
			Number:       o.Number,
			Complement:   o.Complement,
		},
		Items:   items,
		Payment: Payment{Method: o.PaymentMethod},
		Amounts: Amounts{
			DeliveryFee: o.DeliveryFee.InexactFloat64(),
			Subtotal:    o.Subtotal.InexactFloat64(),
			Discount:    o.Discount.InexactFloat64(),
			Coupon:      o.CouponCode,
			Total:       o.Total.InexactFloat64(),
		},
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
}

func NewStatusChanged(o *models.Order, at time.Time) *StatusChanged {
	return &StatusChanged{
		Kind:          StatusUpdatedKind,
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		NewStatus:     o.Status,
		CustomerPhone: o.Phone,
		CustomerName:  o.CustomerName,
		Timestamp:     at.UTC(),
	}
}
