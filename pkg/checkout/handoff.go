package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/example/pizzaria/pkg/models"
)

// Handoff renders an order as a chat message for manual confirmation.
type Handoff struct {
	StoreName      string
	WhatsAppNumber string
}

func (h Handoff) Text(o *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🍕 *NOVO PEDIDO - %s*\n\n", h.StoreName)
	fmt.Fprintf(&b, "*Pedido:* %s\n", o.OrderNumber)
	fmt.Fprintf(&b, "*Cliente:* %s\n", o.CustomerName)
	fmt.Fprintf(&b, "*Telefone:* %s\n", o.Phone)
	fmt.Fprintf(&b, "*Endereço:* %s\n", o.Address())
	fmt.Fprintf(&b, "*Pagamento:* %s\n\n", o.PaymentMethod)
	b.WriteString("*ITENS:*\n")

	lines := make([]string, len(o.Items))
	for i, it := range o.Items {
		line := fmt.Sprintf("%dx %s (%s)\n   R$ %s", it.Quantity, it.Name, it.Size, it.LineTotal().StringFixed(2))
		if it.Observations != "" {
			line += "\n   Obs: " + it.Observations
		}
		lines[i] = line
	}
	b.WriteString(strings.Join(lines, "\n\n"))

	fmt.Fprintf(&b, "\n\n*Subtotal:* R$ %s\n", o.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "*Taxa de Entrega:* R$ %s\n", o.DeliveryFee.StringFixed(2))
	if o.Discount.IsPositive() {
		fmt.Fprintf(&b, "*Desconto:* -R$ %s\n", o.Discount.StringFixed(2))
	}
	fmt.Fprintf(&b, "*TOTAL:* R$ %s", o.Total.StringFixed(2))
	return b.String()
}

// URL is the wa.me deep link carrying Text. Spaces are sent as %20.
func (h Handoff) URL(o *models.Order) string {
	text := strings.ReplaceAll(url.QueryEscape(h.Text(o)), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", h.WhatsAppNumber, text)
}
