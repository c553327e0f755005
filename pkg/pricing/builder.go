package pricing

import (
	"fmt"
	"strings"

	"github.com/example/pizzaria/pkg/cart"
	"github.com/example/pizzaria/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const CustomPizzaName = "Pizza Personalizada"

// Builder is the state of one pizza customization session.
type Builder struct {
	size         models.Size
	flavors      []Flavor
	images       map[string]string
	border       Option
	extras       []Option
	sauces       []Option
	observations string
}

func NewBuilder(border Option, sauces ...Option) *Builder {
	return &Builder{
		size:   models.SizeM,
		border: border,
		sauces: append([]Option(nil), sauces...),
		images: make(map[string]string),
	}
}

func (b *Builder) Size() models.Size { return b.size }
func (b *Builder) Border() Option    { return b.border }

func (b *Builder) Flavors() []Flavor {
	return append([]Flavor(nil), b.flavors...)
}

func (b *Builder) Extras() []Option {
	return append([]Option(nil), b.extras...)
}

func (b *Builder) Sauces() []Option {
	return append([]Option(nil), b.sauces...)
}

// ToggleFlavor removes the product when it is already selected and adds it
// otherwise. Adding past MaxFlavors leaves the selection untouched.
func (b *Builder) ToggleFlavor(p models.Product) error {
	for i, f := range b.flavors {
		if f.ProductID == p.ID {
			b.flavors = append(b.flavors[:i], b.flavors[i+1:]...)
			b.recomputeFractions()
			return nil
		}
	}

	if !IsFlavor(p) {
		return fmt.Errorf("%w: %s", ErrNotAFlavor, p.Name)
	}
	if limit := MaxFlavors(b.size); len(b.flavors) >= limit {
		return fmt.Errorf("%w: maximum of %d flavors for size %s", ErrTooManyFlavors, limit, b.size)
	}

	b.flavors = append(b.flavors, Flavor{ProductID: p.ID, Name: p.Name, Price: p.Price})
	b.images[p.ID] = p.Image
	b.recomputeFractions()
	return nil
}

// SetSize changes the size and drops the flavors beyond the new maximum,
// keeping the earliest picks.
func (b *Builder) SetSize(size models.Size) {
	b.size = size
	if limit := MaxFlavors(size); len(b.flavors) > limit {
		b.flavors = b.flavors[:limit]
		b.recomputeFractions()
	}
}

func (b *Builder) SetBorder(o Option) {
	b.border = o
}

func (b *Builder) ToggleExtra(o Option) {
	b.extras = toggle(b.extras, o)
}

func (b *Builder) ToggleSauce(o Option) {
	b.sauces = toggle(b.sauces, o)
}

func (b *Builder) SetObservations(s string) {
	b.observations = strings.TrimSpace(s)
}

func (b *Builder) Price() decimal.Decimal {
	return Price(b.flavors, b.size, b.border, b.extras, b.sauces)
}

// Description summarizes the composition, e.g.
// "Margherita + Pepperoni | Borda de Cheddar | Extras: Extra Bacon".
func (b *Builder) Description() string {
	names := make([]string, len(b.flavors))
	for i, f := range b.flavors {
		names[i] = f.Name
	}
	desc := strings.Join(names, " + ")
	if b.border.ID != "" && !b.border.Price.IsZero() {
		desc += " | " + b.border.Name
	}
	if len(b.extras) > 0 {
		extras := make([]string, len(b.extras))
		for i, e := range b.extras {
			extras[i] = e.Name
		}
		desc += " | Extras: " + strings.Join(extras, ", ")
	}
	return desc
}

// CartItem turns the composition into a cart line priced to the cent.
// Free sauces are not listed among the extras.
func (b *Builder) CartItem() (cart.Item, error) {
	if len(b.flavors) == 0 {
		return cart.Item{}, ErrNoFlavor
	}

	extras := make([]string, 0, len(b.extras)+len(b.sauces))
	for _, e := range b.extras {
		extras = append(extras, e.Name)
	}
	for _, s := range b.sauces {
		if !s.Price.IsZero() {
			extras = append(extras, s.Name)
		}
	}

	return cart.Item{
		ProductID:    "custom-" + uuid.NewString(),
		Name:         CustomPizzaName,
		Description:  b.Description(),
		Price:        b.Price().Round(2),
		Image:        b.images[b.flavors[0].ProductID],
		Category:     models.CategorySpecial,
		Quantity:     1,
		Size:         b.size,
		Observations: b.observations,
		Extras:       extras,
	}, nil
}

func (b *Builder) recomputeFractions() {
	if len(b.flavors) == 0 {
		return
	}
	fraction := 1 / float64(len(b.flavors))
	for i := range b.flavors {
		b.flavors[i].Fraction = fraction
	}
}

func toggle(list []Option, o Option) []Option {
	for i, existing := range list {
		if existing.ID == o.ID {
			return append(list[:i], list[i+1:]...)
		}
	}
	return append(list, o)
}
