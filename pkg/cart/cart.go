// Package cart keeps the buyer's pending line items for one shopping session.
package cart

import (
	"sync"

	"github.com/example/pizzaria/pkg/models"
	"github.com/shopspring/decimal"
)

type Item struct {
	ProductID    string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image,omitempty"`
	Category     models.Category `json:"category,omitempty"`
	Quantity     int             `json:"quantity"`
	Size         models.Size     `json:"size"`
	Observations string          `json:"observations,omitempty"`
	Extras       []string        `json:"extras,omitempty"`
}

func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Store is an ordered collection of items keyed by (product id, size).
// It is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	items []Item
}

func NewStore() *Store {
	return &Store{}
}

// AddItem merges item into an existing line with the same key by adding its
// quantity, or appends it.
func (s *Store) AddItem(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.ProductID, item.Size); i >= 0 {
		s.items[i].Quantity += item.Quantity
		return
	}
	s.items = append(s.items, item)
}

// UpdateQuantity sets the quantity of a line; a quantity of zero or less
// removes it.
func (s *Store) UpdateQuantity(id string, size models.Size, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(id, size)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id, size); i >= 0 {
		s.items[i].Quantity = quantity
	}
}

func (s *Store) RemoveItem(id string, size models.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id, size); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Count is the number of units across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Subtract takes the quantities of a previous Items snapshot back out of the
// cart, dropping lines that reach zero. Lines added or grown after the
// snapshot keep the difference.
func (s *Store) Subtract(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		i := s.indexOf(item.ProductID, item.Size)
		if i < 0 {
			continue
		}
		s.items[i].Quantity -= item.Quantity
		if s.items[i].Quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
	}
}

func (s *Store) indexOf(id string, size models.Size) int {
	for i, item := range s.items {
		if item.ProductID == id && item.Size == size {
			return i
		}
	}
	return -1
}
