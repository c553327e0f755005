// Package account keeps the per-customer records of the storefront
// (favorite products and saved addresses, keyed by phone) and the employee
// time clock.
package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/example/pizzaria/pkg/cep"
	"github.com/example/pizzaria/pkg/models"
	"github.com/example/pizzaria/pkg/repository"
	"github.com/google/uuid"
)

var (
	ErrPhoneRequired = errors.New("phone is required")
	ErrShiftOpen     = errors.New("employee already clocked in")
	ErrNoOpenShift   = errors.New("employee is not clocked in")
)

type FavoriteStore interface {
	Add(ctx context.Context, fav *models.Favorite) error
	Remove(ctx context.Context, phone, productID string) error
	List(ctx context.Context, phone string) ([]models.Favorite, error)
}

type AddressStore interface {
	Create(ctx context.Context, addr *models.Address) error
	List(ctx context.Context, phone string) ([]models.Address, error)
	Delete(ctx context.Context, phone, id string) error
}

type TimeClockStore interface {
	FindOpen(ctx context.Context, employeeID string) (*models.TimeClockEntry, error)
	Create(ctx context.Context, entry *models.TimeClockEntry) error
	Close(ctx context.Context, entry *models.TimeClockEntry, at time.Time) error
	List(ctx context.Context, employeeID string, limit int) ([]models.TimeClockEntry, error)
}

type Favorites struct {
	store FavoriteStore
}

func NewFavorites(store FavoriteStore) *Favorites {
	return &Favorites{store: store}
}

func (f *Favorites) Add(ctx context.Context, phone, productID string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrPhoneRequired
	}
	return f.store.Add(ctx, &models.Favorite{ID: uuid.NewString(), Phone: phone, ProductID: productID})
}

func (f *Favorites) Remove(ctx context.Context, phone, productID string) error {
	return f.store.Remove(ctx, strings.TrimSpace(phone), productID)
}

// ProductIDs lists the customer's favorites in the order they were added.
func (f *Favorites) ProductIDs(ctx context.Context, phone string) ([]string, error) {
	favs, err := f.store.List(ctx, strings.TrimSpace(phone))
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(favs))
	for i, fav := range favs {
		ids[i] = fav.ProductID
	}
	return ids, nil
}

type Addresses struct {
	store AddressStore
}

func NewAddresses(store AddressStore) *Addresses {
	return &Addresses{store: store}
}

// Save stores a delivery address. The CEP is kept as digits only.
func (a *Addresses) Save(ctx context.Context, addr *models.Address) error {
	addr.Phone = strings.TrimSpace(addr.Phone)
	if addr.Phone == "" {
		return ErrPhoneRequired
	}
	addr.CEP = cep.Clean(addr.CEP)
	if len(addr.CEP) != 8 {
		return cep.ErrInvalidCEP
	}
	if addr.ID == "" {
		addr.ID = uuid.NewString()
	}
	return a.store.Create(ctx, addr)
}

func (a *Addresses) List(ctx context.Context, phone string) ([]models.Address, error) {
	return a.store.List(ctx, strings.TrimSpace(phone))
}

func (a *Addresses) Delete(ctx context.Context, phone, id string) error {
	return a.store.Delete(ctx, strings.TrimSpace(phone), id)
}

type TimeClock struct {
	store TimeClockStore
	now   func() time.Time
}

func NewTimeClock(store TimeClockStore) *TimeClock {
	return &TimeClock{store: store, now: time.Now}
}

func (t *TimeClock) ClockIn(ctx context.Context, employeeID string) (*models.TimeClockEntry, error) {
	_, err := t.store.FindOpen(ctx, employeeID)
	if err == nil {
		return nil, ErrShiftOpen
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := t.now()
	entry := &models.TimeClockEntry{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       now.Format("2006-01-02"),
		ClockIn:    now,
	}
	if err := t.store.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (t *TimeClock) ClockOut(ctx context.Context, employeeID string) (*models.TimeClockEntry, error) {
	entry, err := t.store.FindOpen(ctx, employeeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoOpenShift
	}
	if err != nil {
		return nil, err
	}
	if err := t.store.Close(ctx, entry, t.now()); err != nil {
		return nil, err
	}
	return entry, nil
}

func (t *TimeClock) History(ctx context.Context, employeeID string) ([]models.TimeClockEntry, error) {
	return t.store.List(ctx, employeeID, 30)
}
