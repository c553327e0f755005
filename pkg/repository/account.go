package repository

import (
	"context"
	"time"

	"github.com/example/pizzaria/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add is a no-op when the product is already a favorite.
func (r *FavoriteRepository) Add(ctx context.Context, fav *models.Favorite) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(fav).Error
}

func (r *FavoriteRepository) Remove(ctx context.Context, phone, productID string) error {
	return r.db.WithContext(ctx).
		Where("phone = ? AND product_id = ?", phone, productID).
		Delete(&models.Favorite{}).Error
}

func (r *FavoriteRepository) List(ctx context.Context, phone string) ([]models.Favorite, error) {
	var favs []models.Favorite
	err := r.db.WithContext(ctx).Where("phone = ?", phone).Order("created_at").Find(&favs).Error
	return favs, err
}

type AddressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) Create(ctx context.Context, addr *models.Address) error {
	return r.db.WithContext(ctx).Create(addr).Error
}

func (r *AddressRepository) List(ctx context.Context, phone string) ([]models.Address, error) {
	var addrs []models.Address
	err := r.db.WithContext(ctx).Where("phone = ?", phone).Order("created_at DESC").Find(&addrs).Error
	return addrs, err
}

func (r *AddressRepository) Delete(ctx context.Context, phone, id string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND phone = ?", id, phone).Delete(&models.Address{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type TimeClockRepository struct {
	db *gorm.DB
}

func NewTimeClockRepository(db *gorm.DB) *TimeClockRepository {
	return &TimeClockRepository{db: db}
}

// FindOpen returns the employee's shift that has no clock-out yet.
func (r *TimeClockRepository) FindOpen(ctx context.Context, employeeID string) (*models.TimeClockEntry, error) {
	var entry models.TimeClockEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND clock_out IS NULL", employeeID).
		Order("clock_in DESC").
		First(&entry).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

func (r *TimeClockRepository) Create(ctx context.Context, entry *models.TimeClockEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *TimeClockRepository) Close(ctx context.Context, entry *models.TimeClockEntry, at time.Time) error {
	if err := r.db.WithContext(ctx).Model(entry).Update("clock_out", at).Error; err != nil {
		return err
	}
	entry.ClockOut = &at
	return nil
}

func (r *TimeClockRepository) List(ctx context.Context, employeeID string, limit int) ([]models.TimeClockEntry, error) {
	var entries []models.TimeClockEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("clock_in DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
