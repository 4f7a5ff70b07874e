package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) Create(item *entity.MenuItem) error {
	return errors.Wrap(r.DB.Create(item).Error, "create menu item")
}

func (r *MenuRepository) Save(item *entity.MenuItem) error {
	return errors.Wrap(r.DB.Save(item).Error, "save menu item")
}

func (r *MenuRepository) Delete(item *entity.MenuItem) error {
	return errors.Wrap(r.DB.Delete(item).Error, "delete menu item")
}

func (r *MenuRepository) ByID(id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.DB.Preload("Customizations.Options").First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

type MenuFilter struct {
	Category      string
	Veg           *bool
	Search        string
	AvailableOnly bool
}

func (r *MenuRepository) ListByRestaurant(restaurantID uint, f MenuFilter) ([]entity.MenuItem, error) {
	q := r.DB.Where("restaurant_id = ?", restaurantID)

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Veg != nil {
		q = q.Where("is_veg = ?", *f.Veg)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if f.AvailableOnly {
		q = q.Where("is_available = ?", true)
	}

	var items []entity.MenuItem
	err := q.Preload("Customizations.Options").Order("category, name").Find(&items).Error
	return items, err
}

func (r *MenuRepository) Categories(restaurantID uint) ([]string, error) {
	var categories []string
	err := r.DB.Model(&entity.MenuItem{}).
		Where("restaurant_id = ?", restaurantID).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}
