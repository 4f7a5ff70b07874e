package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Create(rest *entity.Restaurant) error {
	return errors.Wrap(r.DB.Create(rest).Error, "create restaurant")
}

func (r *RestaurantRepository) Save(rest *entity.Restaurant) error {
	return errors.Wrap(r.DB.Save(rest).Error, "save restaurant")
}

func (r *RestaurantRepository) Delete(rest *entity.Restaurant) error {
	return errors.Wrap(r.DB.Delete(rest).Error, "delete restaurant")
}

func (r *RestaurantRepository) ByID(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) IsOwnedBy(restaurantID, userID uint) (bool, error) {
	var n int64
	err := r.DB.Model(&entity.Restaurant{}).
		Where("id = ? AND owner_id = ?", restaurantID, userID).
		Count(&n).Error
	return n > 0, err
}

type RestaurantFilter struct {
	Cuisine string
	Search  string
	PureVeg *bool
	Sort    string // rating | delivery_time | recent
}

func (r *RestaurantRepository) List(f RestaurantFilter, page, limit int) ([]entity.Restaurant, int64, error) {
	q := r.DB.Model(&entity.Restaurant{}).Where("is_active = ?", true)

	if f.Cuisine != "" {
		q = q.Where("cuisine_types LIKE ?", "%"+f.Cuisine+"%")
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if f.PureVeg != nil {
		q = q.Where("is_pure_veg = ?", *f.PureVeg)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if f.Sort == "rating" {
		order = "average_rating DESC"
	}

	var restaurants []entity.Restaurant
	err := q.Order(order).Limit(limit).Offset((page - 1) * limit).Find(&restaurants).Error
	return restaurants, total, err
}

// UpdateRating writes the derived aggregate; callers recompute it after every
// review mutation.
func (r *RestaurantRepository) UpdateRating(tx *gorm.DB, restaurantID uint, avg float64, count int64) error {
	return tx.Model(&entity.Restaurant{}).Where("id = ?", restaurantID).
		Updates(map[string]any{"average_rating": avg, "total_reviews": count}).Error
}

func (r *RestaurantRepository) IncrementOrders(tx *gorm.DB, restaurantID uint) error {
	return tx.Model(&entity.Restaurant{}).Where("id = ?", restaurantID).
		Update("total_orders", gorm.Expr("total_orders + 1")).Error
}
