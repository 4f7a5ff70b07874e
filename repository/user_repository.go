package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(u *entity.User) error {
	return errors.Wrap(r.DB.Create(u).Error, "create user")
}

func (r *UserRepository) Save(u *entity.User) error {
	return errors.Wrap(r.DB.Save(u).Error, "save user")
}

func (r *UserRepository) ByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) EmailTaken(email string) (bool, error) {
	var n int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

// ---- address book ----

func (r *UserRepository) Addresses(userID uint) ([]entity.Address, error) {
	var addrs []entity.Address
	err := r.DB.Where("user_id = ?", userID).Order("is_default DESC, id").Find(&addrs).Error
	return addrs, err
}

func (r *UserRepository) AddressByID(id uint) (*entity.Address, error) {
	var a entity.Address
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *UserRepository) CreateAddress(a *entity.Address) error {
	return errors.Wrap(r.DB.Create(a).Error, "create address")
}

func (r *UserRepository) SaveAddress(a *entity.Address) error {
	return errors.Wrap(r.DB.Save(a).Error, "save address")
}

func (r *UserRepository) DeleteAddress(a *entity.Address) error {
	return errors.Wrap(r.DB.Delete(a).Error, "delete address")
}

func (r *UserRepository) ClearDefaultAddress(userID uint) error {
	return r.DB.Model(&entity.Address{}).
		Where("user_id = ?", userID).
		Update("is_default", false).Error
}

// ---- saved payment methods ----

func (r *UserRepository) PaymentMethods(userID uint) ([]entity.SavedPaymentMethod, error) {
	var methods []entity.SavedPaymentMethod
	err := r.DB.Where("user_id = ?", userID).Order("is_default DESC, id").Find(&methods).Error
	return methods, err
}

func (r *UserRepository) PaymentMethodByID(id uint) (*entity.SavedPaymentMethod, error) {
	var m entity.SavedPaymentMethod
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *UserRepository) CreatePaymentMethod(m *entity.SavedPaymentMethod) error {
	return errors.Wrap(r.DB.Create(m).Error, "create payment method")
}

func (r *UserRepository) SavePaymentMethod(m *entity.SavedPaymentMethod) error {
	return errors.Wrap(r.DB.Save(m).Error, "save payment method")
}

func (r *UserRepository) DeletePaymentMethod(m *entity.SavedPaymentMethod) error {
	return errors.Wrap(r.DB.Delete(m).Error, "delete payment method")
}

func (r *UserRepository) ClearDefaultPaymentMethod(userID uint) error {
	return r.DB.Model(&entity.SavedPaymentMethod{}).
		Where("user_id = ?", userID).
		Update("is_default", false).Error
}

// ---- favorites ----

func (r *UserRepository) FavoriteRestaurants(u *entity.User) ([]entity.Restaurant, error) {
	var out []entity.Restaurant
	err := r.DB.Model(u).Association("FavoriteRestaurants").Find(&out)
	return out, err
}

func (r *UserRepository) HasFavoriteRestaurant(u *entity.User, restaurantID uint) (bool, error) {
	var out []entity.Restaurant
	err := r.DB.Model(u).Where("id = ?", restaurantID).Association("FavoriteRestaurants").Find(&out)
	return len(out) > 0, err
}

func (r *UserRepository) AddFavoriteRestaurant(u *entity.User, rest *entity.Restaurant) error {
	return r.DB.Model(u).Association("FavoriteRestaurants").Append(rest)
}

func (r *UserRepository) RemoveFavoriteRestaurant(u *entity.User, rest *entity.Restaurant) error {
	return r.DB.Model(u).Association("FavoriteRestaurants").Delete(rest)
}

func (r *UserRepository) FavoriteMenuItems(u *entity.User) ([]entity.MenuItem, error) {
	var out []entity.MenuItem
	err := r.DB.Model(u).Association("FavoriteMenuItems").Find(&out)
	return out, err
}

func (r *UserRepository) HasFavoriteMenuItem(u *entity.User, menuItemID uint) (bool, error) {
	var out []entity.MenuItem
	err := r.DB.Model(u).Where("id = ?", menuItemID).Association("FavoriteMenuItems").Find(&out)
	return len(out) > 0, err
}

func (r *UserRepository) AddFavoriteMenuItem(u *entity.User, item *entity.MenuItem) error {
	return r.DB.Model(u).Association("FavoriteMenuItems").Append(item)
}

func (r *UserRepository) RemoveFavoriteMenuItem(u *entity.User, item *entity.MenuItem) error {
	return r.DB.Model(u).Association("FavoriteMenuItems").Delete(item)
}
