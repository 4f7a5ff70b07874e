package services

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
	"github.com/my-lord1/food-delivery-backend/pkg/apperr"
	"github.com/my-lord1/food-delivery-backend/repository"
)

type FavoritesService struct {
	Users    *repository.UserRepository
	RestRepo *repository.RestaurantRepository
	MenuRepo *repository.MenuRepository
}

func NewFavoritesService(users *repository.UserRepository, restRepo *repository.RestaurantRepository, menuRepo *repository.MenuRepository) *FavoritesService {
	return &FavoritesService{Users: users, RestRepo: restRepo, MenuRepo: menuRepo}
}

// ToggleRestaurant adds the restaurant to the user's favorites, or removes it
// if already present. Returns whether it is a favorite afterwards.
func (s *FavoritesService) ToggleRestaurant(userID, restaurantID uint) (bool, error) {
	u, err := s.Users.ByID(userID)
	if err != nil {
		return false, err
	}
	rest, err := s.RestRepo.ByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFoundf("restaurant %d", restaurantID)
		}
		return false, err
	}

	has, err := s.Users.HasFavoriteRestaurant(u, restaurantID)
	if err != nil {
		return false, err
	}
	if has {
		return false, s.Users.RemoveFavoriteRestaurant(u, rest)
	}
	return true, s.Users.AddFavoriteRestaurant(u, rest)
}

func (s *FavoritesService) Restaurants(userID uint) ([]entity.Restaurant, error) {
	u, err := s.Users.ByID(userID)
	if err != nil {
		return nil, err
	}
	return s.Users.FavoriteRestaurants(u)
}

func (s *FavoritesService) ToggleMenuItem(userID, menuItemID uint) (bool, error) {
	u, err := s.Users.ByID(userID)
	if err != nil {
		return false, err
	}
	item, err := s.MenuRepo.ByID(menuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFoundf("menu item %d", menuItemID)
		}
		return false, err
	}

	has, err := s.Users.HasFavoriteMenuItem(u, menuItemID)
	if err != nil {
		return false, err
	}
	if has {
		return false, s.Users.RemoveFavoriteMenuItem(u, item)
	}
	return true, s.Users.AddFavoriteMenuItem(u, item)
}

func (s *FavoritesService) MenuItems(userID uint) ([]entity.MenuItem, error) {
	u, err := s.Users.ByID(userID)
	if err != nil {
		return nil, err
	}
	return s.Users.FavoriteMenuItems(u)
}
