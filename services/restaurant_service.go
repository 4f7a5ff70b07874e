package services

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
	"github.com/my-lord1/food-delivery-backend/pkg/apperr"
	"github.com/my-lord1/food-delivery-backend/repository"
)

type RestaurantService struct {
	Repo      *repository.RestaurantRepository
	OrderRepo *repository.OrderRepository
}

func NewRestaurantService(repo *repository.RestaurantRepository, orderRepo *repository.OrderRepository) *RestaurantService {
	return &RestaurantService{Repo: repo, OrderRepo: orderRepo}
}

type RestaurantReq struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	CuisineTypes []string `json:"cuisineTypes"`

	Street   string `json:"street" binding:"required"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state" binding:"required"`
	Pincode  string `json:"pincode" binding:"required"`
	Landmark string `json:"landmark"`

	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"required,email"`

	PriceRange   string `json:"priceRange"`
	DeliveryTime string `json:"deliveryTime"`
	MinimumOrder int64  `json:"minimumOrder"`
	DeliveryFee  int64  `json:"deliveryFee"`
	IsPureVeg    bool   `json:"isPureVeg"`
}

func (s *RestaurantService) Create(ownerID uint, req *RestaurantReq) (*entity.Restaurant, error) {
	rest := &entity.Restaurant{
		OwnerID:      ownerID,
		Name:         req.Name,
		Description:  req.Description,
		CuisineTypes: req.CuisineTypes,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		Landmark:     req.Landmark,
		Phone:        req.Phone,
		Email:        req.Email,
		PriceRange:   req.PriceRange,
		DeliveryTime: req.DeliveryTime,
		MinimumOrder: req.MinimumOrder,
		DeliveryFee:  req.DeliveryFee,
		IsPureVeg:    req.IsPureVeg,

		IsAcceptingOrders: true,
		IsActive:          true,
	}
	if err := s.Repo.Create(rest); err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *RestaurantService) List(f repository.RestaurantFilter, page, limit int) ([]entity.Restaurant, int64, error) {
	return s.Repo.List(f, page, limit)
}

func (s *RestaurantService) Detail(id uint) (*entity.Restaurant, error) {
	rest, err := s.Repo.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("restaurant %d", id)
		}
		return nil, err
	}
	return rest, nil
}

func (s *RestaurantService) ownedRestaurant(ownerID, restaurantID uint) (*entity.Restaurant, error) {
	rest, err := s.Detail(restaurantID)
	if err != nil {
		return nil, err
	}
	if rest.OwnerID != ownerID {
		return nil, apperr.Forbiddenf("restaurant %d", restaurantID)
	}
	return rest, nil
}

func (s *RestaurantService) Update(ownerID, restaurantID uint, req *RestaurantReq) (*entity.Restaurant, error) {
	rest, err := s.ownedRestaurant(ownerID, restaurantID)
	if err != nil {
		return nil, err
	}

	rest.Name = req.Name
	rest.Description = req.Description
	rest.CuisineTypes = req.CuisineTypes
	rest.Street = req.Street
	rest.City = req.City
	rest.State = req.State
	rest.Pincode = req.Pincode
	rest.Landmark = req.Landmark
	rest.Phone = req.Phone
	rest.Email = req.Email
	rest.PriceRange = req.PriceRange
	rest.DeliveryTime = req.DeliveryTime
	rest.MinimumOrder = req.MinimumOrder
	rest.DeliveryFee = req.DeliveryFee
	rest.IsPureVeg = req.IsPureVeg

	if err := s.Repo.Save(rest); err != nil {
		return nil, err
	}
	return rest, nil
}

// Delete deactivates and soft-deletes; orders keep their reference.
func (s *RestaurantService) Delete(ownerID, restaurantID uint) error {
	rest, err := s.ownedRestaurant(ownerID, restaurantID)
	if err != nil {
		return err
	}
	rest.IsActive = false
	if err := s.Repo.Save(rest); err != nil {
		return err
	}
	return s.Repo.Delete(rest)
}

func (s *RestaurantService) ToggleAcceptingOrders(ownerID, restaurantID uint) (*entity.Restaurant, error) {
	rest, err := s.ownedRestaurant(ownerID, restaurantID)
	if err != nil {
		return nil, err
	}
	rest.IsAcceptingOrders = !rest.IsAcceptingOrders
	if err := s.Repo.Save(rest); err != nil {
		return nil, err
	}
	return rest, nil
}

type RestaurantStats struct {
	TotalOrders   int64   `json:"totalOrders"`
	Revenue       int64   `json:"revenue"` // delivered orders, minor units
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int64   `json:"totalReviews"`
}

func (s *RestaurantService) Stats(ownerID, restaurantID uint) (*RestaurantStats, error) {
	rest, err := s.ownedRestaurant(ownerID, restaurantID)
	if err != nil {
		return nil, err
	}

	orders, err := s.OrderRepo.CountForRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	revenue, err := s.OrderRepo.DeliveredRevenue(restaurantID)
	if err != nil {
		return nil, err
	}

	return &RestaurantStats{
		TotalOrders:   orders,
		Revenue:       revenue,
		AverageRating: rest.AverageRating,
		TotalReviews:  rest.TotalReviews,
	}, nil
}
