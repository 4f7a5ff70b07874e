package services

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
	"github.com/my-lord1/food-delivery-backend/pkg/apperr"
	"github.com/my-lord1/food-delivery-backend/repository"
)

type MenuService struct {
	Repo     *repository.MenuRepository
	RestRepo *repository.RestaurantRepository
}

func NewMenuService(repo *repository.MenuRepository, restRepo *repository.RestaurantRepository) *MenuService {
	return &MenuService{Repo: repo, RestRepo: restRepo}
}

type CustomizationGroupReq struct {
	Name      string `json:"name" binding:"required"`
	Required  bool   `json:"required"`
	MaxSelect int    `json:"maxSelect"`
	Options   []struct {
		Name       string `json:"name" binding:"required"`
		PriceDelta int64  `json:"priceDelta"`
	} `json:"options" binding:"required"`
}

type MenuItemReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=1"`
	Category    string `json:"category" binding:"required"`
	IsVeg       bool   `json:"isVeg"`

	Customizations []CustomizationGroupReq `json:"customizations"`
}

func (s *MenuService) Create(ownerID, restaurantID uint, req *MenuItemReq) (*entity.MenuItem, error) {
	if err := s.requireOwner(ownerID, restaurantID); err != nil {
		return nil, err
	}

	item := &entity.MenuItem{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		IsVeg:        req.IsVeg,
		IsAvailable:  true,
	}
	for _, g := range req.Customizations {
		group := entity.CustomizationGroup{
			Name:      g.Name,
			Required:  g.Required,
			MaxSelect: g.MaxSelect,
		}
		for _, o := range g.Options {
			group.Options = append(group.Options, entity.CustomizationOption{
				Name:       o.Name,
				PriceDelta: o.PriceDelta,
			})
		}
		item.Customizations = append(item.Customizations, group)
	}

	if err := s.Repo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuService) requireOwner(ownerID, restaurantID uint) error {
	owned, err := s.RestRepo.IsOwnedBy(restaurantID, ownerID)
	if err != nil {
		return err
	}
	if !owned {
		return apperr.Forbiddenf("restaurant %d", restaurantID)
	}
	return nil
}

func (s *MenuService) ByID(id uint) (*entity.MenuItem, error) {
	item, err := s.Repo.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("menu item %d", id)
		}
		return nil, err
	}
	return item, nil
}

func (s *MenuService) ListByRestaurant(restaurantID uint, f repository.MenuFilter) ([]entity.MenuItem, error) {
	return s.Repo.ListByRestaurant(restaurantID, f)
}

func (s *MenuService) Categories(restaurantID uint) ([]string, error) {
	return s.Repo.Categories(restaurantID)
}

func (s *MenuService) Update(ownerID, itemID uint, req *MenuItemReq) (*entity.MenuItem, error) {
	item, err := s.ownedItem(ownerID, itemID)
	if err != nil {
		return nil, err
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Category = req.Category
	item.IsVeg = req.IsVeg

	if err := s.Repo.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuService) Delete(ownerID, itemID uint) error {
	item, err := s.ownedItem(ownerID, itemID)
	if err != nil {
		return err
	}
	return s.Repo.Delete(item)
}

func (s *MenuService) ToggleAvailability(ownerID, itemID uint) (*entity.MenuItem, error) {
	item, err := s.ownedItem(ownerID, itemID)
	if err != nil {
		return nil, err
	}
	item.IsAvailable = !item.IsAvailable
	if err := s.Repo.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuService) ownedItem(ownerID, itemID uint) (*entity.MenuItem, error) {
	item, err := s.ByID(itemID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ownerID, item.RestaurantID); err != nil {
		return nil, err
	}
	return item, nil
}
