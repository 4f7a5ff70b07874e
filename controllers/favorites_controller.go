package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/my-lord1/food-delivery-backend/pkg/resp"
	"github.com/my-lord1/food-delivery-backend/services"
	"github.com/my-lord1/food-delivery-backend/utils"
)

type FavoritesController struct{ Svc *services.FavoritesService }

func NewFavoritesController(svc *services.FavoritesService) *FavoritesController {
	return &FavoritesController{Svc: svc}
}

func (fc *FavoritesController) ToggleRestaurant(c *gin.Context) {
	fav, err := fc.Svc.ToggleRestaurant(utils.CurrentUserID(c), idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"isFavorite": fav})
}

func (fc *FavoritesController) Restaurants(c *gin.Context) {
	items, err := fc.Svc.Restaurants(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}

func (fc *FavoritesController) ToggleMenuItem(c *gin.Context) {
	fav, err := fc.Svc.ToggleMenuItem(utils.CurrentUserID(c), idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"isFavorite": fav})
}

func (fc *FavoritesController) MenuItems(c *gin.Context) {
	items, err := fc.Svc.MenuItems(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}
