package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/my-lord1/food-delivery-backend/pkg/resp"
	"github.com/my-lord1/food-delivery-backend/repository"
	"github.com/my-lord1/food-delivery-backend/services"
	"github.com/my-lord1/food-delivery-backend/utils"
)

type MenuController struct{ Svc *services.MenuService }

func NewMenuController(svc *services.MenuService) *MenuController { return &MenuController{Svc: svc} }

// GET /restaurants/:id/menu?category=&veg=&search=&available=
func (mc *MenuController) ListByRestaurant(c *gin.Context) {
	f := repository.MenuFilter{
		Category:      c.Query("category"),
		Search:        c.Query("search"),
		AvailableOnly: c.Query("available") == "true",
	}
	if v := c.Query("veg"); v != "" {
		veg := v == "true"
		f.Veg = &veg
	}

	items, err := mc.Svc.ListByRestaurant(idParam(c, "id"), f)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}

func (mc *MenuController) Categories(c *gin.Context) {
	cats, err := mc.Svc.Categories(idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cats)
}

func (mc *MenuController) Detail(c *gin.Context) {
	item, err := mc.Svc.ByID(idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

func (mc *MenuController) Create(c *gin.Context) {
	var req services.MenuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := mc.Svc.Create(utils.CurrentUserID(c), idParam(c, "id"), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, item)
}

func (mc *MenuController) Update(c *gin.Context) {
	var req services.MenuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := mc.Svc.Update(utils.CurrentUserID(c), idParam(c, "id"), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

func (mc *MenuController) Delete(c *gin.Context) {
	if err := mc.Svc.Delete(utils.CurrentUserID(c), idParam(c, "id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

func (mc *MenuController) ToggleAvailability(c *gin.Context) {
	item, err := mc.Svc.ToggleAvailability(utils.CurrentUserID(c), idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"isAvailable": item.IsAvailable})
}
