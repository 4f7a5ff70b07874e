package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/my-lord1/food-delivery-backend/pkg/resp"
	"github.com/my-lord1/food-delivery-backend/repository"
	"github.com/my-lord1/food-delivery-backend/services"
	"github.com/my-lord1/food-delivery-backend/utils"
)

type RestaurantController struct{ Svc *services.RestaurantService }

func NewRestaurantController(svc *services.RestaurantService) *RestaurantController {
	return &RestaurantController{Svc: svc}
}

// GET /restaurants?cuisine=&search=&pureVeg=&sort=&page=&limit=
func (rc *RestaurantController) List(c *gin.Context) {
	f := repository.RestaurantFilter{
		Cuisine: c.Query("cuisine"),
		Search:  c.Query("search"),
		Sort:    c.Query("sort"),
	}
	if v := c.Query("pureVeg"); v != "" {
		pureVeg := v == "true"
		f.PureVeg = &pureVeg
	}
	page, limit := pagination(c)

	items, total, err := rc.Svc.List(f, page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"restaurants": items, "total": total, "page": page})
}

func (rc *RestaurantController) Detail(c *gin.Context) {
	rest, err := rc.Svc.Detail(idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rest)
}

func (rc *RestaurantController) Create(c *gin.Context) {
	var req services.RestaurantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := rc.Svc.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, rest)
}

func (rc *RestaurantController) Update(c *gin.Context) {
	var req services.RestaurantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := rc.Svc.Update(utils.CurrentUserID(c), idParam(c, "id"), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rest)
}

func (rc *RestaurantController) Delete(c *gin.Context) {
	if err := rc.Svc.Delete(utils.CurrentUserID(c), idParam(c, "id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

func (rc *RestaurantController) ToggleAcceptingOrders(c *gin.Context) {
	rest, err := rc.Svc.ToggleAcceptingOrders(utils.CurrentUserID(c), idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"isAcceptingOrders": rest.IsAcceptingOrders})
}

func (rc *RestaurantController) Stats(c *gin.Context) {
	stats, err := rc.Svc.Stats(utils.CurrentUserID(c), idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, stats)
}
