package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/my-lord1/food-delivery-backend/entity"
	"github.com/my-lord1/food-delivery-backend/pkg/resp"
	"github.com/my-lord1/food-delivery-backend/services"
	"github.com/my-lord1/food-delivery-backend/utils"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{Svc: svc}
}

func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	res, err := oc.Svc.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, res)
}

// GET /orders?status=&page=&limit=
func (oc *OrderController) ListForMe(c *gin.Context) {
	page, limit := pagination(c)
	status := entity.OrderStatus(c.Query("status"))

	items, total, err := oc.Svc.ListForCustomer(utils.CurrentUserID(c), status, page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": items, "total": total, "page": page})
}

func (oc *OrderController) Detail(c *gin.Context) {
	o, err := oc.Svc.Detail(utils.CurrentUserID(c), idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

func (oc *OrderController) Track(c *gin.Context) {
	info, err := oc.Svc.Track(utils.CurrentUserID(c), idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, info)
}

type updateStatusReq struct {
	Status entity.OrderStatus `json:"status" binding:"required"`
}

func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := oc.Svc.UpdateStatus(utils.CurrentUserID(c), idParam(c, "id"), req.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

type cancelOrderReq struct {
	Reason string `json:"reason"`
}

func (oc *OrderController) Cancel(c *gin.Context) {
	var req cancelOrderReq
	// body is optional; an empty reason is acceptable
	_ = c.ShouldBindJSON(&req)

	o, err := oc.Svc.Cancel(utils.CurrentUserID(c), idParam(c, "id"), req.Reason)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /restaurants/:id/orders?status=placed,confirmed&page=&limit=
func (oc *OrderController) ListForRestaurant(c *gin.Context) {
	page, limit := pagination(c)

	var statuses []entity.OrderStatus
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, entity.OrderStatus(s))
			}
		}
	}

	items, total, err := oc.Svc.ListForRestaurant(utils.CurrentUserID(c), idParam(c, "id"), statuses, page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": items, "total": total, "page": page})
}
