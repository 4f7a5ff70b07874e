package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/my-lord1/food-delivery-backend/pkg/resp"
	"github.com/my-lord1/food-delivery-backend/services"
	"github.com/my-lord1/food-delivery-backend/utils"
)

type PaymentController struct{ Svc *services.PaymentService }

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{Svc: svc}
}

// POST /payments/verify
func (pc *PaymentController) Verify(c *gin.Context) {
	var req services.VerifyPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	res, err := pc.Svc.VerifyPayment(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, res)
}

// GET /payments
func (pc *PaymentController) History(c *gin.Context) {
	page, limit := pagination(c)
	records, total, err := pc.Svc.History(utils.CurrentUserID(c), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"payments": records, "total": total, "page": page})
}

// POST /payments/methods
func (pc *PaymentController) SaveMethod(c *gin.Context) {
	var req services.SaveMethodReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	methods, err := pc.Svc.SaveMethod(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, methods)
}

// GET /payments/methods
func (pc *PaymentController) SavedMethods(c *gin.Context) {
	methods, err := pc.Svc.SavedMethods(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, methods)
}

// DELETE /payments/methods/:id
func (pc *PaymentController) DeleteMethod(c *gin.Context) {
	methods, err := pc.Svc.DeleteMethod(utils.CurrentUserID(c), idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, methods)
}

// PATCH /payments/methods/:id/default
func (pc *PaymentController) SetDefaultMethod(c *gin.Context) {
	methods, err := pc.Svc.SetDefaultMethod(utils.CurrentUserID(c), idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, methods)
}

// GET /payments/orders/:id/receipt
func (pc *PaymentController) Receipt(c *gin.Context) {
	receipt, err := pc.Svc.GetReceipt(utils.CurrentUserID(c), idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, receipt)
}
