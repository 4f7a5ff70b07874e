package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/my-lord1/food-delivery-backend/pkg/resp"
	"github.com/my-lord1/food-delivery-backend/services"
	"github.com/my-lord1/food-delivery-backend/utils"
)

type ReviewController struct{ Svc *services.ReviewService }

func NewReviewController(svc *services.ReviewService) *ReviewController {
	return &ReviewController{Svc: svc}
}

func (rc *ReviewController) Create(c *gin.Context) {
	var req services.CreateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rev, err := rc.Svc.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, rev)
}

func (rc *ReviewController) Update(c *gin.Context) {
	var req services.UpdateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rev, err := rc.Svc.Update(utils.CurrentUserID(c), idParam(c, "id"), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rev)
}

func (rc *ReviewController) Delete(c *gin.Context) {
	if err := rc.Svc.Delete(utils.CurrentUserID(c), idParam(c, "id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

// GET /restaurants/:id/reviews?sort=recent|rating_high|rating_low|helpful
func (rc *ReviewController) ListForRestaurant(c *gin.Context) {
	page, limit := pagination(c)
	pageRes, err := rc.Svc.ListApproved(idParam(c, "id"), c.DefaultQuery("sort", "recent"), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, pageRes)
}

func (rc *ReviewController) Detail(c *gin.Context) {
	rev, err := rc.Svc.ByID(idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rev)
}

// GET /orders/:id/review
func (rc *ReviewController) ByOrder(c *gin.Context) {
	rev, err := rc.Svc.ByOrder(idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rev)
}

func (rc *ReviewController) ToggleHelpful(c *gin.Context) {
	res, err := rc.Svc.ToggleHelpful(utils.CurrentUserID(c), idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, res)
}

type respondReq struct {
	Text string `json:"text" binding:"required"`
}

func (rc *ReviewController) Respond(c *gin.Context) {
	var req respondReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rev, err := rc.Svc.Respond(utils.CurrentUserID(c), idParam(c, "id"), req.Text)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rev)
}

// GET /partner/restaurants/:id/reviews — every moderation state, with stats
func (rc *ReviewController) OwnerDashboard(c *gin.Context) {
	page, limit := pagination(c)
	pageRes, stats, err := rc.Svc.OwnerDashboard(utils.CurrentUserID(c), idParam(c, "id"), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"reviews": pageRes.Reviews, "total": pageRes.Total, "stats": stats})
}
