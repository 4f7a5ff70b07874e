package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/my-lord1/food-delivery-backend/pkg/resp"
	"github.com/my-lord1/food-delivery-backend/services"
	"github.com/my-lord1/food-delivery-backend/utils"
)

type NotificationController struct{ Svc *services.NotificationService }

func NewNotificationController(svc *services.NotificationService) *NotificationController {
	return &NotificationController{Svc: svc}
}

// GET /notifications?unread=true&page=&limit=
func (nc *NotificationController) List(c *gin.Context) {
	page, limit := pagination(c)
	items, total, unread, err := nc.Svc.ListForUser(utils.CurrentUserID(c), c.Query("unread") == "true", page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"notifications": items, "total": total, "unreadCount": unread, "page": page})
}

func (nc *NotificationController) MarkRead(c *gin.Context) {
	n, err := nc.Svc.MarkRead(utils.CurrentUserID(c), idParam(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, n)
}

func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	if err := nc.Svc.MarkAllRead(utils.CurrentUserID(c)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

func (nc *NotificationController) Delete(c *gin.Context) {
	if err := nc.Svc.Delete(utils.CurrentUserID(c), idParam(c, "id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

func (nc *NotificationController) ClearAll(c *gin.Context) {
	if err := nc.Svc.ClearAll(utils.CurrentUserID(c)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
