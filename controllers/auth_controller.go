package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/my-lord1/food-delivery-backend/pkg/resp"
	"github.com/my-lord1/food-delivery-backend/services"
	"github.com/my-lord1/food-delivery-backend/utils"
)

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(svc *services.AuthService) *AuthController { return &AuthController{Svc: svc} }

func (ac *AuthController) Register(c *gin.Context) {
	var req services.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, token, err := ac.Svc.Register(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"user": u, "token": token})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req services.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, token, err := ac.Svc.Login(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"user": u, "token": token})
}

func (ac *AuthController) Me(c *gin.Context) {
	u, err := ac.Svc.Me(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, u)
}

func (ac *AuthController) UpdateMe(c *gin.Context) {
	var req services.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := ac.Svc.UpdateProfile(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, u)
}

func (ac *AuthController) UpdatePassword(c *gin.Context) {
	var req services.UpdatePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ac.Svc.UpdatePassword(utils.CurrentUserID(c), &req); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// ===== Address book =====

func (ac *AuthController) Addresses(c *gin.Context) {
	addrs, err := ac.Svc.Addresses(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, addrs)
}

func (ac *AuthController) AddAddress(c *gin.Context) {
	var req services.AddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	a, err := ac.Svc.AddAddress(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, a)
}

func (ac *AuthController) UpdateAddress(c *gin.Context) {
	var req services.AddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	a, err := ac.Svc.UpdateAddress(utils.CurrentUserID(c), idParam(c, "id"), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, a)
}

func (ac *AuthController) DeleteAddress(c *gin.Context) {
	if err := ac.Svc.DeleteAddress(utils.CurrentUserID(c), idParam(c, "id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
