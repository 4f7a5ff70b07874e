package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func idParam(c *gin.Context, name string) uint {
	id, _ := strconv.Atoi(c.Param(name))
	if id < 0 {
		return 0
	}
	return uint(id)
}

const defaultPageSize = 10

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 || limit > 100 {
		limit = defaultPageSize
	}
	return page, limit
}
