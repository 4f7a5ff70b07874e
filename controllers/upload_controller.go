package controllers

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/my-lord1/food-delivery-backend/pkg/imagestore"
	"github.com/my-lord1/food-delivery-backend/pkg/resp"
)

const maxUploadSize = 5 << 20 // 5 MiB

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

type UploadController struct{ Store imagestore.Store }

func NewUploadController(store imagestore.Store) *UploadController {
	return &UploadController{Store: store}
}

// POST /uploads (multipart field "image")
func (uc *UploadController) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		resp.BadRequest(c, "missing image file")
		return
	}
	if file.Size > maxUploadSize {
		resp.BadRequest(c, "image exceeds 5MB limit")
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		resp.BadRequest(c, "unsupported image type")
		return
	}

	f, err := file.Open()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	stored, err := uc.Store.Upload(data, ext)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, stored)
}
