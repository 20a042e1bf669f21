package handler

import (
	"errors"
	"net/http"

	"Project_Reviews/internal/config"
	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	svc *service.UploadService
}

func NewUploadHandler() *UploadHandler {
	uploader := pkg.NewHTTPUploader(
		config.GetEnv("CDN_BASE_URL", ""),
		config.GetEnv("CDN_API_KEY", ""),
	)
	return &UploadHandler{svc: service.NewUploadService(uploader)}
}

// Upload 图片上传接口，multipart字段名 file
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "file required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "cannot read file"})
		return
	}
	defer f.Close()

	res, err := h.svc.Upload(c.Request.Context(), fh.Filename, fh.Size, f)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadFileType), errors.Is(err, service.ErrFileTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "upload failed"})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}
