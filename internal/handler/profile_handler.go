package handler

import (
	"net/http"

	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{svc: service.NewProfileService(mysql.DB)}
}

// Me 当前用户资料接口
func (h *ProfileHandler) Me(c *gin.Context) {
	p, err := h.svc.Get(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateMe 更新资料接口，只动请求里带的字段
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req service.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	p, err := h.svc.Update(currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}
