package handler

import (
	"net/http"

	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{svc: service.NewNotificationService(mysql.DB)}
}

// List 我的通知列表接口，附带未读数
func (h *NotificationHandler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context(), currentUserID(c), bindPage(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// ReadAll 全部标记已读接口
func (h *NotificationHandler) ReadAll(c *gin.Context) {
	n, err := h.svc.ReadAll(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": n})
}

// ReadOne 单条标记已读接口，别人的通知标不到
func (h *NotificationHandler) ReadOne(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid notification id"})
		return
	}
	marked, err := h.svc.ReadOne(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	if !marked {
		c.JSON(http.StatusNotFound, gin.H{"msg": "notification not found or already read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "read"})
}
