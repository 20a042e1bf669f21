package handler

import (
	"errors"
	"net/http"

	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	svc *service.SubscriptionService
}

// NewSubscriptionHandler 订阅服务由router创建，中间件和这里共用一个实例
func NewSubscriptionHandler(svc *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// Status 查询当前用户的订阅状态
func (h *SubscriptionHandler) Status(c *gin.Context) {
	active, err := h.svc.IsActive(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"msg": "subscription check unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}

// Checkout 获取订阅付款链接
func (h *SubscriptionHandler) Checkout(c *gin.Context) {
	url, err := h.svc.CheckoutURL(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNoBillingAccount) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"msg": "billing unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
