package middleware

import (
	"net/http"

	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
)

const contextSubscribedKey = "subscribed"

// SubscriptionMiddleware 订阅专属接口的门禁，必须挂在 AuthMiddleware 之后。
// 同一请求内只查一次，结果记在 gin 上下文里。
func SubscriptionMiddleware(subs *service.SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDAny, ok := c.Get(ContextUserIDKey)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "login required"})
			c.Abort()
			return
		}
		userID := userIDAny.(uint64)

		if v, exists := c.Get(contextSubscribedKey); exists {
			if v.(bool) {
				c.Next()
				return
			}
			c.JSON(http.StatusPaymentRequired, gin.H{"msg": "subscription required"})
			c.Abort()
			return
		}

		active, err := subs.IsActive(c.Request.Context(), userID)
		if err != nil {
			// 计费系统不可用时保守拒绝
			c.JSON(http.StatusServiceUnavailable, gin.H{"msg": "subscription check unavailable"})
			c.Abort()
			return
		}
		c.Set(contextSubscribedKey, active)
		if !active {
			c.JSON(http.StatusPaymentRequired, gin.H{"msg": "subscription required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
