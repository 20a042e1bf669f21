package middleware

import (
	"net/http"

	"Project_Reviews/internal/model"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware 必须挂在 AuthMiddleware 之后
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleAny, ok := c.Get(ContextRoleKey)
		if !ok || roleAny.(int) != model.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"msg": "admin only"})
			c.Abort()
			return
		}
		c.Next()
	}
}
