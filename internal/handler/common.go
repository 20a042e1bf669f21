package handler

import (
	"strconv"

	"Project_Reviews/internal/middleware"
	"Project_Reviews/internal/pkg"

	"github.com/gin-gonic/gin"
)

// currentUserID 登录态接口专用，auth中间件保证一定有值
func currentUserID(c *gin.Context) uint64 {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	return userIDAny.(uint64)
}

// viewerID 公开接口用，匿名访问返回0
func viewerID(c *gin.Context) uint64 {
	if userIDAny, ok := c.Get(middleware.ContextUserIDKey); ok {
		return userIDAny.(uint64)
	}
	return 0
}

func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func bindPage(c *gin.Context) pkg.PageQuery {
	var q pkg.PageQuery
	_ = c.ShouldBindQuery(&q)
	q.Normalize()
	return q
}
