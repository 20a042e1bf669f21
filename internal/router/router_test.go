package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func routeSet(r *gin.Engine) map[string]bool {
	set := make(map[string]bool)
	for _, ri := range r.Routes() {
		set[ri.Method+" "+ri.Path] = true
	}
	return set
}

// 发布项目、上传图片是订阅能力，必须挂在 /api/pro 分组下
func TestSubscriberOnlyRoutesMountedUnderPro(t *testing.T) {
	routes := routeSet(InitRouter())

	assert.True(t, routes[http.MethodPost+" /api/pro/projects"])
	assert.True(t, routes[http.MethodPost+" /api/pro/upload"])
	assert.False(t, routes[http.MethodPost+" /api/auth/projects"])
	assert.False(t, routes[http.MethodPost+" /api/auth/upload"])
}

func TestAdminMailRouteMounted(t *testing.T) {
	routes := routeSet(InitRouter())

	assert.True(t, routes[http.MethodPost+" /api/email/send"])
}

func TestAdminMailRouteRequiresLogin(t *testing.T) {
	r := InitRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/email/send", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
