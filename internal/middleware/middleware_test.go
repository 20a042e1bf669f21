package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// 伪造登录态，代替 AuthMiddleware 往上下文注入身份
func fakeIdentity(userID uint64, role int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserIDKey, userID)
		c.Set(ContextRoleKey, role)
		c.Next()
	}
}

func doGet(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	r := gin.New()
	r.GET("/ping", AuthMiddleware(), okHandler)

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	r := gin.New()
	r.GET("/ping", AuthMiddleware(), okHandler)

	w := doGet(r, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	r := gin.New()
	r.GET("/ping", AuthMiddleware(), okHandler)

	w := doGet(r, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	r := gin.New()
	r.GET("/ping", OptionalAuth(), func(c *gin.Context) {
		_, ok := c.Get(ContextUserIDKey)
		assert.False(t, ok)
		c.JSON(http.StatusOK, gin.H{"msg": "ok"})
	})

	w := doGet(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthIgnoresBadToken(t *testing.T) {
	r := gin.New()
	r.GET("/ping", OptionalAuth(), func(c *gin.Context) {
		_, ok := c.Get(ContextUserIDKey)
		assert.False(t, ok)
		c.JSON(http.StatusOK, gin.H{"msg": "ok"})
	})

	w := doGet(r, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminMiddlewareForbidsNormalUser(t *testing.T) {
	r := gin.New()
	r.GET("/ping", fakeIdentity(1, model.RoleUser), AdminMiddleware(), okHandler)

	w := doGet(r, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddlewareAllowsAdmin(t *testing.T) {
	r := gin.New()
	r.GET("/ping", fakeIdentity(1, model.RoleAdmin), AdminMiddleware(), okHandler)

	w := doGet(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

type stubBilling struct {
	active bool
	err    error
	calls  int
}

func (b *stubBilling) HasActiveSubscription(ctx context.Context, customerID string) (bool, error) {
	b.calls++
	return b.active, b.err
}

func (b *stubBilling) CheckoutURL(ctx context.Context, customerID string) (string, error) {
	return "https://pay.example.com/checkout", nil
}

func openUserDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}))
	require.NoError(t, db.Create(&model.User{
		Username: "pro", Email: "pro@example.com", Password: "x",
		BillingCustomerID: "cus_1",
	}).Error)
	require.NoError(t, db.Create(&model.User{
		Username: "free", Email: "free@example.com", Password: "x",
	}).Error)
	return db
}

func subsRouter(db *gorm.DB, billing pkg.BillingClient, userID uint64) *gin.Engine {
	svc := service.NewSubscriptionService(db, billing)
	r := gin.New()
	if userID == 0 {
		r.GET("/ping", SubscriptionMiddleware(svc), okHandler)
	} else {
		r.GET("/ping", fakeIdentity(userID, model.RoleUser), SubscriptionMiddleware(svc), okHandler)
	}
	return r
}

func TestSubscriptionMiddlewareRequiresLogin(t *testing.T) {
	r := subsRouter(openUserDB(t), &stubBilling{}, 0)

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubscriptionMiddlewareAllowsActiveSubscriber(t *testing.T) {
	billing := &stubBilling{active: true}
	r := subsRouter(openUserDB(t), billing, 1)

	w := doGet(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, billing.calls)
}

func TestSubscriptionMiddlewareRejectsInactive(t *testing.T) {
	r := subsRouter(openUserDB(t), &stubBilling{active: false}, 1)

	w := doGet(r, "")
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestSubscriptionMiddlewareRejectsWithoutBillingAccount(t *testing.T) {
	// 没绑计费账户直接视为未订阅，不会去打计费系统
	billing := &stubBilling{active: true}
	r := subsRouter(openUserDB(t), billing, 2)

	w := doGet(r, "")
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, 0, billing.calls)
}

func TestSubscriptionMiddlewareBillingDown(t *testing.T) {
	r := subsRouter(openUserDB(t), &stubBilling{err: errors.New("billing down")}, 1)

	w := doGet(r, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
