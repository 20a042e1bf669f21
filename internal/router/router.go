package router

import (
	"Project_Reviews/internal/config"
	"Project_Reviews/internal/handler"
	"Project_Reviews/internal/middleware"
	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter() *gin.Engine {
	r := gin.Default()

	billing := pkg.NewHTTPBillingClient(
		config.GetEnv("BILLING_BASE_URL", ""),
		config.GetEnv("BILLING_API_KEY", ""),
	)
	subsSvc := service.NewSubscriptionService(mysql.DB, billing)

	user := handler.NewUserHandler()
	email := handler.NewEmailHandler()
	profile := handler.NewProfileHandler()
	category := handler.NewCategoryHandler()
	project := handler.NewProjectHandler()
	release := handler.NewReleaseHandler()
	comment := handler.NewCommentHandler()
	review := handler.NewReviewHandler()
	vote := handler.NewVoteHandler()
	notification := handler.NewNotificationHandler()
	dashboard := handler.NewDashboardHandler()
	ai := handler.NewAIHandler()
	upload := handler.NewUploadHandler()
	subscription := handler.NewSubscriptionHandler(subsSvc)

	// 邮件相关接口
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", email.SendCode)
		// 管理端直发通知邮件
		emailGroup.POST("/send", middleware.AuthMiddleware(), middleware.AdminMiddleware(), email.SendTransactional)
	}

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/reset", user.ResetPassword)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 公开浏览接口，带token则按所有者视角判断可见性
	publicGroup := r.Group("/api")
	publicGroup.Use(middleware.OptionalAuth())
	{
		publicGroup.GET("/categories", category.List)
		publicGroup.GET("/categories/:id", category.Get)
		publicGroup.GET("/projects", project.ListPublic)
		publicGroup.GET("/projects/:id", project.Get)
		publicGroup.GET("/projects/:id/releases", release.ListByProject)
		publicGroup.GET("/releases/:id", release.Get)
		publicGroup.GET("/releases/:id/comments", comment.ListByRelease)
		publicGroup.GET("/releases/:id/reviews", review.ListByRelease)
		publicGroup.GET("/releases/:id/reviews/summary", review.Summary)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/change-password", user.ChangePassword)
		authGroup.GET("/me", profile.Me)
		authGroup.PATCH("/me", profile.UpdateMe)

		authGroup.PUT("/projects/:id", project.Update)
		authGroup.DELETE("/projects/:id", project.Delete)
		authGroup.GET("/projects/mine", project.ListMine)

		authGroup.POST("/projects/:id/releases", release.Create)
		authGroup.PUT("/releases/:id", release.Update)
		authGroup.DELETE("/releases/:id", release.Delete)

		authGroup.POST("/releases/:id/comments", comment.Create)
		authGroup.DELETE("/comments/:id", comment.Delete)

		authGroup.POST("/releases/:id/reviews", review.Create)
		authGroup.PUT("/reviews/:id", review.Update)
		authGroup.DELETE("/reviews/:id", review.Delete)

		authGroup.POST("/votes", vote.Cast)
		authGroup.GET("/votes/status", vote.Status)

		authGroup.GET("/notifications", notification.List)
		authGroup.POST("/notifications/read-all", notification.ReadAll)
		authGroup.POST("/notifications/:id/read", notification.ReadOne)

		authGroup.GET("/subscription", subscription.Status)
		authGroup.POST("/subscription/checkout", subscription.Checkout)
	}

	// 订阅专属接口，发布项目和传图也是订阅能力
	subGroup := r.Group("/api/pro")
	subGroup.Use(middleware.AuthMiddleware(), middleware.SubscriptionMiddleware(subsSvc))
	{
		subGroup.GET("/dashboard", dashboard.OwnerStats)
		subGroup.POST("/projects", project.Create)
		subGroup.POST("/upload", upload.Upload)
		subGroup.POST("/ai/draft", ai.Draft)
		subGroup.POST("/ai/chat", ai.Chat)
	}

	// 管理端接口
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		adminGroup.POST("/categories", category.Create)
		adminGroup.PUT("/categories/:id", category.Update)
		adminGroup.DELETE("/categories/:id", category.Delete)

		adminGroup.GET("/stats", dashboard.AdminStats)
		adminGroup.GET("/users", dashboard.ListUsers)
		adminGroup.PUT("/users/:id/role", dashboard.SetRole)
		adminGroup.PUT("/users/:id/ban", dashboard.SetBanned)
	}

	return r
}
