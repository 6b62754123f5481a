package router

import (
	"Aura_Community/internal/handler"
	"Aura_Community/internal/middleware"
	"Aura_Community/internal/pkg"
	"Aura_Community/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func InitRouter(db *gorm.DB, emailCfg pkg.SMTPConfig) *gin.Engine {
	r := gin.Default()

	rl := middleware.NewRateLimiter(20, 40)

	emailSvc := service.NewEmailService(emailCfg)
	user := handler.NewUserHandler(db, emailSvc)
	email := handler.NewEmailHandler(emailSvc)
	session := handler.NewSessionHandler(db)
	artwork := handler.NewArtworkHandler(db)
	post := handler.NewPostHandler(db)

	api := r.Group("/api", rl.Handler())
	auth := middleware.AuthMiddleware()

	// 邮件验证码
	api.POST("/email/:scope/code", email.SendCode)

	// 用户
	userGroup := api.Group("/users")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/logout", auth, user.Logout)
		userGroup.POST("/reset", user.ResetPassword)
		userGroup.POST("/change-password", auth, user.ChangePassword)
		userGroup.GET("/me", auth, user.Me)
	}
	api.POST("/token/refresh", user.TokenRefresh)

	// 场次报名
	sessionGroup := api.Group("/sessions")
	{
		sessionGroup.GET("", session.List)
		sessionGroup.GET("/:id", session.Get)
		sessionGroup.POST("", auth, session.Create)
		sessionGroup.POST("/:id/join", auth, session.Join)
		sessionGroup.POST("/:id/leave", auth, session.Leave)
		sessionGroup.DELETE("/:id", auth, session.Delete)
	}

	// 作品
	artworkGroup := api.Group("/artworks")
	{
		artworkGroup.GET("", artwork.List)
		artworkGroup.GET("/:id", artwork.Get)
		artworkGroup.POST("", auth, artwork.Create)
		artworkGroup.DELETE("/:id", auth, artwork.Delete)
		artworkGroup.POST("/:id/like", auth, artwork.Like)
		artworkGroup.GET("/:id/likes", auth, artwork.LikeCount)
		artworkGroup.POST("/:id/comments", auth, artwork.AddComment)
		artworkGroup.GET("/:id/comments", artwork.ListComments)
	}

	// 帖子
	postGroup := api.Group("/posts")
	{
		postGroup.GET("", post.List)
		postGroup.POST("", auth, post.Create)
		postGroup.DELETE("/:id", auth, post.Delete)
	}

	return r
}
