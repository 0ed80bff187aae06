package router

import (
	"Wave_Social/internal/handler"
	"Wave_Social/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Post         *handler.PostHandler
	Reaction     *handler.ReactionHandler
	Comment      *handler.CommentHandler
	Follow       *handler.FollowHandler
	Notification *handler.NotificationHandler
	WS           *handler.WSHandler
}

func InitRouter(h Handlers, jwtSecret []byte) *gin.Engine {
	r := gin.Default()

	// 注册登录接口
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/forgot-password", h.Auth.ForgotPassword)
		authGroup.POST("/reset-password/:token", h.Auth.ResetPassword)
	}

	// 帖子相关接口
	postGroup := r.Group("/api/post")
	postGroup.Use(middleware.AuthMiddleware(jwtSecret))
	{
		postGroup.POST("/create", h.Post.CreatePost)
		postGroup.GET("/list", h.Post.List)
		postGroup.GET("/list/media", h.Post.ListWithMedia)
		postGroup.POST("/reactions", h.Reaction.AddReaction)
		postGroup.GET("/reactions/:postId", h.Reaction.ListByPost)
		postGroup.GET("/reactions/:postId/:username", h.Reaction.GetByUsername)
		postGroup.POST("/comments", h.Comment.AddComment)
		postGroup.GET("/comments/:postId", h.Comment.ListByPost)
	}

	// 用户关注相关接口
	followGroup := r.Group("/api/follow")
	followGroup.Use(middleware.AuthMiddleware(jwtSecret))
	{
		followGroup.PUT("/:userId", h.Follow.Follow)
		followGroup.DELETE("/:userId", h.Follow.Unfollow)
		followGroup.GET("/relation/:userId", h.Follow.IsFollowing)
		followGroup.GET("/followers/:userId", h.Follow.Followers)
		followGroup.GET("/followings/:userId", h.Follow.Followings)
	}

	// 通知相关接口
	notificationGroup := r.Group("/api/notification")
	notificationGroup.Use(middleware.AuthMiddleware(jwtSecret))
	{
		notificationGroup.GET("/list", h.Notification.List)
		notificationGroup.PUT("/:notificationId", h.Notification.MarkRead)
	}

	// 实时推送
	wsGroup := r.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware(jwtSecret))
	{
		wsGroup.GET("", h.WS.Serve)
	}

	return r
}
