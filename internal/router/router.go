package router

import (
	"CampusConnect/internal/handler"
	"CampusConnect/internal/middleware"
	"CampusConnect/internal/pkg"
	"CampusConnect/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(emailCfg pkg.SMTPConfig) *gin.Engine {
	r := gin.Default()

	emailSvc := service.NewEmailService(emailCfg)

	user := handler.NewUserHandler(service.NewUserService(emailSvc))
	email := handler.NewEmailHandler(emailSvc)
	org := handler.NewOrgHandler(service.NewOrgService(emailSvc))
	member := handler.NewMembershipHandler(service.NewOrgService(emailSvc))
	thread := handler.NewThreadHandler(service.NewThreadService())
	post := handler.NewPostHandler(service.NewPostService())
	feed := handler.NewFeedHandler(service.NewFeedService())
	comment := handler.NewCommentHandler(service.NewCommentService())
	vote := handler.NewVoteHandler(service.NewVoteService())

	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", email.SendCode)
	}

	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/logout", user.Logout)
		userGroup.POST("/reset", user.ResetPassword)
	}

	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/change-password", user.ChangePassword)
	}

	// Public reads carry the viewer's identity when a token is present so
	// visibility scoping can widen beyond the public tier.
	publicGroup := r.Group("/api")
	publicGroup.Use(middleware.OptionalAuth())
	{
		publicGroup.GET("/org/list", org.List)
		publicGroup.GET("/org/detail/:slug", org.Detail)
		publicGroup.GET("/feed", feed.Home)
		publicGroup.GET("/thread/:id/posts", feed.Thread)
		publicGroup.GET("/post/detail/:slug", post.Detail)
		publicGroup.GET("/comment/list/:id", comment.ListByPost)
		publicGroup.GET("/vote/:kind/:id", vote.Counters)
	}

	orgGroup := r.Group("/api/org")
	orgGroup.Use(middleware.AuthMiddleware())
	{
		orgGroup.POST("/create", org.Create)
		orgGroup.POST("/:id/join", org.Join)
		orgGroup.POST("/:id/leave", org.Leave)
		orgGroup.GET("/:id/members", member.List)
		orgGroup.GET("/:id/posts", feed.OrgPosts)
		orgGroup.GET("/:id/threads", thread.ListByOrg)
	}

	membershipGroup := r.Group("/api/membership")
	membershipGroup.Use(middleware.AuthMiddleware())
	{
		membershipGroup.POST("/:id/approve", member.Approve)
		membershipGroup.POST("/:id/reject", member.Reject)
		membershipGroup.PUT("/:id/role", member.SetRole)
	}

	threadGroup := r.Group("/api/thread")
	threadGroup.Use(middleware.AuthMiddleware())
	{
		threadGroup.POST("/create", thread.Create)
		threadGroup.POST("/:id/join", thread.Join)
		threadGroup.POST("/:id/leave", thread.Leave)
		threadGroup.PUT("/:id/title", thread.UpdateTitle)
		threadGroup.PUT("/:id/pin", thread.SetPinned)
		threadGroup.PUT("/:id/lock", thread.SetLocked)
	}

	postGroup := r.Group("/api/post")
	postGroup.Use(middleware.AuthMiddleware())
	{
		postGroup.POST("/create", post.Create)
		postGroup.PUT("/:id", post.Edit)
		postGroup.DELETE("/:id", post.Delete)
		postGroup.POST("/:id/save", post.ToggleSave)
		postGroup.GET("/saved/list", post.SavedList)
	}

	commentGroup := r.Group("/api/comment")
	commentGroup.Use(middleware.AuthMiddleware())
	{
		commentGroup.POST("/create", comment.Create)
		commentGroup.DELETE("/:id", comment.Delete)
	}

	voteGroup := r.Group("/api/vote")
	voteGroup.Use(middleware.AuthMiddleware())
	{
		voteGroup.POST("/", vote.Apply)
	}

	return r
}
