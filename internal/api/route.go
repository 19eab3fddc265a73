package api

import (
	"html/template"
	log "log/slog"
	"time"
	"yatube/internal/api/middleware"
	"yatube/internal/pkg/logger"
	"yatube/internal/pkg/pagecache"
	"yatube/internal/pkg/response"
	"yatube/internal/pkg/security"

	"github.com/gin-gonic/gin"
)

// RouterDeps 路由需要的基础设施
type RouterDeps struct {
	Templates *template.Template
	PageCache pagecache.Store
	IndexTTL  time.Duration
}

func SetupRouter(group *HandlersGroup, deps RouterDeps) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})
	r.ContextWithFallback = true
	r.HandleMethodNotAllowed = true
	r.SetHTMLTemplate(deps.Templates)

	// TraceId & Logger & Recovery
	r.Use(middleware.TraceMiddleware())
	r.Use(logger.AccessLogger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.ErrorContext(c, "panic recovered", "panic", recovered)
		response.ServerError(c)
		c.Abort()
	}))

	r.NoRoute(middleware.AuthOptionalMiddleware(), response.NotFound)

	// 公开页面
	public := r.Group("")
	public.Use(middleware.AuthOptionalMiddleware())
	{
		public.GET("/", middleware.CachePage(deps.PageCache, deps.IndexTTL), group.PostHandler.Index)
		public.GET("/group/:slug/", group.PostHandler.GroupPosts)
		public.GET("/profile/:username/", group.PostHandler.Profile)
		public.GET("/posts/:post_id/", group.PostHandler.PostDetail)
	}

	// 需要登录
	authGroup := r.Group("")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.GET("/create/", group.PostHandler.CreatePostPage)
		authGroup.POST("/create/", group.PostHandler.CreatePost)
		authGroup.GET("/posts/:post_id/edit/", group.PostHandler.EditPostPage)
		authGroup.POST("/posts/:post_id/edit/", group.PostHandler.EditPost)
		authGroup.POST("/posts/:post_id/comment/", group.PostActionHandler.AddComment)
		authGroup.GET("/follow/", group.PostHandler.FollowIndex)
		authGroup.GET("/profile/:username/follow/", group.UserFollowHandler.Follow)
		authGroup.GET("/profile/:username/unfollow/", group.UserFollowHandler.Unfollow)
	}

	userGroup := r.Group("/auth")
	{
		// 无需登录即可访问的页面
		anonGroup := userGroup.Group("")
		anonGroup.Use(middleware.AuthOptionalMiddleware())
		{
			anonGroup.GET("/signup/", group.UserHandler.SignupPage)
			anonGroup.POST("/signup/", group.UserHandler.Signup)
			anonGroup.GET("/login/", group.UserHandler.LoginPage)
			anonGroup.POST("/login/", group.UserHandler.Login)
		}
		userGroup.GET("/logout/", group.UserHandler.Logout)

		authUserGroup := userGroup.Group("")
		authUserGroup.Use(middleware.AuthMiddleware())
		{
			authUserGroup.GET("/password_change/", group.UserHandler.PasswordChangePage)
			authUserGroup.POST("/password_change/", group.UserHandler.PasswordChange)
			authUserGroup.GET("/password_change/done/", group.UserHandler.PasswordChangeDone)
		}
	}

	// 需要登录 & 拥有 admin 角色
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(security.RoleAdmin), middleware.AuditMiddleware())
	{
		adminGroup.GET("/", group.AdminHandler.Dashboard)
		adminGroup.POST("/groups/", group.AdminHandler.CreateGroup)
		adminGroup.POST("/groups/:slug/delete/", group.AdminHandler.DeleteGroup)
		adminGroup.POST("/posts/:post_id/delete/", group.AdminHandler.DeletePost)
		adminGroup.POST("/users/:username/delete/", group.AdminHandler.DeleteUser)
		adminGroup.POST("/cache/clear/", group.AdminHandler.ClearCache)
	}

	return r
}
