package api

import "yatube/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PostHandler       *handler.PostHandler
	PostActionHandler *handler.PostActionHandler
	UserHandler       *handler.UserHandler
	UserFollowHandler *handler.UserFollowHandler
	AdminHandler      *handler.AdminHandler
}
