package handler

import (
	"errors"
	log "log/slog"
	"yatube/internal/api/dto"
	"yatube/internal/pkg/consts"
	"yatube/internal/pkg/pagecache"
	"yatube/internal/pkg/response"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
)

const adminURL = "/admin/"

var adminMessages = map[string]string{
	"group_created": "Group created.",
	"group_deleted": "Group and its posts deleted.",
	"post_deleted":  "Post deleted.",
	"user_deleted":  "User and their content deleted.",
	"cache_cleared": "Page cache cleared.",
}

// AdminHandler 管理员操作，路由上需要 CheckRoles(ADMIN)
type AdminHandler struct {
	groupSvc  service.GroupService
	postSvc   service.PostService
	userSvc   service.UserService
	pageCache pagecache.Store
}

func NewAdminHandler(groupSvc service.GroupService, postSvc service.PostService, userSvc service.UserService, pageCache pagecache.Store) *AdminHandler {
	return &AdminHandler{
		groupSvc:  groupSvc,
		postSvc:   postSvc,
		userSvc:   userSvc,
		pageCache: pageCache,
	}
}

func (s *AdminHandler) Dashboard(c *gin.Context) {
	s.renderDashboard(c, &dto.GroupForm{}, nil)
}

func (s *AdminHandler) CreateGroup(c *gin.Context) {
	form := &dto.GroupForm{}
	if err := c.ShouldBind(form); err != nil {
		s.renderDashboard(c, form, bindErrors(err))
		return
	}

	_, err := s.groupSvc.CreateGroup(c, form)
	if err != nil {
		var formErr *service.FormError
		if errors.As(err, &formErr) {
			s.renderDashboard(c, form, formErr.Errors)
			return
		}
		response.Error(c, err)
		return
	}
	response.Redirect(c, adminURL+"?done=group_created")
}

func (s *AdminHandler) DeleteGroup(c *gin.Context) {
	if err := s.groupSvc.DeleteGroup(c, c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}
	response.Redirect(c, adminURL+"?done=group_deleted")
}

func (s *AdminHandler) DeletePost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	if err := s.postSvc.DeletePost(c, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Redirect(c, adminURL+"?done=post_deleted")
}

func (s *AdminHandler) DeleteUser(c *gin.Context) {
	if err := s.userSvc.DeleteUser(c, c.Param("username")); err != nil {
		response.Error(c, err)
		return
	}
	response.Redirect(c, adminURL+"?done=user_deleted")
}

// ClearCache 强制下一次请求重新渲染缓存页面
func (s *AdminHandler) ClearCache(c *gin.Context) {
	if err := s.pageCache.Clear(c); err != nil {
		response.Error(c, err)
		return
	}
	log.InfoContext(c, "page cache cleared", "user_id", c.GetUint64(consts.CtxUserID))
	response.Redirect(c, adminURL+"?done=cache_cleared")
}

func (s *AdminHandler) renderDashboard(c *gin.Context, form *dto.GroupForm, errs dto.FormErrors) {
	groups, err := s.groupSvc.ListGroups(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, consts.TplAdmin, gin.H{
		"title":   "Administration",
		"groups":  groups,
		"form":    form,
		"errors":  errs,
		"message": adminMessages[c.Query("done")],
	})
}
