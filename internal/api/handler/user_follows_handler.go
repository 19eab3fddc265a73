package handler

import (
	"yatube/internal/pkg/consts"
	"yatube/internal/pkg/response"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	followSvc service.FollowService
}

func NewUserFollowHandler(followSvc service.FollowService) *UserFollowHandler {
	return &UserFollowHandler{followSvc: followSvc}
}

func (s *UserFollowHandler) Follow(c *gin.Context) {
	username := c.Param("username")
	if err := s.followSvc.Follow(c, c.GetUint64(consts.CtxUserID), username); err != nil {
		response.Error(c, err)
		return
	}
	response.Redirect(c, profileURL(username))
}

func (s *UserFollowHandler) Unfollow(c *gin.Context) {
	username := c.Param("username")
	if err := s.followSvc.Unfollow(c, c.GetUint64(consts.CtxUserID), username); err != nil {
		response.Error(c, err)
		return
	}
	response.Redirect(c, profileURL(username))
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}
