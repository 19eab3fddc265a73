package handler

import (
	"errors"
	"yatube/internal/api/dto"
	"yatube/internal/pkg/consts"
	"yatube/internal/pkg/response"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	postActionSvc service.PostActionService
}

func NewPostActionHandler(postActionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{postActionSvc: postActionSvc}
}

// AddComment 无效的评论被静默丢弃，总是跳回详情页
func (s *PostActionHandler) AddComment(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	form := &dto.CommentForm{}
	if err := c.ShouldBind(form); err != nil {
		response.Redirect(c, detailURL(postID))
		return
	}

	_, err := s.postActionSvc.AddComment(c, c.GetUint64(consts.CtxUserID), postID, form)
	if err != nil {
		var formErr *service.FormError
		if !errors.As(err, &formErr) {
			response.Error(c, err)
			return
		}
	}
	response.Redirect(c, detailURL(postID))
}
