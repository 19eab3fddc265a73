package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"yatube/internal/api/dto"
	"yatube/internal/model"
	"yatube/internal/pkg/consts"
	"yatube/internal/pkg/response"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	titleIndex  = "Latest updates"
	titleGroup  = "Group posts"
	titleFollow = "Following"
)

type PostHandler struct {
	postSvc  service.PostService
	groupSvc service.GroupService
}

func NewPostHandler(postSvc service.PostService, groupSvc service.GroupService) *PostHandler {
	return &PostHandler{
		postSvc:  postSvc,
		groupSvc: groupSvc,
	}
}

func (s *PostHandler) Index(c *gin.Context) {
	posts, err := s.postSvc.GetIndexPosts(c, c.Query("page"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, consts.TplIndex, gin.H{
		"title": titleIndex,
		"page":  posts.Page,
		"posts": posts.Posts,
	})
}

func (s *PostHandler) GroupPosts(c *gin.Context) {
	groupPage, err := s.postSvc.GetGroupPosts(c, c.Param("slug"), c.Query("page"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, consts.TplGroupList, gin.H{
		"title": titleGroup,
		"group": groupPage.Group,
		"page":  groupPage.Page,
		"posts": groupPage.Posts,
	})
}

func (s *PostHandler) Profile(c *gin.Context) {
	viewerID := c.GetUint64(consts.CtxUserID)
	profile, err := s.postSvc.GetProfile(c, viewerID, c.Param("username"), c.Query("page"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, consts.TplProfile, gin.H{
		"title":           profile.Author.FullName(),
		"author":          profile.Author,
		"post_count":      profile.PostCount,
		"follower_count":  profile.FollowerCount,
		"following_count": profile.FollowingCount,
		"following":       profile.Following,
		"page":            profile.Page,
		"posts":           profile.Posts,
	})
}

func (s *PostHandler) PostDetail(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	detail, err := s.postSvc.GetPostDetail(c, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, consts.TplPostDetail, gin.H{
		"title":         detail.Post.String(),
		"post":          detail.Post,
		"post_count":    detail.PostCount,
		"comments":      detail.Comments,
		"comment_count": detail.CommentCount,
		"form":          &dto.CommentForm{},
	})
}

// FollowIndex 关注作者的帖子流
func (s *PostHandler) FollowIndex(c *gin.Context) {
	posts, err := s.postSvc.GetFollowPosts(c, c.GetUint64(consts.CtxUserID), c.Query("page"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, consts.TplFollow, gin.H{
		"title": titleFollow,
		"page":  posts.Page,
		"posts": posts.Posts,
	})
}

func (s *PostHandler) CreatePostPage(c *gin.Context) {
	s.renderPostForm(c, &dto.PostForm{}, nil, nil)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	form := &dto.PostForm{}
	if err := c.ShouldBind(form); err != nil {
		s.renderPostForm(c, form, nil, bindErrors(err))
		return
	}

	image, closeImage, err := openImage(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeImage()

	_, err = s.postSvc.CreatePost(c, c.GetUint64(consts.CtxUserID), form, image)
	if err != nil {
		var formErr *service.FormError
		if errors.As(err, &formErr) {
			s.renderPostForm(c, form, nil, formErr.Errors)
			return
		}
		response.Error(c, err)
		return
	}
	response.Redirect(c, profileURL(c.GetString(consts.CtxUsername)))
}

// EditPostPage 非作者静默跳回详情页
func (s *PostHandler) EditPostPage(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	post, err := s.postSvc.GetPostForEdit(c, c.GetUint64(consts.CtxUserID), postID)
	if err != nil {
		s.editError(c, postID, err)
		return
	}

	form := &dto.PostForm{Text: post.Text}
	if post.GroupID != nil {
		form.Group = strconv.FormatUint(*post.GroupID, 10)
	}
	s.renderPostForm(c, form, post, nil)
}

func (s *PostHandler) EditPost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID := c.GetUint64(consts.CtxUserID)
	post, err := s.postSvc.GetPostForEdit(c, userID, postID)
	if err != nil {
		s.editError(c, postID, err)
		return
	}

	form := &dto.PostForm{}
	if err = c.ShouldBind(form); err != nil {
		s.renderPostForm(c, form, post, bindErrors(err))
		return
	}

	image, closeImage, err := openImage(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeImage()

	_, err = s.postSvc.UpdatePost(c, userID, postID, form, image)
	if err != nil {
		var formErr *service.FormError
		if errors.As(err, &formErr) {
			s.renderPostForm(c, form, post, formErr.Errors)
			return
		}
		s.editError(c, postID, err)
		return
	}
	response.Redirect(c, detailURL(postID))
}

func (s *PostHandler) editError(c *gin.Context, postID uint64, err error) {
	if errors.Is(err, service.ErrNotPostAuthor) {
		response.Redirect(c, detailURL(postID))
		return
	}
	response.Error(c, err)
}

// renderPostForm post 为 nil 表示新建
func (s *PostHandler) renderPostForm(c *gin.Context, form *dto.PostForm, post *model.Post, errs dto.FormErrors) {
	groups, err := s.groupSvc.ListGroups(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, consts.TplCreatePost, gin.H{
		"form":    form,
		"groups":  groups,
		"errors":  errs,
		"is_edit": post != nil,
		"post":    post,
	})
}

func postIDParam(c *gin.Context) (uint64, bool) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.NotFound(c)
		return 0, false
	}
	return postID, true
}

func detailURL(postID uint64) string {
	return "/posts/" + strconv.FormatUint(postID, 10) + "/"
}

// openImage 读取可选的 image 文件，未上传时返回 nil
func openImage(c *gin.Context) (io.Reader, func(), error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	if fileHeader.Size == 0 {
		return nil, func() {}, nil
	}

	var file multipart.File
	if file, err = fileHeader.Open(); err != nil {
		return nil, func() {}, err
	}
	return file, func() { _ = file.Close() }, nil
}

// bindErrors 表单绑定失败（如类型不符）作为 non-field 错误展示
func bindErrors(err error) dto.FormErrors {
	errs := dto.FormErrors{}
	errs.Add(dto.NonFieldErrors, err.Error())
	return errs
}
