package handler

import (
	"errors"
	log "log/slog"
	"net/http"
	"strings"
	"yatube/internal/api/dto"
	"yatube/internal/pkg/consts"
	"yatube/internal/pkg/response"
	"yatube/internal/pkg/security"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
)

const passwordChangeDoneURL = "/auth/password_change/done/"

type UserHandler struct {
	userSvc      service.UserService
	secureCookie bool
}

func NewUserHandler(userSvc service.UserService, secureCookie bool) *UserHandler {
	return &UserHandler{
		userSvc:      userSvc,
		secureCookie: secureCookie,
	}
}

func (s *UserHandler) SignupPage(c *gin.Context) {
	response.Page(c, consts.TplSignup, gin.H{"form": &dto.SignupForm{}})
}

func (s *UserHandler) Signup(c *gin.Context) {
	form := &dto.SignupForm{}
	if err := c.ShouldBind(form); err != nil {
		response.Page(c, consts.TplSignup, gin.H{"form": form, "errors": bindErrors(err)})
		return
	}

	_, err := s.userSvc.Register(c, form)
	if err != nil {
		var formErr *service.FormError
		if errors.As(err, &formErr) {
			response.Page(c, consts.TplSignup, gin.H{"form": form, "errors": formErr.Errors})
			return
		}
		response.Error(c, err)
		return
	}
	response.Redirect(c, "/")
}

func (s *UserHandler) LoginPage(c *gin.Context) {
	response.Page(c, consts.TplLogin, gin.H{
		"form": &dto.LoginForm{},
		"next": c.Query("next"),
	})
}

func (s *UserHandler) Login(c *gin.Context) {
	form := &dto.LoginForm{}
	if err := c.ShouldBind(form); err != nil {
		response.Page(c, consts.TplLogin, gin.H{"form": form, "next": form.Next, "errors": bindErrors(err)})
		return
	}

	token, err := s.userSvc.Login(c, form)
	if err != nil {
		var formErr *service.FormError
		if errors.As(err, &formErr) {
			response.Page(c, consts.TplLogin, gin.H{"form": form, "next": form.Next, "errors": formErr.Errors})
			return
		}
		response.Error(c, err)
		return
	}

	s.setSession(c, token)
	response.Redirect(c, SafeRedirect(form.Next))
}

func (s *UserHandler) setSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(consts.SessionCookie, token, int(security.TokenTTL().Seconds()), "/", "", s.secureCookie, true)
}

// Logout 路由不挂鉴权中间件，页面以匿名身份渲染
func (s *UserHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(consts.SessionCookie); err == nil && token != "" {
		if err = s.userSvc.Logout(c, token); err != nil {
			log.WarnContext(c, "failed to revoke token", "err", err)
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(consts.SessionCookie, "", -1, "/", "", s.secureCookie, true)
	response.Page(c, consts.TplLoggedOut, nil)
}

func (s *UserHandler) PasswordChangePage(c *gin.Context) {
	response.Page(c, consts.TplPasswordChange, nil)
}

func (s *UserHandler) PasswordChange(c *gin.Context) {
	form := &dto.PasswordChangeForm{}
	if err := c.ShouldBind(form); err != nil {
		response.Page(c, consts.TplPasswordChange, gin.H{"errors": bindErrors(err)})
		return
	}

	token, err := s.userSvc.ChangePassword(c, c.GetUint64(consts.CtxUserID), form)
	if err != nil {
		var formErr *service.FormError
		if errors.As(err, &formErr) {
			response.Page(c, consts.TplPasswordChange, gin.H{"errors": formErr.Errors})
			return
		}
		response.Error(c, err)
		return
	}

	// 其它会话已失效，当前会话换成新 token
	s.setSession(c, token)
	response.Redirect(c, passwordChangeDoneURL)
}

func (s *UserHandler) PasswordChangeDone(c *gin.Context) {
	response.Page(c, consts.TplPasswordDone, nil)
}

// SafeRedirect 只允许站内相对路径，其余回到首页
func SafeRedirect(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") ||
		strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
