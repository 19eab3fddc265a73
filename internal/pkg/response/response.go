package response

import (
	"errors"
	log "log/slog"
	"net/http"
	"slices"
	"time"
	"yatube/internal/pkg/consts"
	"yatube/internal/pkg/security"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
)

// Viewer 当前访问者，匿名时 ID 为 0
type Viewer struct {
	ID       uint64
	Username string
	IsStaff  bool
}

func (v Viewer) IsAuthenticated() bool {
	return v.ID != 0
}

// CurrentViewer 从鉴权中间件写入的 Context 中读取访问者
func CurrentViewer(c *gin.Context) Viewer {
	return Viewer{
		ID:       c.GetUint64(consts.CtxUserID),
		Username: c.GetString(consts.CtxUsername),
		IsStaff:  slices.Contains(c.GetStringSlice(consts.CtxRoles), security.RoleAdmin),
	}
}

// HTML 渲染页面，模板总能拿到 viewer 与 year
func HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["viewer"] = CurrentViewer(c)
	data["year"] = time.Now().Year()
	c.HTML(status, name, data)
}

// Page 200 页面
func Page(c *gin.Context, name string, data gin.H) {
	HTML(c, http.StatusOK, name, data)
}

func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func NotFound(c *gin.Context) {
	HTML(c, http.StatusNotFound, consts.Tpl404, gin.H{"path": c.Request.URL.Path})
}

func Forbidden(c *gin.Context) {
	HTML(c, http.StatusForbidden, consts.Tpl403, nil)
}

func ServerError(c *gin.Context) {
	HTML(c, http.StatusInternalServerError, consts.Tpl500, nil)
}

// Error 按 service.ErrorMap 选择错误页，未登记的错误记日志并返回 500
func Error(c *gin.Context, err error) {
	code, ok := service.ErrorMap[err]
	if !ok {
		for known, status := range service.ErrorMap {
			if errors.Is(err, known) {
				code, ok = status, true
				break
			}
		}
	}
	if !ok {
		code = http.StatusInternalServerError
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
	}

	switch code {
	case http.StatusNotFound:
		NotFound(c)
	case http.StatusForbidden:
		Forbidden(c)
	default:
		ServerError(c)
	}
}
