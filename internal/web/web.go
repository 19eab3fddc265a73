package web

import (
	"embed"
	"html/template"
	"strings"
	"time"
	"yatube/internal/api/dto"
	"yatube/internal/pkg/minio"
)

//go:embed templates
var templateFS embed.FS

// Templates 解析全部内嵌模板，模板名即 define 的名字（如 posts/index.html）
func Templates(images minio.ObjectStore) (*template.Template, error) {
	return template.New("yatube").
		Funcs(Funcs(images)).
		ParseFS(templateFS, "templates/*/*.html")
}

func Funcs(images minio.ObjectStore) template.FuncMap {
	return template.FuncMap{
		"imageURL":    images.PublicURL,
		"linebreaks":  linebreaks,
		"date":        formatDate,
		"fieldErrors": fieldErrors,
	}
}

// linebreaks 转义后把换行替换成 <br>
func linebreaks(text string) template.HTML {
	escaped := template.HTMLEscapeString(text)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

func formatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

// fieldErrors 允许 errors 缺省
func fieldErrors(errs any, field string) []string {
	formErrors, ok := errs.(dto.FormErrors)
	if !ok {
		return nil
	}
	return formErrors.Get(field)
}
