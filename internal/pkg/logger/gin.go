package logger

import (
	"fmt"
	"net/http"
	"time"
	"yatube/internal/pkg/consts"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessRecord struct {
	Time     string `json:"time"`
	Level    string `json:"level"`
	Msg      string `json:"msg"`
	TraceID  string `json:"trace_id,omitempty"`
	UserID   uint64 `json:"user_id,omitempty"`
	Method   string `json:"method"`
	Path     string `json:"path"`
	Status   int    `json:"status"`
	Latency  string `json:"latency"`
	ClientIP string `json:"client_ip"`
}

// AccessLogger gin 访问日志，输出与 slog 相同的 JSON 结构
func AccessLogger() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		Formatter: formatAccess,
	})
}

func formatAccess(p gin.LogFormatterParams) string {
	rec := accessRecord{
		Time:     p.TimeStamp.Format(time.RFC3339),
		Level:    "INFO",
		Msg:      "GIN_ACCESS",
		Method:   p.Method,
		Path:     p.Path,
		Status:   p.StatusCode,
		Latency:  p.Latency.String(),
		ClientIP: p.ClientIP,
	}
	if p.StatusCode >= http.StatusInternalServerError {
		rec.Level = "ERROR"
	}

	if id, ok := p.Keys[TraceIDKey].(string); ok {
		rec.TraceID = id
	} else if p.Request != nil {
		rec.TraceID = TraceID(p.Request.Context())
	}
	if id, ok := p.Keys[consts.CtxUserID].(uint64); ok {
		rec.UserID = id
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Sprintf(`{"level":"ERROR","msg":"GIN_ACCESS","err":%q}`+"\n", err.Error())
	}
	return string(line) + "\n"
}
