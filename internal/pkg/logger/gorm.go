package logger

import (
	"context"
	"errors"
	log "log/slog"
	"regexp"
	"strings"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// bcrypt 哈希会随 users 表的插入与更新出现在 SQL 里
var bcryptHash = regexp.MustCompile(`\$2[aby]?\$\d{2}\$[./A-Za-z0-9]{53}`)

// SlogGormLogger gorm 日志写入 slog，超过 SlowThreshold 记为 WARN
type SlogGormLogger struct {
	LogLevel      gormlogger.LogLevel
	SlowThreshold time.Duration
}

func NewGormLogger() *SlogGormLogger {
	return &SlogGormLogger{
		LogLevel:      gormlogger.Info,
		SlowThreshold: 200 * time.Millisecond,
	}
}

func (l *SlogGormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.LogLevel = level
	return &next
}

func (l *SlogGormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Info {
		log.InfoContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Warn {
		log.WarnContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Error {
		log.ErrorContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	msg := "SQL " + sqlOperation(sql)
	fields := []any{
		log.String("sql", redactSQL(sql)),
		log.Duration("latency", elapsed),
		log.Int64("rows", rows),
	}

	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound):
		if l.LogLevel >= gormlogger.Error {
			log.ErrorContext(ctx, msg+" Error", append(fields, log.Any("err", err))...)
		}
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold:
		if l.LogLevel >= gormlogger.Warn {
			log.WarnContext(ctx, msg+" Slow", fields...)
		}
	case l.LogLevel >= gormlogger.Info:
		log.InfoContext(ctx, msg, fields...)
	}
}

// sqlOperation 语句的第一个关键字，如 SELECT / INSERT
func sqlOperation(sql string) string {
	op, _, _ := strings.Cut(strings.TrimSpace(sql), " ")
	if op == "" {
		return "Query"
	}
	return strings.ToUpper(op)
}

func redactSQL(sql string) string {
	return bcryptHash.ReplaceAllString(sql, "[PROTECTED]")
}
