package cron

import (
	"context"
	log "log/slog"
)

// Run 注册并启动定时任务，ctx 结束后等待正在执行的任务退出
func Run(ctx context.Context, mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	log.Info("Cron jobs running", "media_clean", mgr.mediaCleanSpec)

	<-ctx.Done()
	log.Info("Cron jobs stopping...")
	mgr.Stop()
	return nil
}
