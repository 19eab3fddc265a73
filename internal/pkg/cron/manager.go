package cron

import (
	log "log/slog"
	"yatube/internal/job"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine          *cron.Cron
	mediaCleanupJob *job.MediaCleanupJob
	mediaCleanSpec  string
}

func NewCronManager(mediaCleanupJob *job.MediaCleanupJob, mediaCleanSpec string) *Manager {
	return &Manager{
		engine:          cron.New(cron.WithSeconds()),
		mediaCleanupJob: mediaCleanupJob,
		mediaCleanSpec:  mediaCleanSpec,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.mediaCleanSpec, s.mediaCleanupJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron engine started")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron engine stopping")
	<-s.engine.Stop().Done()
}
