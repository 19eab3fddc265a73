package job

import (
	"context"
	log "log/slog"
	"time"
	"yatube/internal/pkg/consts"
	"yatube/internal/pkg/minio"
	"yatube/internal/repository"
)

// OrphanMaxAge 早于该时长且无帖子引用的图片视为孤儿
const OrphanMaxAge = 24 * time.Hour

// MediaCleanupJob 清理编辑替换或级联删除后遗留在 MinIO 中的帖子图片
type MediaCleanupJob struct {
	images   minio.ObjectStore
	postRepo repository.PostRepo
	now      func() time.Time
}

func NewMediaCleanupJob(images minio.ObjectStore, postRepo repository.PostRepo) *MediaCleanupJob {
	return &MediaCleanupJob{
		images:   images,
		postRepo: postRepo,
		now:      time.Now,
	}
}

func (s *MediaCleanupJob) Run() {
	ctx := context.Background()
	log.Info("start media cleanup job")

	count, err := s.Cleanup(ctx)
	if err != nil {
		log.Error("media cleanup job failed", "cleaned_count", count, "err", err)
		return
	}
	if count > 0 {
		log.Info("media cleanup job finished", "cleaned_count", count)
	}
}

// Cleanup 返回删除的对象数量
func (s *MediaCleanupJob) Cleanup(ctx context.Context) (int, error) {
	objects, err := s.images.ListObjects(ctx, consts.PostImagePrefix)
	if err != nil {
		return 0, err
	}

	deadline := s.now().Add(-OrphanMaxAge)
	count := 0
	for _, obj := range objects {
		if obj.LastModified.After(deadline) {
			continue
		}

		referenced, err := s.postRepo.IsImageReferenced(ctx, obj.Key)
		if err != nil {
			return count, err
		}
		if referenced {
			continue
		}

		if err = s.images.RemoveObject(ctx, obj.Key); err != nil {
			log.Error("failed to delete orphan image from minio", "key", obj.Key, "err", err)
			continue
		}
		count++
		log.Info("cleanup orphan post image", "key", obj.Key)
	}
	return count, nil
}
