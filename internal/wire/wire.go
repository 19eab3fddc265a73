package wire

import (
	"fmt"
	"time"
	"yatube/internal/api"
	"yatube/internal/api/config"
	"yatube/internal/api/handler"
	"yatube/internal/job"
	"yatube/internal/pkg/cron"
	"yatube/internal/pkg/kafka"
	"yatube/internal/pkg/minio"
	"yatube/internal/pkg/pagecache"
	"yatube/internal/repository"
	"yatube/internal/service"
	"yatube/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Infra 外部依赖，由 main 或测试构造
type Infra struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Images    minio.ObjectStore
	Publisher kafka.Publisher
}

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router    *gin.Engine
	DB        *gorm.DB
	CronMgr   *cron.Manager
	Publisher kafka.Publisher
}

func BuildApplication(infra Infra, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(infra.DB)
	groupRepo := repository.NewGroupRepo(infra.DB)
	postRepo := repository.NewPostRepository(infra.DB)
	commentRepo := repository.NewCommentRepo(infra.DB)
	followRepo := repository.NewFollowRepo(infra.DB)

	postService := service.NewPostService(postRepo, groupRepo, userRepo, commentRepo, followRepo,
		infra.Images, infra.Publisher, cfg.Posts.PageSize)
	postActionService := service.NewPostActionService(postRepo, commentRepo, infra.Publisher)
	followService := service.NewFollowService(followRepo, userRepo, infra.Publisher)
	userService := service.NewUserService(userRepo)
	groupService := service.NewGroupService(groupRepo)

	pageCache := pagecache.NewRedisStore(infra.Redis)

	handlers := &api.HandlersGroup{
		PostHandler:       handler.NewPostHandler(postService, groupService),
		PostActionHandler: handler.NewPostActionHandler(postActionService),
		UserHandler:       handler.NewUserHandler(userService, cfg.Security.SecureCookie),
		UserFollowHandler: handler.NewUserFollowHandler(followService),
		AdminHandler:      handler.NewAdminHandler(groupService, postService, userService, pageCache),
	}

	templates, err := web.Templates(infra.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := api.SetupRouter(handlers, api.RouterDeps{
		Templates: templates,
		PageCache: pageCache,
		IndexTTL:  time.Duration(cfg.Cache.IndexTTL) * time.Second,
	})

	cronMgr := cron.NewCronManager(job.NewMediaCleanupJob(infra.Images, postRepo), cfg.Cron.MediaClean)

	return &ApplicationContainer{
		Router:    router,
		DB:        infra.DB,
		CronMgr:   cronMgr,
		Publisher: infra.Publisher,
	}, nil
}
