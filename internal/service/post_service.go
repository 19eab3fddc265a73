package service

import (
	"context"
	"errors"
	"io"
	log "log/slog"
	"strconv"
	"yatube/internal/api/dto"
	"yatube/internal/model"
	"yatube/internal/pkg/consts"
	"yatube/internal/pkg/kafka"
	"yatube/internal/pkg/minio"
	"yatube/internal/pkg/pagination"
	"yatube/internal/pkg/util"
	"yatube/internal/repository"

	"github.com/google/uuid"
)

const (
	msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
	msgInvalidImage  = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	msgImageTooLarge = "The uploaded image is too large."
)

type PostService interface {
	GetIndexPosts(ctx context.Context, page string) (*dto.PostPageDTO, error)
	GetGroupPosts(ctx context.Context, slug string, page string) (*dto.GroupPageDTO, error)
	GetProfile(ctx context.Context, viewerID uint64, username string, page string) (*dto.ProfileDTO, error)
	GetFollowPosts(ctx context.Context, userID uint64, page string) (*dto.PostPageDTO, error)
	GetPostDetail(ctx context.Context, postID uint64) (*dto.PostDetailDTO, error)
	GetPostForEdit(ctx context.Context, userID uint64, postID uint64) (*model.Post, error)
	CreatePost(ctx context.Context, authorID uint64, form *dto.PostForm, image io.Reader) (*model.Post, error)
	UpdatePost(ctx context.Context, userID uint64, postID uint64, form *dto.PostForm, image io.Reader) (*model.Post, error)
	DeletePost(ctx context.Context, postID uint64) error
}

type postServiceImpl struct {
	postRepo    repository.PostRepo
	groupRepo   repository.GroupRepo
	userRepo    repository.UserRepo
	commentRepo repository.CommentRepo
	followRepo  repository.FollowRepo
	imageStore  minio.ObjectStore
	publisher   kafka.Publisher
	pageSize    int
}

func NewPostService(
	postRepo repository.PostRepo,
	groupRepo repository.GroupRepo,
	userRepo repository.UserRepo,
	commentRepo repository.CommentRepo,
	followRepo repository.FollowRepo,
	imageStore minio.ObjectStore,
	publisher kafka.Publisher,
	pageSize int,
) PostService {
	return &postServiceImpl{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		imageStore:  imageStore,
		publisher:   publisher,
		pageSize:    pageSize,
	}
}

// GetIndexPosts 全站最新帖子
func (s *postServiceImpl) GetIndexPosts(ctx context.Context, page string) (*dto.PostPageDTO, error) {
	return s.paginate(ctx, repository.PostFilter{}, page)
}

// GetGroupPosts 分组下的帖子
func (s *postServiceImpl) GetGroupPosts(ctx context.Context, slug string, page string) (*dto.GroupPageDTO, error) {
	group, err := s.groupRepo.GetGroupBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	posts, err := s.paginate(ctx, repository.PostFilter{GroupID: &group.ID}, page)
	if err != nil {
		return nil, err
	}
	return &dto.GroupPageDTO{Group: group, PostPageDTO: *posts}, nil
}

// GetProfile 作者主页，viewerID 为 0 表示匿名访问
func (s *postServiceImpl) GetProfile(ctx context.Context, viewerID uint64, username string, page string) (*dto.ProfileDTO, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	following := false
	if viewerID != 0 && viewerID != author.ID {
		follow, err := s.followRepo.GetFollow(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
		following = follow != nil
	}

	posts, err := s.paginate(ctx, repository.PostFilter{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, err
	}

	followerCount, err := s.followRepo.GetFollowerCount(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.followRepo.GetFollowingCount(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileDTO{
		Author:         author,
		PostCount:      posts.Page.Count,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
		Following:      following,
		PostPageDTO:    *posts,
	}, nil
}

// GetFollowPosts 当前用户关注的作者的帖子
func (s *postServiceImpl) GetFollowPosts(ctx context.Context, userID uint64, page string) (*dto.PostPageDTO, error) {
	return s.paginate(ctx, repository.PostFilter{FollowerID: &userID}, page)
}

func (s *postServiceImpl) GetPostDetail(ctx context.Context, postID uint64) (*dto.PostDetailDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	postCount, err := s.postRepo.CountPosts(ctx, repository.PostFilter{AuthorID: &post.AuthorID})
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.GetCommentsByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &dto.PostDetailDTO{
		Post:         post,
		PostCount:    postCount,
		Comments:     comments,
		CommentCount: int64(len(comments)),
	}, nil
}

// GetPostForEdit 非作者返回 ErrNotPostAuthor
func (s *postServiceImpl) GetPostForEdit(ctx context.Context, userID uint64, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != userID {
		return nil, ErrNotPostAuthor
	}
	return post, nil
}

func (s *postServiceImpl) CreatePost(ctx context.Context, authorID uint64, form *dto.PostForm, image io.Reader) (*model.Post, error) {
	groupID, processed, err := s.cleanPostForm(ctx, form, image)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Text:     form.Text,
		GroupID:  groupID,
		AuthorID: authorID,
	}
	if processed != nil {
		if post.Image, err = s.saveImage(ctx, processed); err != nil {
			return nil, err
		}
	}

	if err = s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, &kafka.Event{
		Type:     kafka.EventPostCreated,
		ActorID:  authorID,
		AuthorID: authorID,
		PostID:   post.ID,
		GroupID:  post.GroupID,
	})
	return post, nil
}

// UpdatePost 只有作者可以修改；pub_date 保持不变
func (s *postServiceImpl) UpdatePost(ctx context.Context, userID uint64, postID uint64, form *dto.PostForm, image io.Reader) (*model.Post, error) {
	post, err := s.GetPostForEdit(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	groupID, processed, err := s.cleanPostForm(ctx, form, image)
	if err != nil {
		return nil, err
	}

	oldImage := post.Image
	post.Text = form.Text
	post.GroupID = groupID
	switch {
	case processed != nil:
		if post.Image, err = s.saveImage(ctx, processed); err != nil {
			return nil, err
		}
	case form.ImageClear:
		post.Image = ""
	}

	if err = s.postRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	if oldImage != "" && oldImage != post.Image {
		if err = s.imageStore.RemoveObject(ctx, oldImage); err != nil {
			log.WarnContext(ctx, "failed to remove replaced image, left for cleanup job", "key", oldImage, "err", err)
		}
	}

	s.publisher.Publish(ctx, &kafka.Event{
		Type:     kafka.EventPostUpdated,
		ActorID:  userID,
		AuthorID: post.AuthorID,
		PostID:   post.ID,
		GroupID:  post.GroupID,
	})
	return post, nil
}

func (s *postServiceImpl) DeletePost(ctx context.Context, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return s.postRepo.DeletePost(ctx, postID)
}

func (s *postServiceImpl) paginate(ctx context.Context, filter repository.PostFilter, rawPage string) (*dto.PostPageDTO, error) {
	count, err := s.postRepo.CountPosts(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := pagination.Paginate(count, s.pageSize, rawPage)
	posts, err := s.postRepo.ListPosts(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return &dto.PostPageDTO{Page: page, Posts: posts}, nil
}

// cleanPostForm 校验文本、分组与图片，任一字段出错返回 FormError
func (s *postServiceImpl) cleanPostForm(ctx context.Context, form *dto.PostForm, image io.Reader) (*uint64, *util.ProcessedImage, error) {
	errs := util.ValidateForm(form)
	if errs == nil {
		errs = dto.FormErrors{}
	}

	var groupID *uint64
	if form.Group != "" && !errs.Has("group") {
		id, err := strconv.ParseUint(form.Group, 10, 64)
		if err != nil {
			errs.Add("group", msgInvalidChoice)
		} else {
			group, err := s.groupRepo.GetGroupById(ctx, id)
			if err != nil {
				return nil, nil, err
			}
			if group == nil {
				errs.Add("group", msgInvalidChoice)
			} else {
				groupID = &group.ID
			}
		}
	}

	var processed *util.ProcessedImage
	if image != nil {
		var err error
		processed, err = util.ProcessImage(image)
		switch {
		case errors.Is(err, util.ErrNotImage):
			errs.Add("image", msgInvalidImage)
		case errors.Is(err, util.ErrImageTooLarge):
			errs.Add("image", msgImageTooLarge)
		case err != nil:
			return nil, nil, err
		}
	}

	if err := newFormError(errs); err != nil {
		return nil, nil, err
	}
	return groupID, processed, nil
}

func (s *postServiceImpl) saveImage(ctx context.Context, img *util.ProcessedImage) (string, error) {
	key := consts.PostImagePrefix + uuid.NewString() + img.Ext
	if err := s.imageStore.PutObject(ctx, key, img.Data, img.ContentType); err != nil {
		log.ErrorContext(ctx, "MinIO upload failed", "key", key, "err", err)
		return "", UnExpectedError
	}
	return key, nil
}
