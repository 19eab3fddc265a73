package repository

import (
	"context"
	"errors"
	"yatube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter 列表过滤条件，字段为 nil 表示不过滤
type PostFilter struct {
	GroupID    *uint64
	AuthorID   *uint64
	FollowerID *uint64 // 仅返回该用户关注的作者的帖子
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id uint64) error
	CountPosts(ctx context.Context, filter PostFilter) (int64, error)
	ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]*model.Post, error)
	IsImageReferenced(ctx context.Context, image string) (bool, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s *PostRepoImpl) scope(filter PostFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if filter.GroupID != nil {
			tx = tx.Where("posts.group_id = ?", *filter.GroupID)
		}
		if filter.AuthorID != nil {
			tx = tx.Where("posts.author_id = ?", *filter.AuthorID)
		}
		if filter.FollowerID != nil {
			following := s.db.Model(&model.Follow{}).
				Select("author_id").
				Where("user_id = ?", *filter.FollowerID)
			tx = tx.Where("posts.author_id IN (?)", following)
		}
		return tx
	}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// UpdatePost 只更新表单可编辑的字段，pub_date 与 author 不变
func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{ID: post.ID}).
		Select("text", "group_id", "image").
		Updates(map[string]any{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
}

// DeletePost 删除帖子，评论由外键级联删除
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

func (s *PostRepoImpl) CountPosts(ctx context.Context, filter PostFilter) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Scopes(s.scope(filter)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *PostRepoImpl) ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, limit)
	err := s.db.WithContext(ctx).
		Scopes(s.scope(filter)).
		Preload("Author").
		Preload("Group").
		Order("posts.pub_date desc").
		Order("posts.id desc").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) IsImageReferenced(ctx context.Context, image string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("image = ?", image).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
