package repository

import (
	"context"
	"yatube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentsByPost(ctx context.Context, postID uint64) ([]*model.Comment, error)
	CountCommentsByPost(ctx context.Context, postID uint64) (int64, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

// GetCommentsByPost 按创建顺序返回评论
func (s *CommentRepoImpl) GetCommentsByPost(ctx context.Context, postID uint64) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created asc").
		Order("id asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *CommentRepoImpl) CountCommentsByPost(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
