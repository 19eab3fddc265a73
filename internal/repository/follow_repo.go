package repository

import (
	"context"
	"errors"
	"yatube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepo interface {
	GetFollow(ctx context.Context, userID, authorID uint64) (*model.Follow, error)
	CreateFollow(ctx context.Context, follow *model.Follow) error
	DeleteFollow(ctx context.Context, userID, authorID uint64) (int64, error)
	GetFollowerCount(ctx context.Context, authorID uint64) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint64) (int64, error)
}

type FollowRepoImpl struct {
	db *gorm.DB
}

func NewFollowRepo(db *gorm.DB) FollowRepo {
	return &FollowRepoImpl{db: db}
}

// GetFollow 获取 user 对 author 的关注关系
func (s *FollowRepoImpl) GetFollow(ctx context.Context, userID, authorID uint64) (*model.Follow, error) {
	var follow model.Follow
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		First(&follow)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &follow, nil
}

// CreateFollow 创建关注关系，(author, user) 已存在时不报错
func (s *FollowRepoImpl) CreateFollow(ctx context.Context, follow *model.Follow) error {
	return s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			DoNothing: true,
		}).
		Create(follow).Error
}

// DeleteFollow 删除关注关系，返回删除行数
func (s *FollowRepoImpl) DeleteFollow(ctx context.Context, userID, authorID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&model.Follow{})
	return result.RowsAffected, result.Error
}

// GetFollowerCount 获取作者的粉丝数量
func (s *FollowRepoImpl) GetFollowerCount(ctx context.Context, authorID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("author_id = ?", authorID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// GetFollowingCount 获取用户的关注数量
func (s *FollowRepoImpl) GetFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("user_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
