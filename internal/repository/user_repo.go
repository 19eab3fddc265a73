package repository

import (
	"context"
	"errors"
	"yatube/internal/model"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	DeleteUser(ctx context.Context, id uint64) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).First(user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return user, nil
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return user, nil
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserRepoImpl) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("password", passwordHash).Error
}

// DeleteUser 删除用户，帖子/评论/关注关系由外键级联删除
func (s *UserRepoImpl) DeleteUser(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.User{}, id).Error
}
