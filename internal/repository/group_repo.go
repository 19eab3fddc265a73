package repository

import (
	"context"
	"errors"
	"yatube/internal/model"

	"gorm.io/gorm"
)

type GroupRepo interface {
	ListGroups(ctx context.Context) ([]*model.Group, error)
	GetGroupById(ctx context.Context, id uint64) (*model.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error)
	CreateGroup(ctx context.Context, group *model.Group) error
	DeleteGroup(ctx context.Context, id uint64) error
}

type GroupRepoImpl struct {
	db *gorm.DB
}

func NewGroupRepo(db *gorm.DB) GroupRepo {
	return &GroupRepoImpl{db: db}
}

func (s *GroupRepoImpl) ListGroups(ctx context.Context) ([]*model.Group, error) {
	groups := make([]*model.Group, 0)
	err := s.db.WithContext(ctx).Order("title").Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *GroupRepoImpl) GetGroupById(ctx context.Context, id uint64) (*model.Group, error) {
	var group model.Group
	err := s.db.WithContext(ctx).First(&group, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (s *GroupRepoImpl) GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	var group model.Group
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (s *GroupRepoImpl) CreateGroup(ctx context.Context, group *model.Group) error {
	return s.db.WithContext(ctx).Create(group).Error
}

// DeleteGroup 删除分组，组内帖子级联删除
func (s *GroupRepoImpl) DeleteGroup(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Group{}, id).Error
}
